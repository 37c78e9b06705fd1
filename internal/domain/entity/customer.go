package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del negocio.
// OutstandingBalance es el saldo acumulado que el cliente debe por todas sus
// facturas; se mantiene de forma incremental en cada evento de factura/pago y
// se recalcula desde las facturas al consultar el estado de cuenta.
type Customer struct {
	ID                  string
	Name                string
	Phone               string // único si no está vacío
	Email               string // único si no está vacío
	Address             string
	TaxID               string // NIF/GSTIN del cliente
	OutstandingBalance  decimal.Decimal
	CreditLimit         decimal.Decimal
	LastPaymentDate     *time.Time
	ExpectedNextPayment *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
