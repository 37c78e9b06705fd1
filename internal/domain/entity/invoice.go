package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una factura.
const (
	PaymentStatusUnpaid  = "unpaid"
	PaymentStatusPartial = "partial"
	PaymentStatusPaid    = "paid"
)

// Invoice representa la cabecera de una factura.
// Total se calcula una sola vez al guardar (suma de líneas menos descuento de
// factura) y no se recalcula si las líneas cambian después.
// TotalPaid es la suma corriente de los pagos aplicados; solo los casos de uso
// del ledger escriben TotalPaid y PaymentStatus.
type Invoice struct {
	ID             string
	Number         string // único, formato INV-######
	CustomerID     string // referencia; al borrar el cliente queda vacía, la factura sobrevive
	InvoiceDate    time.Time
	DueDate        *time.Time
	Terms          string
	Salesperson    string
	Notes          string
	DiscountAmount decimal.Decimal // descuento a nivel de factura
	Total          decimal.Decimal // derivado, persistido
	PaymentStatus  string          // unpaid | partial | paid
	TotalPaid      decimal.Decimal
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// RemainingBalance devuelve lo que queda por pagar (puede ser negativo si hubo sobrepago).
func (i *Invoice) RemainingBalance() decimal.Decimal {
	return i.Total.Sub(i.TotalPaid)
}
