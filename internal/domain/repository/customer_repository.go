package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	// Search busca por nombre o teléfono (coincidencia parcial, sin distinguir mayúsculas).
	Search(q string, limit int) ([]*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	// UpdateLedger persiste solo los campos de cartera: saldo pendiente,
	// fecha del último pago y próxima fecha esperada.
	UpdateLedger(customer *entity.Customer) error
	// ListWithBalance devuelve los clientes con saldo pendiente > 0,
	// ordenados por saldo descendente.
	ListWithBalance() ([]*entity.Customer, error)
	// SumExpectedInMonth suma los saldos de clientes cuya próxima fecha de
	// pago esperada cae en el mes dado (formato "2006-01").
	SumExpectedInMonth(yearMonth string) (decimal.Decimal, error)
	// Delete borra el cliente; las facturas sobreviven con la referencia en nulo.
	Delete(id string) error
}
