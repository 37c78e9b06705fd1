package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(payment *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	ListByInvoice(invoiceID string) ([]*entity.Payment, error)
	// ListByCustomer devuelve los pagos de todas las facturas del cliente,
	// ordenados por fecha de pago descendente.
	ListByCustomer(customerID string) ([]*entity.Payment, error)
	Delete(id string) error
}
