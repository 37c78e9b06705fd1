package repository

import "github.com/tu-usuario/factura-pyme/internal/domain/entity"

// InvoiceRepository define el puerto de persistencia para facturas y sus líneas.
type InvoiceRepository interface {
	Create(invoice *entity.Invoice) error
	CreateItem(item *entity.InvoiceItem) error
	// UpdateTotals persiste total, total_paid, payment_status y updated_at.
	// Los casos de uso del ledger son los únicos que deben llamarlo.
	UpdateTotals(invoice *entity.Invoice) error
	GetByID(id string) (*entity.Invoice, error)
	GetByNumber(number string) (*entity.Invoice, error)
	GetItemsByInvoiceID(invoiceID string) ([]*entity.InvoiceItem, error)
	List(limit, offset int) ([]*entity.Invoice, error)
	ListByCustomer(customerID string) ([]*entity.Invoice, error)
	// ListOutstandingByCustomer devuelve las facturas del cliente con
	// total > total_paid, ordenadas por fecha de factura ascendente (la más
	// antigua primero; empates por orden de inserción).
	ListOutstandingByCustomer(customerID string) ([]*entity.Invoice, error)
	// ListNumbers devuelve todos los números de factura existentes (para el
	// asignador de consecutivos).
	ListNumbers() ([]string, error)
	Count() (int, error)
	// Delete borra la factura junto con sus líneas y pagos.
	Delete(id string) error
}
