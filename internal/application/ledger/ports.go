package ledger

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del
// ledger atados a ella. Commit si fn retorna nil, rollback si retorna error.
// Toda mutación del ledger (crear factura, aplicar pago, revertir pago) pasa
// por aquí: o se persiste completa o no se persiste nada.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		customerRepo repository.CustomerRepository,
		productRepo repository.ProductRepository,
		invoiceRepo repository.InvoiceRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// ShopInfo identidad del negocio que encabeza la factura impresa.
type ShopInfo struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

// ItemForPDF línea ya resuelta (nombre de producto incluido) para el render.
type ItemForPDF struct {
	Description string
	Qty         int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// InvoicePDFGenerator produce el documento imprimible de una factura ya
// totalizada. El generador no hace aritmética de ledger: recibe todos los
// montos resueltos.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(
		ctx context.Context,
		invoice *entity.Invoice,
		customer *entity.Customer,
		items []ItemForPDF,
		shop ShopInfo,
	) ([]byte, error)
}
