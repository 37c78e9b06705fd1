package dto

import "github.com/shopspring/decimal"

// InvoiceItemRequest línea propuesta al crear una factura.
// Price en cero significa "usar el precio actual del producto".
type InvoiceItemRequest struct {
	ProductID      string          `json:"product_id"`
	Qty            int             `json:"qty"`
	Price          decimal.Decimal `json:"price,omitempty"`
	DiscountAmount decimal.Decimal `json:"discount_amount,omitempty"`
	Tax            decimal.Decimal `json:"tax,omitempty"`
	Description    string          `json:"description,omitempty"`
}

// InitialPaymentRequest pago inicial opcional al crear la factura.
type InitialPaymentRequest struct {
	Amount              decimal.Decimal `json:"amount"`
	PaymentDate         string          `json:"payment_date,omitempty"` // YYYY-MM-DD, por defecto hoy
	PaymentMethod       string          `json:"payment_method,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	ExpectedNextPayment string          `json:"expected_next_payment_date,omitempty"`
}

// StartInvoiceRequest body para abrir una factura en borrador.
type StartInvoiceRequest struct {
	CustomerID string `json:"customer_id"`
}

// CreateInvoiceRequest body para POST /api/invoices.
type CreateInvoiceRequest struct {
	CustomerID     string                 `json:"customer_id"`
	InvoiceDate    string                 `json:"invoice_date,omitempty"` // YYYY-MM-DD, por defecto hoy
	DueDate        string                 `json:"due_date,omitempty"`
	Terms          string                 `json:"terms,omitempty"`
	Salesperson    string                 `json:"salesperson,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	DiscountAmount decimal.Decimal        `json:"discount_amount,omitempty"`
	Items          []InvoiceItemRequest   `json:"items"`
	InitialPayment *InitialPaymentRequest `json:"initial_payment,omitempty"`
}

// InvoiceItemResponse línea en la respuesta.
type InvoiceItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	Qty            int             `json:"qty"`
	Price          decimal.Decimal `json:"price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	Tax            decimal.Decimal `json:"tax"`
	LineTotal      decimal.Decimal `json:"line_total"`
	Description    string          `json:"description,omitempty"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID             string                `json:"id"`
	Number         string                `json:"number"`
	CustomerID     string                `json:"customer_id,omitempty"`
	CustomerName   string                `json:"customer_name,omitempty"`
	InvoiceDate    string                `json:"invoice_date"`
	DueDate        string                `json:"due_date,omitempty"`
	Terms          string                `json:"terms,omitempty"`
	Salesperson    string                `json:"salesperson,omitempty"`
	Notes          string                `json:"notes,omitempty"`
	DiscountAmount decimal.Decimal       `json:"discount_amount"`
	Total          decimal.Decimal       `json:"total"`
	TotalPaid      decimal.Decimal       `json:"total_paid"`
	PaymentStatus  string                `json:"payment_status"`
	Remaining      decimal.Decimal       `json:"remaining_balance"`
	Items          []InvoiceItemResponse `json:"items,omitempty"`
}

// InvoiceCSVRow fila del export CSV del historial de facturas (tags de gocsv).
type InvoiceCSVRow struct {
	Number        string `csv:"number"`
	CustomerName  string `csv:"customer"`
	InvoiceDate   string `csv:"invoice_date"`
	Total         string `csv:"total"`
	TotalPaid     string `csv:"total_paid"`
	PaymentStatus string `csv:"payment_status"`
}
