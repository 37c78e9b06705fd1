package dto

import "github.com/shopspring/decimal"

// ApplyPaymentRequest body para registrar un pago.
// Si se envía a /api/invoices/:id/payments el pago va a esa factura; si se
// envía a /api/customers/:id/payments se distribuye FIFO entre las facturas
// pendientes del cliente.
type ApplyPaymentRequest struct {
	Amount              decimal.Decimal `json:"amount"`
	PaymentDate         string          `json:"payment_date,omitempty"` // YYYY-MM-DD, por defecto hoy
	PaymentMethod       string          `json:"payment_method,omitempty"`
	ReferenceNumber     string          `json:"reference_number,omitempty"`
	Notes               string          `json:"notes,omitempty"`
	ReceivedBy          string          `json:"received_by,omitempty"`
	ExpectedNextPayment string          `json:"expected_next_payment_date,omitempty"`
}

// PaymentResponse pago en respuestas.
type PaymentResponse struct {
	ID              string          `json:"id"`
	InvoiceID       string          `json:"invoice_id"`
	InvoiceNumber   string          `json:"invoice_number,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	PaymentDate     string          `json:"payment_date"`
	PaymentMethod   string          `json:"payment_method"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	ReceivedBy      string          `json:"received_by,omitempty"`
}

// CustomerPaymentResponse resultado de un pago distribuido FIFO.
type CustomerPaymentResponse struct {
	CustomerID      string            `json:"customer_id"`
	RequestedAmount decimal.Decimal   `json:"requested_amount"`
	AppliedAmount   decimal.Decimal   `json:"applied_amount"`
	Payments        []PaymentResponse `json:"payments"`
}
