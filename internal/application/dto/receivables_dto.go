package dto

import "github.com/shopspring/decimal"

// ReceivableRow fila del libro de cartera (clientes con saldo pendiente).
type ReceivableRow struct {
	CustomerID          string          `json:"customer_id"`
	CustomerName        string          `json:"customer_name"`
	Phone               string          `json:"phone,omitempty"`
	OutstandingBalance  decimal.Decimal `json:"outstanding_balance"`
	LastPaymentDate     string          `json:"last_payment_date,omitempty"`
	ExpectedNextPayment string          `json:"expected_next_payment_date,omitempty"`
}

// ReceivablesSummaryResponse respuesta de GET /api/receivables.
type ReceivablesSummaryResponse struct {
	Rows              []ReceivableRow `json:"rows"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	ExpectedThisMonth decimal.Decimal `json:"expected_this_month"`
	Month             string          `json:"month"` // "2006-01"
}

// CustomerStatementResponse estado de cuenta detallado de un cliente.
// Outstanding se recalcula desde las facturas al consultar; el saldo
// incremental del cliente se corrige con ese valor (reparación de deriva).
type CustomerStatementResponse struct {
	Customer    CustomerResponse  `json:"customer"`
	Invoices    []InvoiceResponse `json:"invoices"`
	Payments    []PaymentResponse `json:"payments"`
	Outstanding decimal.Decimal   `json:"outstanding"`
}
