package dto

import "github.com/shopspring/decimal"

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	TaxID       string          `json:"tax_id,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Name        string          `json:"name"`
	Phone       string          `json:"phone,omitempty"`
	Email       string          `json:"email,omitempty"`
	Address     string          `json:"address,omitempty"`
	TaxID       string          `json:"tax_id,omitempty"`
	CreditLimit decimal.Decimal `json:"credit_limit,omitempty"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Phone               string          `json:"phone,omitempty"`
	Email               string          `json:"email,omitempty"`
	Address             string          `json:"address,omitempty"`
	TaxID               string          `json:"tax_id,omitempty"`
	OutstandingBalance  decimal.Decimal `json:"outstanding_balance"`
	CreditLimit         decimal.Decimal `json:"credit_limit"`
	LastPaymentDate     string          `json:"last_payment_date,omitempty"`
	ExpectedNextPayment string          `json:"expected_next_payment_date,omitempty"`
}

// CustomerCSVRow fila del export CSV de clientes (tags de gocsv).
type CustomerCSVRow struct {
	Name                string `csv:"name"`
	Phone               string `csv:"phone"`
	Email               string `csv:"email"`
	Address             string `csv:"address"`
	TaxID               string `csv:"tax_id"`
	OutstandingBalance  string `csv:"outstanding_balance"`
	LastPaymentDate     string `csv:"last_payment_date"`
	ExpectedNextPayment string `csv:"expected_next_payment_date"`
}
