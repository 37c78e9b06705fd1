package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago admitidos.
const (
	PaymentMethodCash         = "cash"
	PaymentMethodCard         = "card"
	PaymentMethodBankTransfer = "bank_transfer"
	PaymentMethodCheque       = "cheque"
	PaymentMethodUPI          = "upi"
)

// ValidPaymentMethod indica si el método pertenece al catálogo admitido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodBankTransfer,
		PaymentMethodCheque, PaymentMethodUPI:
		return true
	}
	return false
}

// Payment representa un pago aplicado a una factura. Pertenece a la factura.
// Amount registra el monto efectivamente aplicado (ya con el tope del saldo
// de la factura), no el monto solicitado.
type Payment struct {
	ID              string
	InvoiceID       string
	Amount          decimal.Decimal
	PaymentDate     time.Time
	PaymentMethod   string // cash | card | bank_transfer | cheque | upi
	ReferenceNumber string
	Notes           string
	ReceivedBy      string
	CreatedAt       time.Time
}
