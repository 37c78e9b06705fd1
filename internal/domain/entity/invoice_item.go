package entity

import "github.com/shopspring/decimal"

// InvoiceItem representa una línea de una factura. Pertenece a la factura
// (se borra con ella) y referencia un producto sin poseerlo.
// LineTotal es derivado: (qty*price - discount) * (1 + tax/100).
type InvoiceItem struct {
	ID             string
	InvoiceID      string
	ProductID      string
	Qty            int
	Price          decimal.Decimal // puede diferir del precio actual del producto
	DiscountAmount decimal.Decimal
	Tax            decimal.Decimal // porcentaje
	LineTotal      decimal.Decimal
	Description    string
}
