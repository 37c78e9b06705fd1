package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
type Product struct {
	ID          string
	Barcode     string // único si no está vacío
	Name        string
	Description string
	Company     string // marca o fabricante
	Price       decimal.Decimal // precio unitario de venta
	Tax         decimal.Decimal // porcentaje de impuesto por línea (0, 5, 12, 18, ...)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
