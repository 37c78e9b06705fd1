package dto

import "github.com/shopspring/decimal"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Barcode     string          `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Company     string          `json:"company,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Tax         decimal.Decimal `json:"tax,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID          string          `json:"id"`
	Barcode     string          `json:"barcode,omitempty"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Company     string          `json:"company,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Tax         decimal.Decimal `json:"tax"`
}
