package dto

import "github.com/shopspring/decimal"

// DashboardResponse agregados para GET /api/dashboard.
type DashboardResponse struct {
	Customers       int             `json:"customers"`
	Products        int             `json:"products"`
	Invoices        int             `json:"invoices"`
	Billed          decimal.Decimal `json:"billed_total"`
	Collected       decimal.Decimal `json:"collected_total"`
	Outstanding     decimal.Decimal `json:"outstanding_total"`
	UnpaidInvoices  int             `json:"unpaid_invoices"`
	PartialInvoices int             `json:"partial_invoices"`
	PaidInvoices    int             `json:"paid_invoices"`
}

// SettingsResponse settings del panel en respuestas.
type SettingsResponse struct {
	AutoPrint      bool   `json:"auto_print_after_save"`
	DefaultPrinter string `json:"default_printer,omitempty"`
	ShopName       string `json:"shop_name,omitempty"`
	ShopAddress    string `json:"shop_address,omitempty"`
	ShopPhone      string `json:"shop_phone,omitempty"`
	ShopTaxID      string `json:"shop_tax_id,omitempty"`
}

// UpdateSettingsRequest body para PUT /api/settings.
type UpdateSettingsRequest struct {
	AutoPrint      *bool   `json:"auto_print_after_save,omitempty"`
	DefaultPrinter *string `json:"default_printer,omitempty"`
	ShopName       *string `json:"shop_name,omitempty"`
	ShopAddress    *string `json:"shop_address,omitempty"`
	ShopPhone      *string `json:"shop_phone,omitempty"`
	ShopTaxID      *string `json:"shop_tax_id,omitempty"`
}
