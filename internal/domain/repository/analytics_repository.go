package repository

import "github.com/shopspring/decimal"

// DashboardStats agrupa los agregados que muestra el dashboard.
type DashboardStats struct {
	Customers          int
	Products           int
	Invoices           int
	Billed             decimal.Decimal // suma de invoice.total
	Collected          decimal.Decimal // suma de invoice.total_paid
	Outstanding        decimal.Decimal // suma de (total - total_paid) con remanente positivo
	UnpaidInvoices     int
	PartialInvoices    int
	PaidInvoices       int
}

// AnalyticsRepository define consultas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	DashboardStats() (*DashboardStats, error)
}
