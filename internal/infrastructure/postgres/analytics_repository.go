package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/factura-pyme/internal/domain/entity"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// DashboardStats devuelve conteos y totales del negocio en una sola consulta.
func (r *AnalyticsRepo) DashboardStats() (*repository.DashboardStats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers),
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM invoices),
			COALESCE((SELECT SUM(total) FROM invoices), 0),
			COALESCE((SELECT SUM(total_paid) FROM invoices), 0),
			COALESCE((SELECT SUM(total - total_paid) FROM invoices WHERE total > total_paid), 0),
			(SELECT COUNT(*) FROM invoices WHERE payment_status = $1),
			(SELECT COUNT(*) FROM invoices WHERE payment_status = $2),
			(SELECT COUNT(*) FROM invoices WHERE payment_status = $3)`
	var stats repository.DashboardStats
	err := r.q.QueryRow(context.Background(), query,
		entity.PaymentStatusUnpaid, entity.PaymentStatusPartial, entity.PaymentStatusPaid,
	).Scan(
		&stats.Customers, &stats.Products, &stats.Invoices,
		&stats.Billed, &stats.Collected, &stats.Outstanding,
		&stats.UnpaidInvoices, &stats.PartialInvoices, &stats.PaidInvoices,
	)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}
