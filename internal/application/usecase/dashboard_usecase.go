package usecase

import (
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain/repository"
)

// DashboardUseCase agregados de solo lectura para la pantalla principal.
type DashboardUseCase struct {
	repo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo}
}

// Stats devuelve los conteos y totales del negocio.
func (uc *DashboardUseCase) Stats() (*dto.DashboardResponse, error) {
	stats, err := uc.repo.DashboardStats()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		Customers:       stats.Customers,
		Products:        stats.Products,
		Invoices:        stats.Invoices,
		Billed:          stats.Billed,
		Collected:       stats.Collected,
		Outstanding:     stats.Outstanding,
		UnpaidInvoices:  stats.UnpaidInvoices,
		PartialInvoices: stats.PartialInvoices,
		PaidInvoices:    stats.PaidInvoices,
	}, nil
}
