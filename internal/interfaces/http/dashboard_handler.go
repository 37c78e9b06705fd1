package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/usecase"
)

// DashboardHandler expone agregados del negocio y settings del panel.
type DashboardHandler struct {
	dashboard *usecase.DashboardUseCase
	settings  *usecase.SettingsUseCase
}

func NewDashboardHandler(dashboard *usecase.DashboardUseCase, settings *usecase.SettingsUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, settings: settings}
}

// Stats GET /api/dashboard
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.dashboard.Stats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(stats)
}

// GetSettings GET /api/settings
func (h *DashboardHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.settings.Get()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(settings)
}

// UpdateSettings PUT /api/settings (solo admin)
func (h *DashboardHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	settings, err := h.settings.Update(in)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(settings)
}
