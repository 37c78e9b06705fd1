package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
)

// ReceivablesHandler expone el resumen de cuentas por cobrar.
type ReceivablesHandler struct {
	receivables *ledger.ReceivablesUseCase
}

func NewReceivablesHandler(receivables *ledger.ReceivablesUseCase) *ReceivablesHandler {
	return &ReceivablesHandler{receivables: receivables}
}

// Summary GET /api/receivables — clientes con saldo, total pendiente y
// cobros esperados del mes en curso.
func (h *ReceivablesHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.receivables.Summary(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(summary)
}
