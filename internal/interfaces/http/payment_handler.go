package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/application/ledger"
	"github.com/tu-usuario/factura-pyme/internal/domain"
)

// PaymentHandler maneja la reversa de pagos registrados por error.
type PaymentHandler struct {
	reverser *ledger.ReversePaymentUseCase
}

func NewPaymentHandler(reverser *ledger.ReversePaymentUseCase) *PaymentHandler {
	return &PaymentHandler{reverser: reverser}
}

// Reverse DELETE /api/payments/:id — elimina el pago y reabre el saldo de la
// factura. Devuelve la factura con sus totales actualizados.
func (h *PaymentHandler) Reverse(c *fiber.Ctx) error {
	invoice, err := h.reverser.Reverse(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "pago no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(invoice)
}
