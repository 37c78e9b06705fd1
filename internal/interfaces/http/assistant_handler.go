package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/factura-pyme/internal/application/assistant"
	"github.com/tu-usuario/factura-pyme/internal/application/dto"
	"github.com/tu-usuario/factura-pyme/internal/domain"
)

// AssistantHandler maneja el chat con el asistente de facturación.
type AssistantHandler struct {
	assistant *assistant.UseCase
}

func NewAssistantHandler(uc *assistant.UseCase) *AssistantHandler {
	return &AssistantHandler{assistant: uc}
}

// Chat godoc
// @Summary      Conversar con el asistente
// @Description  Lenguaje natural: crear clientes, armar facturas y registrar pagos.
// @Tags         assistant
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "mensaje y sesión opcional"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/assistant/chat [post]
func (h *AssistantHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if strings.TrimSpace(in.Message) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mensaje vacío"})
	}
	resp, err := h.assistant.Chat(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "mensaje inválido"})
		}
		// Falla del proveedor LLM o timeout: el asistente no está disponible.
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "ASSISTANT_UNAVAILABLE", Message: err.Error()})
	}
	return c.JSON(resp)
}
