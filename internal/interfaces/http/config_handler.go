package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/application/usecase"
)

// ConfigHandler configuración del negocio (nombre, ticket, IVA).
type ConfigHandler struct {
	uc *usecase.ConfigUseCase
}

// NewConfigHandler construye el handler.
func NewConfigHandler(uc *usecase.ConfigUseCase) *ConfigHandler {
	return &ConfigHandler{uc: uc}
}

// Get devuelve la configuración vigente (o los valores por defecto).
func (h *ConfigHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Save guarda la configuración del negocio (solo admin). El nuevo IVA
// aplica a los cobros siguientes, nunca a ventas ya asentadas.
func (h *ConfigHandler) Save(c *fiber.Ctx) error {
	var in dto.SaveConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BusinessName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "business_name es requerido"})
	}
	out, err := h.uc.Save(in)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
