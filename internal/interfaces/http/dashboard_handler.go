package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dramirezh/puntoventa-api/internal/application/reports"
)

// DashboardHandler métricas del panel del administrador.
type DashboardHandler struct {
	uc *reports.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reports.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      KPIs generales del negocio
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard/summary [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// TopProducts los más vendidos por unidades.
func (h *DashboardHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.QueryInt("limit", 5))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// DailySeries ingresos por día, últimos 30 días.
func (h *DashboardHandler) DailySeries(c *fiber.Ctx) error {
	out, err := h.uc.DailySeries()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// HourlySeries ingresos por hora del día, últimos 14 días.
func (h *DashboardHandler) HourlySeries(c *fiber.Ctx) error {
	out, err := h.uc.HourlySeries()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// WeekdaySeries ingresos por día de la semana, últimos 90 días.
func (h *DashboardHandler) WeekdaySeries(c *fiber.Ctx) error {
	out, err := h.uc.WeekdaySeries()
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}
