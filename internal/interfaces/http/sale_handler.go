package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/application/reports"
	"github.com/dramirezh/puntoventa-api/internal/application/usecase"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
	"github.com/dramirezh/puntoventa-api/internal/infrastructure/pdf"
	"github.com/dramirezh/puntoventa-api/internal/infrastructure/ticket"
)

// SaleHandler ledger de ventas, reimpresión de tickets y corte de caja.
type SaleHandler struct {
	saleUC  *usecase.SaleUseCase
	corteUC *reports.CorteUseCase
	cfgRepo repository.ConfigRepository
	pdfGen  *pdf.TicketGenerator
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	saleUC *usecase.SaleUseCase,
	corteUC *reports.CorteUseCase,
	cfgRepo repository.ConfigRepository,
	pdfGen *pdf.TicketGenerator,
) *SaleHandler {
	return &SaleHandler{saleUC: saleUC, corteUC: corteUC, cfgRepo: cfgRepo, pdfGen: pdfGen}
}

// List godoc
// @Summary      Listar ventas del ledger
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendiente | finalizado"
// @Param        q       query  string  false  "Buscar por producto vendido"
// @Param        from    query  string  false  "Fecha inicial (RFC3339)"
// @Param        to      query  string  false  "Fecha final (RFC3339)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := usecase.ListFilter{
		Status:      c.Query("status"),
		ProductTerm: c.Query("q"),
		Limit:       limit,
		Offset:      offset,
	}
	// Un cajero solo ve sus propias ventas; el admin puede filtrar por usuario.
	if IsAdmin(c) {
		filter.UserID = c.Query("user_id")
	} else {
		filter.UserID = GetUserID(c)
	}
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339"})
		}
		filter.From = &t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339"})
		}
		filter.To = &t
	}

	out, err := h.saleUC.List(filter)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// GetByID obtiene una venta con sus renglones.
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.saleUC.GetByID(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// DeletePending elimina una venta apartada (solo admin).
func (h *SaleHandler) DeletePending(c *fiber.Ctx) error {
	if err := h.saleUC.DeletePending(c.Params("id")); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// TicketPDF reimprime el ticket de una venta como PDF.
func (h *SaleHandler) TicketPDF(c *fiber.Ctx) error {
	sale, err := h.saleUC.GetEntity(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	biz, err := h.cfgRepo.Get()
	if err != nil {
		return errorResponse(c, err)
	}
	doc, err := h.pdfGen.GenerateTicketPDF(checkout.TicketFromSale(sale), biz)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ticket.pdf"`)
	return c.Send(doc)
}

// TicketTXT reimprime el ticket como texto plano de impresora térmica.
func (h *SaleHandler) TicketTXT(c *fiber.Ctx) error {
	sale, err := h.saleUC.GetEntity(c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}
	biz, err := h.cfgRepo.Get()
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="ticket.txt"`)
	return c.SendString(ticket.RenderText(checkout.TicketFromSale(sale), biz))
}

// parseCorteParams fecha y caja objetivo del corte.
func (h *SaleHandler) corte(c *fiber.Ctx) (*reports.CorteReport, error) {
	day := time.Now()
	if v := c.Query("date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err == nil {
			day = t
		}
	}
	return h.corteUC.Corte(GetUserID(c), IsAdmin(c), c.Query("user_id"), day)
}

// Corte godoc
// @Summary      Corte de caja del turno
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        date     query  string  false  "Día del corte (2006-01-02, hoy por defecto)"
// @Param        user_id  query  string  false  "Caja a cortar (solo admin; vacío = todas)"
// @Success      200      {object}  dto.CorteResponse
// @Router       /api/sales/corte [get]
func (h *SaleHandler) Corte(c *fiber.Ctx) error {
	report, err := h.corte(c)
	if err != nil {
		return errorResponse(c, err)
	}
	out := dto.CorteResponse{
		UserID:               report.UserID,
		UserName:             report.UserName,
		From:                 report.From,
		To:                   report.To,
		NumVentas:            report.NumVentas,
		Total:                report.Total,
		Efectivo:             report.Efectivo,
		Tarjeta:              report.Tarjeta,
		Transferencia:        report.Transferencia,
		Mixto:                report.Mixto,
		MontoInicial:         report.MontoInicial,
		TotalConMontoInicial: report.TotalConMontoInicial,
		Sales:                make([]dto.SaleResponse, 0, len(report.Sales)),
	}
	for _, s := range report.Sales {
		out.Sales = append(out.Sales, dto.SaleToResponse(s))
	}
	return c.JSON(out)
}

// CortePDF exporta el corte de caja como PDF.
func (h *SaleHandler) CortePDF(c *fiber.Ctx) error {
	report, err := h.corte(c)
	if err != nil {
		return errorResponse(c, err)
	}
	biz, err := h.cfgRepo.Get()
	if err != nil {
		return errorResponse(c, err)
	}
	doc, err := h.pdfGen.GenerateCortePDF(report, biz)
	if err != nil {
		return errorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="corte.pdf"`)
	return c.Send(doc)
}
