package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/application/usecase"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/pkg/config"
)

// KioskHandler kiosco de autoservicio: el cliente escanea sus productos y
// paga sin cajero. No hay JWT; la terminal manda su ID de sesión en el
// header y las ventas se asientan a nombre del usuario kiosco configurado.
type KioskHandler struct {
	svc       *checkout.Service
	productUC *usecase.ProductUseCase
	cfg       config.KioskConfig
}

// NewKioskHandler construye el handler.
func NewKioskHandler(svc *checkout.Service, productUC *usecase.ProductUseCase, cfg config.KioskConfig) *KioskHandler {
	return &KioskHandler{svc: svc, productUC: productUC, cfg: cfg}
}

// KioskMiddleware corta todo si el autoservicio está apagado y exige el
// header de sesión de la terminal.
func (h *KioskHandler) KioskMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !h.cfg.Enabled || h.cfg.UserID == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "KIOSK_DISABLED", Message: "autoservicio no disponible"})
		}
		if c.Get("X-Kiosk-Session") == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_SESSION", Message: "header X-Kiosk-Session requerido"})
		}
		return c.Next()
	}
}

func kioskSession(c *fiber.Ctx) string {
	return "kiosk:" + c.Get("X-Kiosk-Session")
}

func (h *KioskHandler) cartJSON(c *fiber.Ctx) error {
	session, totals, err := h.svc.GetCart(c.Context(), kioskSession(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.CartToResponse(totals, session.Cart.Count(), string(session.Tier)))
}

// Scan agrega un producto escaneado al carrito del kiosco. Si el stock ya
// no alcanza se informa cuántas unidades sí entraron.
func (h *KioskHandler) Scan(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	added, err := h.svc.AddItem(c.Context(), kioskSession(c), in.ProductID, in.Barcode, in.Quantity)
	if err != nil {
		return errorResponse(c, err)
	}
	if added == 0 {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "ya no hay existencia disponible de ese producto"})
	}
	return h.cartJSON(c)
}

// Cart muestra el carrito del kiosco.
func (h *KioskHandler) Cart(c *fiber.Ctx) error {
	return h.cartJSON(c)
}

// Remove quita un producto del carrito del kiosco.
func (h *KioskHandler) Remove(c *fiber.Ctx) error {
	if err := h.svc.RemoveItem(c.Context(), kioskSession(c), c.Params("productId")); err != nil {
		return errorResponse(c, err)
	}
	return h.cartJSON(c)
}

// Decrease resta una unidad en el carrito del kiosco.
func (h *KioskHandler) Decrease(c *fiber.Ctx) error {
	if err := h.svc.DecreaseItem(c.Context(), kioskSession(c), c.Params("productId")); err != nil {
		return errorResponse(c, err)
	}
	return h.cartJSON(c)
}

// Lookup consulta un producto por código de barras para mostrarlo en
// pantalla antes de agregarlo.
func (h *KioskHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.productUC.GetByBarcode(c.Params("barcode"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(out)
}

// Pay cobra el carrito del kiosco. Las terminales de autoservicio solo
// aceptan pago con tarjeta o transferencia: no hay cajón de efectivo.
func (h *KioskHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Method != entity.PaymentTarjeta && in.Method != entity.PaymentTransferencia {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_PAYMENT", Message: "el kiosco solo acepta tarjeta o transferencia"})
	}
	amounts := checkout.PaymentAmounts{
		Tarjeta:       in.Tarjeta,
		Transferencia: in.Transferencia,
	}
	ticket, err := h.svc.Pay(c.Context(), kioskSession(c), in.Method, amounts, h.cfg.UserID)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.TicketToResponse(ticket))
}
