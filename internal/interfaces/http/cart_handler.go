package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// CartHandler caja del cajero: carrito de sesión, cobro, apartados.
// La sesión del carrito es el usuario autenticado: cada cajero tiene su
// propia caja aislada.
type CartHandler struct {
	svc *checkout.Service
}

// NewCartHandler construye el handler.
func NewCartHandler(svc *checkout.Service) *CartHandler {
	return &CartHandler{svc: svc}
}

func cashierSession(c *fiber.Ctx) string {
	return "caja:" + GetUserID(c)
}

// cartJSON responde el estado del carrito con totales recalculados.
func (h *CartHandler) cartJSON(c *fiber.Ctx) error {
	session, totals, err := h.svc.GetCart(c.Context(), cashierSession(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.CartToResponse(totals, session.Cart.Count(), string(session.Tier)))
}

// Get godoc
// @Summary      Ver carrito de la caja
// @Tags         cart
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CartResponse
// @Router       /api/cart [get]
func (h *CartHandler) Get(c *fiber.Ctx) error {
	return h.cartJSON(c)
}

// Add godoc
// @Summary      Agregar producto al carrito (por ID o código de barras)
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddToCartRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.CartResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cart/items [post]
func (h *CartHandler) Add(c *fiber.Ctx) error {
	var in dto.AddToCartRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if _, err := h.svc.AddItem(c.Context(), cashierSession(c), in.ProductID, in.Barcode, in.Quantity); err != nil {
		return errorResponse(c, err)
	}
	return h.cartJSON(c)
}

// Remove quita por completo un producto del carrito.
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	if err := h.svc.RemoveItem(c.Context(), cashierSession(c), c.Params("productId")); err != nil {
		return errorResponse(c, err)
	}
	return h.cartJSON(c)
}

// Decrease resta una unidad de un producto del carrito.
func (h *CartHandler) Decrease(c *fiber.Ctx) error {
	if err := h.svc.DecreaseItem(c.Context(), cashierSession(c), c.Params("productId")); err != nil {
		return errorResponse(c, err)
	}
	return h.cartJSON(c)
}

// SetTier cambia el nivel de precio de la sesión (pieza, mayoreo...).
func (h *CartHandler) SetTier(c *fiber.Ctx) error {
	var in dto.SetTierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tier := entity.ParsePriceTier(in.Tier)
	if err := h.svc.SetTier(c.Context(), cashierSession(c), tier); err != nil {
		return errorResponse(c, err)
	}
	return h.cartJSON(c)
}

// Clear vacía el carrito.
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.svc.Clear(c.Context(), cashierSession(c)); err != nil {
		return errorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Pay godoc
// @Summary      Cobrar el carrito
// @Tags         cart
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PayRequest  true  "Método y montos"
// @Success      200   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cart/pay [post]
func (h *CartHandler) Pay(c *fiber.Ctx) error {
	var in dto.PayRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	amounts := checkout.PaymentAmounts{
		Efectivo:      in.Efectivo,
		Tarjeta:       in.Tarjeta,
		Transferencia: in.Transferencia,
	}
	ticket, err := h.svc.Pay(c.Context(), cashierSession(c), in.Method, amounts, GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(dto.TicketToResponse(ticket))
}

// Hold aparta el carrito como venta pendiente (cliente que va por más).
func (h *CartHandler) Hold(c *fiber.Ctx) error {
	sale, err := h.svc.Hold(c.Context(), cashierSession(c), GetUserID(c))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SaleToResponse(sale))
}

// Resume retoma una venta pendiente hacia el carrito de la caja.
func (h *CartHandler) Resume(c *fiber.Ctx) error {
	if err := h.svc.Resume(c.Context(), cashierSession(c), c.Params("saleId"), GetUserID(c)); err != nil {
		return errorResponse(c, err)
	}
	return h.cartJSON(c)
}
