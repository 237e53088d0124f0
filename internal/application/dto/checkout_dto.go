package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
)

// AddToCartRequest entrada para agregar un producto al carrito de la sesión.
// Se acepta ID o código de barras (escáner).
type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Barcode   string `json:"barcode"`
	Quantity  int    `json:"quantity" validate:"min=0"`
}

// SetTierRequest cambia el nivel de precio de la sesión (pieza, mayoreo...).
type SetTierRequest struct {
	Tier string `json:"tier" validate:"required"`
}

// CartLineResponse renglón del carrito con su importe.
type CartLineResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	Total       decimal.Decimal `json:"total"`
}

// CartResponse estado del carrito con totales recalculados.
type CartResponse struct {
	Lines         []CartLineResponse `json:"lines"`
	Count         int                `json:"count"`
	Tier          string             `json:"tier"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	TotalDiscount decimal.Decimal    `json:"total_discount"`
}

// PayRequest entrada para cobrar el carrito de la sesión.
type PayRequest struct {
	Method        string          `json:"method" validate:"required,oneof=efectivo tarjeta transferencia mixto"`
	Efectivo      decimal.Decimal `json:"efectivo"`
	Tarjeta       decimal.Decimal `json:"tarjeta"`
	Transferencia decimal.Decimal `json:"transferencia"`
}

// TicketResponse comprobante de una venta cobrada.
type TicketResponse struct {
	SaleID        string             `json:"sale_id"`
	Date          time.Time          `json:"date"`
	Lines         []CartLineResponse `json:"lines"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	Method        string             `json:"method"`
	Efectivo      decimal.Decimal    `json:"efectivo"`
	Tarjeta       decimal.Decimal    `json:"tarjeta"`
	Transferencia decimal.Decimal    `json:"transferencia"`
	Cambio        decimal.Decimal    `json:"cambio"`
	// QR payload JSON del comprobante, listo para codificar en pantalla.
	QR string `json:"qr"`
}

// CartToResponse arma el DTO del carrito a partir de los totales del motor.
func CartToResponse(totals checkout.Totals, count int, tier string) CartResponse {
	out := CartResponse{
		Lines:         make([]CartLineResponse, 0, len(totals.Lines)),
		Count:         count,
		Tier:          tier,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		TotalDiscount: totals.TotalDiscount,
	}
	for _, l := range totals.Lines {
		out.Lines = append(out.Lines, lineToResponse(l))
	}
	return out
}

// TicketToResponse mapea el comprobante del motor al DTO de salida.
func TicketToResponse(t *checkout.Ticket) TicketResponse {
	out := TicketResponse{
		SaleID:        t.SaleID,
		Date:          t.Date,
		Lines:         make([]CartLineResponse, 0, len(t.Lines)),
		Subtotal:      t.Subtotal,
		Tax:           t.Tax,
		Total:         t.Total,
		Method:        t.Method,
		Efectivo:      t.Amounts.Efectivo,
		Tarjeta:       t.Amounts.Tarjeta,
		Transferencia: t.Amounts.Transferencia,
		Cambio:        t.Cambio,
		QR:            t.QRPayload(),
	}
	for _, l := range t.Lines {
		out.Lines = append(out.Lines, lineToResponse(l))
	}
	return out
}

func lineToResponse(l checkout.LineTotal) CartLineResponse {
	return CartLineResponse{
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Discount:    l.Discount,
		Total:       l.Total,
	}
}
