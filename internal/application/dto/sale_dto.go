package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// SaleItemResponse renglón de una venta del ledger.
type SaleItemResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	PriceAtSale decimal.Decimal `json:"price_at_sale"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID            string             `json:"id"`
	Items         []SaleItemResponse `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	Efectivo      decimal.Decimal    `json:"efectivo"`
	Tarjeta       decimal.Decimal    `json:"tarjeta"`
	Transferencia decimal.Decimal    `json:"transferencia"`
	Cambio        decimal.Decimal    `json:"cambio"`
	Date          time.Time          `json:"date"`
	UserID        string             `json:"user_id"`
	Status        string             `json:"status"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CorteResponse corte de caja del turno: desglose por método más fondo inicial.
type CorteResponse struct {
	UserID               string          `json:"user_id"`
	UserName             string          `json:"user_name"`
	From                 time.Time       `json:"from"`
	To                   time.Time       `json:"to"`
	NumVentas            int             `json:"num_ventas"`
	Total                decimal.Decimal `json:"total"`
	Efectivo             decimal.Decimal `json:"efectivo"`
	Tarjeta              decimal.Decimal `json:"tarjeta"`
	Transferencia        decimal.Decimal `json:"transferencia"`
	Mixto                decimal.Decimal `json:"mixto"`
	MontoInicial         decimal.Decimal `json:"monto_inicial"`
	TotalConMontoInicial decimal.Decimal `json:"total_con_monto_inicial"`
	Sales                []SaleResponse  `json:"sales"`
}

// SaleToResponse mapea la entidad al DTO de salida.
func SaleToResponse(s *entity.Sale) SaleResponse {
	out := SaleResponse{
		ID:            s.ID,
		Items:         make([]SaleItemResponse, 0, len(s.Items)),
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		Efectivo:      s.PagoEfectivo,
		Tarjeta:       s.PagoTarjeta,
		Transferencia: s.PagoTransferencia,
		Cambio:        s.Cambio,
		Date:          s.Date,
		UserID:        s.UserID,
		Status:        s.Status,
	}
	for _, it := range s.Items {
		out.Items = append(out.Items, SaleItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			PriceAtSale: it.PriceAtSale,
		})
	}
	return out
}
