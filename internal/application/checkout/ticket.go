package checkout

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// TicketFromSale reconstruye el comprobante de una venta ya asentada en el
// ledger, con los precios capturados al momento del cobro (reimpresión).
func TicketFromSale(s *entity.Sale) *Ticket {
	t := &Ticket{
		SaleID: s.ID,
		Date:   s.Date,
		Method: s.PaymentMethod,
		Amounts: PaymentAmounts{
			Efectivo:      s.PagoEfectivo,
			Tarjeta:       s.PagoTarjeta,
			Transferencia: s.PagoTransferencia,
		},
		Cambio: s.Cambio,
		Total:  s.Total,
	}
	subtotal := decimal.Zero
	for _, it := range s.Items {
		lineTotal := it.PriceAtSale.Mul(decimal.NewFromInt(int64(it.Quantity)))
		t.Lines = append(t.Lines, LineTotal{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.PriceAtSale,
			Total:       lineTotal,
		})
		subtotal = subtotal.Add(lineTotal)
	}
	t.Subtotal = subtotal
	t.Tax = s.Total.Sub(subtotal)
	return t
}

// qrProduct renglón compacto del payload QR.
type qrProduct struct {
	Nombre   string          `json:"nombre"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
}

// qrTicket payload del código QR que el cliente escanea para validar su
// compra en el kiosco o en la caja.
type qrTicket struct {
	Folio     string          `json:"folio"`
	Fecha     time.Time       `json:"fecha"`
	Productos []qrProduct     `json:"productos"`
	Total     decimal.Decimal `json:"total"`
	Metodo    string          `json:"metodo"`
	Pagado    decimal.Decimal `json:"pagado"`
	Cambio    decimal.Decimal `json:"cambio"`
}

// QRPayload serializa el comprobante como JSON compacto para codificarlo
// en un QR (pantalla del kiosco y pie del ticket PDF).
func (t *Ticket) QRPayload() string {
	payload := qrTicket{
		Folio:     t.SaleID,
		Fecha:     t.Date,
		Productos: make([]qrProduct, 0, len(t.Lines)),
		Total:     t.Total,
		Metodo:    t.Method,
		Pagado:    t.Amounts.Sum(),
		Cambio:    t.Cambio,
	}
	for _, l := range t.Lines {
		payload.Productos = append(payload.Productos, qrProduct{
			Nombre:   l.ProductName,
			Cantidad: l.Quantity,
			Precio:   l.UnitPrice,
		})
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(raw)
}
