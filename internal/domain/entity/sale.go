package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una venta. Una venta finalizada es terminal: nunca se muta,
// el libro de ventas es solo-agregar.
const (
	SaleStatusPendiente  = "pendiente"
	SaleStatusFinalizado = "finalizado"
)

// Métodos de pago aceptados.
const (
	PaymentEfectivo      = "efectivo"
	PaymentTarjeta       = "tarjeta"
	PaymentTransferencia = "transferencia"
	PaymentMixto         = "mixto"
)

// ValidPaymentMethod indica si m es uno de los métodos aceptados.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentEfectivo, PaymentTarjeta, PaymentTransferencia, PaymentMixto:
		return true
	}
	return false
}

// SaleItem línea de una venta. PriceAtSale captura el precio cobrado al
// momento de la transacción, desacoplado del precio vivo del producto para
// que los tickets históricos no cambien con futuros ajustes de precio.
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	PriceAtSale decimal.Decimal
}

// Sale representa una venta (pendiente o finalizada). En ventas pendientes
// los campos de pago quedan sin asignar; en finalizadas el método es
// obligatorio y la suma de los montos por método cubre el total.
type Sale struct {
	ID                string
	Items             []SaleItem
	Total             decimal.Decimal
	PaymentMethod     string
	PagoEfectivo      decimal.Decimal
	PagoTarjeta       decimal.Decimal
	PagoTransferencia decimal.Decimal
	Cambio            decimal.Decimal
	Date              time.Time
	UserID            string
	Status            string
	CreatedAt         time.Time
}

// TotalPagado suma los montos recibidos por los tres métodos.
func (s *Sale) TotalPagado() decimal.Decimal {
	return s.PagoEfectivo.Add(s.PagoTarjeta).Add(s.PagoTransferencia)
}
