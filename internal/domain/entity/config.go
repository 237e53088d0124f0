package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultTaxRatePercent se aplica cuando no hay configuración guardada (16%).
var DefaultTaxRatePercent = decimal.NewFromInt(16)

// Config ajustes del negocio (documento único): nombre, encabezado del
// ticket y porcentaje de impuesto. Entrada de solo lectura para el motor
// de cobro y la impresión de tickets.
type Config struct {
	ID           string
	BusinessName string
	TicketName   string
	TaxRate      decimal.Decimal // porcentaje, ej. 16
	UpdatedAt    time.Time
}

// TaxFraction devuelve la tasa como fracción (16 -> 0.16).
func (c *Config) TaxFraction() decimal.Decimal {
	return c.TaxRate.Div(decimal.NewFromInt(100))
}
