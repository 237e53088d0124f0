package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// SaveConfigRequest entrada para guardar la configuración del negocio.
// TaxRate es porcentaje (16 = 16%).
type SaveConfigRequest struct {
	BusinessName string          `json:"business_name" validate:"required,min=1,max=200"`
	TicketName   string          `json:"ticket_name" validate:"max=100"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
}

// ConfigResponse configuración vigente del negocio.
type ConfigResponse struct {
	BusinessName string          `json:"business_name"`
	TicketName   string          `json:"ticket_name"`
	TaxRate      decimal.Decimal `json:"tax_rate"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ConfigToResponse mapea la entidad al DTO de salida.
func ConfigToResponse(c *entity.Config) ConfigResponse {
	return ConfigResponse{
		BusinessName: c.BusinessName,
		TicketName:   c.TicketName,
		TaxRate:      c.TaxRate,
		UpdatedAt:    c.UpdatedAt,
	}
}
