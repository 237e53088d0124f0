package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

// ConfigUseCase lectura y escritura de la configuración del negocio.
type ConfigUseCase struct {
	repo repository.ConfigRepository
}

// NewConfigUseCase construye el caso de uso.
func NewConfigUseCase(repo repository.ConfigRepository) *ConfigUseCase {
	return &ConfigUseCase{repo: repo}
}

// Get devuelve la configuración vigente; si nunca se ha guardado, los
// valores por defecto (IVA 16%).
func (uc *ConfigUseCase) Get() (*dto.ConfigResponse, error) {
	cfg, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &entity.Config{
			BusinessName: "Punto de Venta",
			TaxRate:      entity.DefaultTaxRatePercent,
		}
	}
	resp := dto.ConfigToResponse(cfg)
	return &resp, nil
}

// Save valida y guarda la configuración. TaxRate es porcentaje: 0 a 100.
func (uc *ConfigUseCase) Save(in dto.SaveConfigRequest) (*dto.ConfigResponse, error) {
	if in.TaxRate.IsNegative() || in.TaxRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.Get()
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	if existing != nil {
		id = existing.ID
	}
	cfg := &entity.Config{
		ID:           id,
		BusinessName: in.BusinessName,
		TicketName:   in.TicketName,
		TaxRate:      in.TaxRate,
		UpdatedAt:    time.Now(),
	}
	if err := uc.repo.Save(cfg); err != nil {
		return nil, err
	}
	resp := dto.ConfigToResponse(cfg)
	return &resp, nil
}
