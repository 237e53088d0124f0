package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

type fakeConfigRepo struct {
	cfg *entity.Config
}

func (r *fakeConfigRepo) Get() (*entity.Config, error) { return r.cfg, nil }
func (r *fakeConfigRepo) Save(c *entity.Config) error  { r.cfg = c; return nil }

func TestConfigGet_SinGuardarRegresaDefaults(t *testing.T) {
	uc := NewConfigUseCase(&fakeConfigRepo{})

	out, err := uc.Get()
	require.NoError(t, err)

	assert.Equal(t, "Punto de Venta", out.BusinessName)
	assert.True(t, out.TaxRate.Equal(entity.DefaultTaxRatePercent),
		"sin configuración el IVA por defecto es 16%%: %s", out.TaxRate)
}

func TestConfigSave_ValidaRangoDelIVA(t *testing.T) {
	uc := NewConfigUseCase(&fakeConfigRepo{})

	_, err := uc.Save(dto.SaveConfigRequest{BusinessName: "Mi Negocio", TaxRate: dec("101")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Save(dto.SaveConfigRequest{BusinessName: "Mi Negocio", TaxRate: dec("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigSave_PersisteYConservaElID(t *testing.T) {
	repo := &fakeConfigRepo{}
	uc := NewConfigUseCase(repo)

	out, err := uc.Save(dto.SaveConfigRequest{BusinessName: "Mi Negocio", TicketName: "MI NEGOCIO", TaxRate: dec("8")})
	require.NoError(t, err)
	assert.Equal(t, "Mi Negocio", out.BusinessName)
	require.NotNil(t, repo.cfg)
	firstID := repo.cfg.ID
	require.NotEmpty(t, firstID)

	_, err = uc.Save(dto.SaveConfigRequest{BusinessName: "Mi Negocio Renombrado", TaxRate: dec("16")})
	require.NoError(t, err)
	assert.Equal(t, firstID, repo.cfg.ID, "la fila única conserva su ID entre guardados")
}
