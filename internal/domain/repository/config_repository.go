package repository

import "github.com/dramirezh/puntoventa-api/internal/domain/entity"

// ConfigRepository puerto del documento único de configuración del negocio.
type ConfigRepository interface {
	// Get devuelve la configuración vigente o nil si nunca se ha guardado.
	Get() (*entity.Config, error)
	// Save crea o reemplaza la configuración.
	Save(config *entity.Config) error
}
