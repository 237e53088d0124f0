package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo persistencia de la configuración del negocio (fila única).
type ConfigRepo struct {
	pool *pgxpool.Pool
}

// NewConfigRepository construye el adaptador de configuración.
func NewConfigRepository(pool *pgxpool.Pool) *ConfigRepo {
	return &ConfigRepo{pool: pool}
}

// Get devuelve la configuración guardada, o nil si nunca se ha guardado
// (el negocio opera entonces con los valores por defecto).
func (r *ConfigRepo) Get() (*entity.Config, error) {
	var c entity.Config
	err := r.pool.QueryRow(context.Background(),
		`SELECT id, business_name, ticket_name, tax_rate, updated_at FROM config LIMIT 1`,
	).Scan(&c.ID, &c.BusinessName, &c.TicketName, &c.TaxRate, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &c, nil
}

// Save inserta o actualiza la fila única de configuración.
func (r *ConfigRepo) Save(c *entity.Config) error {
	query := `
		INSERT INTO config (id, business_name, ticket_name, tax_rate, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			ticket_name = EXCLUDED.ticket_name,
			tax_rate = EXCLUDED.tax_rate,
			updated_at = EXCLUDED.updated_at`
	_, err := r.pool.Exec(context.Background(), query,
		c.ID, c.BusinessName, c.TicketName, c.TaxRate, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}
