package repository

import (
	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// UserRepository puerto de persistencia de usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	List() ([]*entity.User, error)
	Update(user *entity.User) error
	// SetMontoInicial registra el fondo de caja del turno.
	SetMontoInicial(userID string, monto decimal.Decimal) error
	Delete(id string) error
}
