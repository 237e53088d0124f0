package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleAdministrador = "administrador"
	RoleCajero        = "cajero"
)

// User representa un operador del punto de venta. MontoInicial es el fondo
// de caja declarado al abrir el turno; las ventas se atribuyen en exclusiva
// al usuario que las realizó.
type User struct {
	ID           string
	Name         string
	Email        string // único
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         string // administrador | cajero
	MontoInicial decimal.Decimal
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario tiene rol administrador.
func (u *User) IsAdmin() bool { return u.Role == RoleAdministrador }
