package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// SaleFilter criterios para consultar el libro de ventas.
type SaleFilter struct {
	UserID      string
	Status      string
	From        *time.Time
	To          *time.Time
	ProductTerm string // ID o fragmento de nombre de producto en las líneas
	Limit       int
	Offset      int
}

// MethodTotals acumulados por método de pago para el corte de caja.
type MethodTotals struct {
	Efectivo      decimal.Decimal
	Tarjeta       decimal.Decimal
	Transferencia decimal.Decimal
	Mixto         decimal.Decimal
	// EfectivoNeto billetes que entraron al cajón: pago en efectivo menos
	// cambio entregado. Incluye la parte en efectivo de los pagos mixtos.
	EfectivoNeto decimal.Decimal
}

// SaleRepository puerto del libro de ventas (solo-agregar: una venta
// finalizada no se actualiza, solo las pendientes pueden borrarse).
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	// DeleteByID elimina una venta pendiente (al retomarla o cancelarla).
	DeleteByID(id string) error
	// List devuelve la página solicitada (con líneas) y el total de coincidencias.
	List(filter SaleFilter) ([]*entity.Sale, int, error)
	CountByStatus(status string) (int, error)
	// Totals acumula el total general y por método sobre el filtro, sin paginar.
	Totals(filter SaleFilter) (decimal.Decimal, MethodTotals, error)
}
