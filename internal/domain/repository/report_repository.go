package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProduct unidades vendidas acumuladas de un producto.
type TopProduct struct {
	ProductID   string
	ProductName string
	UnitsSold   int
}

// SeriesPoint punto de una serie temporal (día "2006-01-02", hora "00".."23"
// o día de la semana "0".."6").
type SeriesPoint struct {
	Label    string
	Ingresos decimal.Decimal
	Ventas   int
}

// ReportRepository consultas agregadas de solo lectura para el dashboard.
type ReportRepository interface {
	// SalesSummary cuenta ventas finalizadas e ingresos acumulados de todos los tiempos.
	SalesSummary() (count int, revenue decimal.Decimal, err error)
	// MethodDistribution número de ventas finalizadas por método desde la fecha dada.
	MethodDistribution(since time.Time) (map[string]int, error)
	// TopProducts productos más vendidos por unidades.
	TopProducts(limit int) ([]TopProduct, error)
	DailySeries(since time.Time) ([]SeriesPoint, error)
	HourlySeries(since time.Time) ([]SeriesPoint, error)
	WeekdaySeries(since time.Time) ([]SeriesPoint, error)
}
