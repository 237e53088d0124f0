package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO KPIs principales del panel del administrador.
type DashboardSummaryDTO struct {
	TotalVentas int             `json:"total_ventas"`
	Ingresos    decimal.Decimal `json:"ingresos"`
	Pendientes  int             `json:"pendientes"`
	// PorMetodo número de ventas por método de pago, últimos 30 días.
	PorMetodo map[string]int `json:"por_metodo"`
	StockBajo []LowStockDTO  `json:"stock_bajo"`
}

// LowStockDTO producto por debajo de su mínimo de existencia.
type LowStockDTO struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Stock     int    `json:"stock"`
	StockMin  int    `json:"stock_min"`
}

// TopProductDTO producto más vendido por unidades acumuladas.
type TopProductDTO struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitsSold   int    `json:"units_sold"`
}

// SeriesPointDTO punto de una serie temporal del dashboard.
type SeriesPointDTO struct {
	Label    string          `json:"label"`
	Ingresos decimal.Decimal `json:"ingresos"`
	Ventas   int             `json:"ventas"`
}
