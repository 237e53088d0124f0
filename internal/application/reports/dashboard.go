package reports

import (
	"fmt"
	"time"

	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

// DashboardUseCase arma los widgets del panel del administrador.
type DashboardUseCase struct {
	reportRepo  repository.ReportRepository
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
}

// NewDashboardUseCase construye el caso de uso del dashboard.
func NewDashboardUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
) *DashboardUseCase {
	return &DashboardUseCase{reportRepo: reportRepo, saleRepo: saleRepo, productRepo: productRepo}
}

// Summary KPIs generales: ventas e ingresos acumulados, pendientes en
// espera, productos con stock bajo y distribución por método (últimos 30 días).
func (uc *DashboardUseCase) Summary() (*dto.DashboardSummaryDTO, error) {
	count, revenue, err := uc.reportRepo.SalesSummary()
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}
	pendientes, err := uc.saleRepo.CountByStatus(entity.SaleStatusPendiente)
	if err != nil {
		return nil, fmt.Errorf("dashboard: pendientes: %w", err)
	}
	since := time.Now().AddDate(0, 0, -30)
	methods, err := uc.reportRepo.MethodDistribution(since)
	if err != nil {
		return nil, fmt.Errorf("dashboard: métodos: %w", err)
	}
	lowStock, _, err := uc.productRepo.List(repository.ProductFilter{MinStock: 5, Limit: 20})
	if err != nil {
		return nil, fmt.Errorf("dashboard: stock bajo: %w", err)
	}

	out := &dto.DashboardSummaryDTO{
		TotalVentas: count,
		Ingresos:    revenue,
		Pendientes:  pendientes,
		PorMetodo:   methods,
		StockBajo:   make([]dto.LowStockDTO, 0, len(lowStock)),
	}
	for _, p := range lowStock {
		out.StockBajo = append(out.StockBajo, dto.LowStockDTO{
			ProductID: p.ID,
			Name:      p.Name,
			Stock:     p.Stock,
			StockMin:  p.StockMin,
		})
	}
	return out, nil
}

// TopProducts los más vendidos por unidades.
func (uc *DashboardUseCase) TopProducts(limit int) ([]dto.TopProductDTO, error) {
	if limit <= 0 || limit > 50 {
		limit = 5
	}
	top, err := uc.reportRepo.TopProducts(limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: top productos: %w", err)
	}
	out := make([]dto.TopProductDTO, 0, len(top))
	for _, t := range top {
		out = append(out, dto.TopProductDTO{
			ProductID:   t.ProductID,
			ProductName: t.ProductName,
			UnitsSold:   t.UnitsSold,
		})
	}
	return out, nil
}

// DailySeries ingresos por día de los últimos 30 días.
func (uc *DashboardUseCase) DailySeries() ([]dto.SeriesPointDTO, error) {
	return uc.series(func(since time.Time) ([]repository.SeriesPoint, error) {
		return uc.reportRepo.DailySeries(since)
	}, time.Now().AddDate(0, 0, -30))
}

// HourlySeries ingresos por hora del día, últimos 14 días.
func (uc *DashboardUseCase) HourlySeries() ([]dto.SeriesPointDTO, error) {
	return uc.series(func(since time.Time) ([]repository.SeriesPoint, error) {
		return uc.reportRepo.HourlySeries(since)
	}, time.Now().AddDate(0, 0, -14))
}

// WeekdaySeries ingresos por día de la semana, últimos 90 días.
func (uc *DashboardUseCase) WeekdaySeries() ([]dto.SeriesPointDTO, error) {
	return uc.series(func(since time.Time) ([]repository.SeriesPoint, error) {
		return uc.reportRepo.WeekdaySeries(since)
	}, time.Now().AddDate(0, 0, -90))
}

func (uc *DashboardUseCase) series(
	fetch func(time.Time) ([]repository.SeriesPoint, error),
	since time.Time,
) ([]dto.SeriesPointDTO, error) {
	points, err := fetch(since)
	if err != nil {
		return nil, fmt.Errorf("dashboard: serie: %w", err)
	}
	out := make([]dto.SeriesPointDTO, 0, len(points))
	for _, p := range points {
		out = append(out, dto.SeriesPointDTO{
			Label:    p.Label,
			Ingresos: p.Ingresos,
			Ventas:   p.Ventas,
		})
	}
	return out, nil
}
