package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas de solo lectura para el dashboard.
// Todas las métricas consideran únicamente ventas finalizadas.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesSummary cuenta de ventas e ingresos acumulados de todos los tiempos.
func (r *ReportRepo) SalesSummary() (int, decimal.Decimal, error) {
	var count int
	var revenue decimal.Decimal
	err := r.pool.QueryRow(context.Background(),
		`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE status = $1`,
		entity.SaleStatusFinalizado,
	).Scan(&count, &revenue)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("reports.SalesSummary: %w", err)
	}
	return count, revenue, nil
}

// MethodDistribution número de ventas por método de pago desde la fecha dada.
func (r *ReportRepo) MethodDistribution(since time.Time) (map[string]int, error) {
	rows, err := r.pool.Query(context.Background(),
		`SELECT payment_method, COUNT(*)
		 FROM sales
		 WHERE status = $1 AND date >= $2
		 GROUP BY payment_method`,
		entity.SaleStatusFinalizado, since,
	)
	if err != nil {
		return nil, fmt.Errorf("reports.MethodDistribution: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var method string
		var n int
		if err := rows.Scan(&method, &n); err != nil {
			return nil, fmt.Errorf("reports.MethodDistribution scan: %w", err)
		}
		out[method] = n
	}
	return out, rows.Err()
}

// TopProducts productos más vendidos por unidades acumuladas.
func (r *ReportRepo) TopProducts(limit int) ([]repository.TopProduct, error) {
	const query = `
	SELECT
	    si.product_id,
	    si.product_name,
	    SUM(si.quantity) AS units_sold
	FROM sale_items si
	JOIN sales s ON s.id = si.sale_id
	WHERE s.status = $1
	GROUP BY si.product_id, si.product_name
	ORDER BY units_sold DESC
	LIMIT $2`

	rows, err := r.pool.Query(context.Background(), query, entity.SaleStatusFinalizado, limit)
	if err != nil {
		return nil, fmt.Errorf("reports.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProduct
	for rows.Next() {
		var row repository.TopProduct
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.UnitsSold); err != nil {
			return nil, fmt.Errorf("reports.TopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// series corre una consulta agregada por la expresión de agrupamiento dada.
// groupExpr debe ser una expresión fija del código, nunca entrada del usuario.
func (r *ReportRepo) series(groupExpr string, since time.Time) ([]repository.SeriesPoint, error) {
	query := fmt.Sprintf(`
	SELECT
	    %s               AS label,
	    COALESCE(SUM(total), 0) AS ingresos,
	    COUNT(*)         AS ventas
	FROM sales
	WHERE status = $1 AND date >= $2
	GROUP BY label
	ORDER BY label`, groupExpr)

	rows, err := r.pool.Query(context.Background(), query, entity.SaleStatusFinalizado, since)
	if err != nil {
		return nil, fmt.Errorf("reports.series: %w", err)
	}
	defer rows.Close()

	var points []repository.SeriesPoint
	for rows.Next() {
		var p repository.SeriesPoint
		if err := rows.Scan(&p.Label, &p.Ingresos, &p.Ventas); err != nil {
			return nil, fmt.Errorf("reports.series scan: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

// DailySeries ingresos y número de ventas por día ("2006-01-02").
func (r *ReportRepo) DailySeries(since time.Time) ([]repository.SeriesPoint, error) {
	return r.series(`to_char(date, 'YYYY-MM-DD')`, since)
}

// HourlySeries ingresos y número de ventas por hora del día ("00".."23").
func (r *ReportRepo) HourlySeries(since time.Time) ([]repository.SeriesPoint, error) {
	return r.series(`to_char(date, 'HH24')`, since)
}

// WeekdaySeries ingresos y número de ventas por día de la semana ("0"=domingo.."6").
func (r *ReportRepo) WeekdaySeries(since time.Time) ([]repository.SeriesPoint, error) {
	return r.series(`EXTRACT(DOW FROM date)::int::text`, since)
}
