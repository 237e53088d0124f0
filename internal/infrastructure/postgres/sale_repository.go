package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación del puerto SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de persistencia para ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la venta con sus renglones. Dentro del TxRunner ambos
// INSERT caen en la misma transacción que el descuento de stock.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, total, payment_method, pago_efectivo, pago_tarjeta, pago_transferencia, cambio, date, user_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.Total, sale.PaymentMethod,
		sale.PagoEfectivo, sale.PagoTarjeta, sale.PagoTransferencia,
		sale.Cambio, sale.Date, sale.UserID, sale.Status, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, item := range sale.Items {
		_, err := r.q.Exec(context.Background(),
			`INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, price_at_sale)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			item.ID, sale.ID, item.ProductID, item.ProductName, item.Quantity, item.PriceAtSale,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene una venta con sus renglones.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `
		SELECT id, total, payment_method, pago_efectivo, pago_tarjeta, pago_transferencia, cambio, date, user_id, status, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.Total, &s.PaymentMethod,
		&s.PagoEfectivo, &s.PagoTarjeta, &s.PagoTransferencia,
		&s.Cambio, &s.Date, &s.UserID, &s.Status, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.itemsFor([]string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

// DeleteByID elimina la venta y sus renglones (los items caen por cascada).
func (r *SaleRepo) DeleteByID(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// saleWhere arma el WHERE compartido entre List y Totals.
func saleWhere(filter repository.SaleFilter) (string, []any) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.UserID != "" {
		n++
		where += fmt.Sprintf(" AND s.user_id = $%d", n)
		args = append(args, filter.UserID)
	}
	if filter.Status != "" {
		n++
		where += fmt.Sprintf(" AND s.status = $%d", n)
		args = append(args, filter.Status)
	}
	if filter.From != nil {
		n++
		where += fmt.Sprintf(" AND s.date >= $%d", n)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		n++
		where += fmt.Sprintf(" AND s.date < $%d", n)
		args = append(args, *filter.To)
	}
	if filter.ProductTerm != "" {
		n++
		where += fmt.Sprintf(" AND EXISTS (SELECT 1 FROM sale_items si WHERE si.sale_id = s.id AND si.product_name ILIKE $%d)", n)
		args = append(args, "%"+filter.ProductTerm+"%")
	}
	return where, args
}

// List devuelve la página filtrada (más recientes primero) y el total de coincidencias.
func (r *SaleRepo) List(filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	where, args := saleWhere(filter)

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT s.id, s.total, s.payment_method, s.pago_efectivo, s.pago_tarjeta, s.pago_transferencia, s.cambio, s.date, s.user_id, s.status, s.created_at
		FROM sales s` + where +
		fmt.Sprintf(` ORDER BY s.date DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var list []*entity.Sale
	var ids []string
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.Total, &s.PaymentMethod,
			&s.PagoEfectivo, &s.PagoTarjeta, &s.PagoTransferencia,
			&s.Cambio, &s.Date, &s.UserID, &s.Status, &s.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	items, err := r.itemsFor(ids)
	if err != nil {
		return nil, 0, err
	}
	for _, s := range list {
		s.Items = items[s.ID]
	}
	return list, total, nil
}

// itemsFor carga los renglones de un lote de ventas en una sola consulta.
func (r *SaleRepo) itemsFor(saleIDs []string) (map[string][]entity.SaleItem, error) {
	out := make(map[string][]entity.SaleItem, len(saleIDs))
	if len(saleIDs) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(context.Background(),
		`SELECT id, sale_id, product_id, product_name, quantity, price_at_sale
		 FROM sale_items WHERE sale_id = ANY($1) ORDER BY product_name`,
		saleIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity, &it.PriceAtSale); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out[it.SaleID] = append(out[it.SaleID], it)
	}
	return out, rows.Err()
}

// CountByStatus cuenta ventas por estatus (pendientes en espera, por ejemplo).
func (r *SaleRepo) CountByStatus(status string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales WHERE status = $1`, status).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count sales by status: %w", err)
	}
	return n, nil
}

// Totals agrega el total general y el desglose por método para el corte de
// caja. Solo considera ventas finalizadas.
func (r *SaleRepo) Totals(filter repository.SaleFilter) (decimal.Decimal, repository.MethodTotals, error) {
	filter.Status = entity.SaleStatusFinalizado
	where, args := saleWhere(filter)

	query := `
		SELECT
			COALESCE(SUM(s.total), 0),
			COALESCE(SUM(s.total) FILTER (WHERE s.payment_method = 'efectivo'), 0),
			COALESCE(SUM(s.total) FILTER (WHERE s.payment_method = 'tarjeta'), 0),
			COALESCE(SUM(s.total) FILTER (WHERE s.payment_method = 'transferencia'), 0),
			COALESCE(SUM(s.total) FILTER (WHERE s.payment_method = 'mixto'), 0),
			COALESCE(SUM(s.pago_efectivo - s.cambio), 0)
		FROM sales s` + where

	var total decimal.Decimal
	var mt repository.MethodTotals
	err := r.q.QueryRow(context.Background(), query, args...).Scan(
		&total, &mt.Efectivo, &mt.Tarjeta, &mt.Transferencia, &mt.Mixto, &mt.EfectivoNeto,
	)
	if err != nil {
		return decimal.Zero, repository.MethodTotals{}, fmt.Errorf("sale totals: %w", err)
	}
	return total, mt, nil
}
