package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category, barcode, cost,
	price_pieza, price_mayoreo, price_paquete, price_cuatro, price_cinco,
	min_mayoreo, min_paquete, min_cuatro, min_cinco,
	stock, stock_min, stock_max, description, image,
	discount_active, discount_amount, discount_min_qty, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Category, &p.Barcode, &p.Cost,
		&p.PricePieza, &p.PriceMayoreo, &p.PricePaquete, &p.PriceCuatro, &p.PriceCinco,
		&p.MinMayoreo, &p.MinPaquete, &p.MinCuatro, &p.MinCinco,
		&p.Stock, &p.StockMin, &p.StockMax, &p.Description, &p.Image,
		&p.Discount.Active, &p.Discount.Amount, &p.Discount.MinQuantity,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Barcode, product.Cost,
		product.PricePieza, product.PriceMayoreo, product.PricePaquete, product.PriceCuatro, product.PriceCinco,
		product.MinMayoreo, product.MinPaquete, product.MinCuatro, product.MinCinco,
		product.Stock, product.StockMin, product.StockMax, product.Description, product.Image,
		product.Discount.Active, product.Discount.Amount, product.Discount.MinQuantity,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// GetByBarcode obtiene un producto por código de barras (escáner de caja).
func (r *ProductRepo) GetByBarcode(barcode string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(context.Background(),
		`SELECT `+productColumns+` FROM products WHERE barcode = $1 LIMIT 1`, barcode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by barcode: %w", err)
	}
	return p, nil
}

// Update actualiza un producto. El stock se modifica aparte
// (DecrementStock/IncrementStock) para no pisar ventas concurrentes.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET
			name = $2, category = $3, barcode = $4, cost = $5,
			price_pieza = $6, price_mayoreo = $7, price_paquete = $8, price_cuatro = $9, price_cinco = $10,
			min_mayoreo = $11, min_paquete = $12, min_cuatro = $13, min_cinco = $14,
			stock_min = $15, stock_max = $16, description = $17, image = $18,
			discount_active = $19, discount_amount = $20, discount_min_qty = $21, updated_at = $22
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		product.ID, product.Name, product.Category, product.Barcode, product.Cost,
		product.PricePieza, product.PriceMayoreo, product.PricePaquete, product.PriceCuatro, product.PriceCinco,
		product.MinMayoreo, product.MinPaquete, product.MinCuatro, product.MinCinco,
		product.StockMin, product.StockMax, product.Description, product.Image,
		product.Discount.Active, product.Discount.Amount, product.Discount.MinQuantity, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// Delete elimina un producto por ID.
func (r *ProductRepo) Delete(id string) error {
	cmd, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List devuelve la página filtrada y el total de coincidencias.
func (r *ProductRepo) List(filter repository.ProductFilter) ([]*entity.Product, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	n := 0
	if filter.Search != "" {
		n++
		where += fmt.Sprintf(" AND (name ILIKE $%d OR barcode = $%d)", n, n+1)
		args = append(args, "%"+filter.Search+"%", filter.Search)
		n++
	}
	if filter.Category != "" {
		n++
		where += fmt.Sprintf(" AND category = $%d", n)
		args = append(args, filter.Category)
	}
	if filter.InStockOnly {
		where += " AND stock > 0"
	}
	if filter.MinStock > 0 {
		n++
		where += fmt.Sprintf(" AND stock <= $%d", n)
		args = append(args, filter.MinStock)
	}

	var total int
	if err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(` ORDER BY name ASC LIMIT $%d OFFSET $%d`, n+1, n+2)
	args = append(args, limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// Categories devuelve las categorías existentes, sin repetir.
func (r *ProductRepo) Categories() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT DISTINCT category FROM products WHERE category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// DecrementStock descuenta qty solo si hay existencia suficiente; el WHERE
// condicional hace el chequeo y el descuento en una sola operación atómica.
// Devuelve false si el producto no existe o el stock no alcanza.
func (r *ProductRepo) DecrementStock(id string, qty int) (bool, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock - $2, updated_at = now() WHERE id = $1 AND stock >= $2`,
		id, qty,
	)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// IncrementStock repone existencia (recepción de mercancía o ajuste manual).
func (r *ProductRepo) IncrementStock(id string, qty int) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`,
		id, qty,
	)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
