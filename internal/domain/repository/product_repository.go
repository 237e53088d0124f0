package repository

import "github.com/dramirezh/puntoventa-api/internal/domain/entity"

// ProductFilter criterios de búsqueda/listado del catálogo.
type ProductFilter struct {
	Search      string // nombre, código de barras o descripción
	Category    string
	InStockOnly bool // solo productos con stock > 0 (autocobro)
	MinStock    int
	Limit       int
	Offset      int
}

// ProductRepository puerto de persistencia del catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	// List devuelve la página solicitada y el total de coincidencias.
	List(filter ProductFilter) ([]*entity.Product, int, error)
	Categories() ([]string, error)
	// DecrementStock descuenta qty solo si el stock actual alcanza
	// (UPDATE condicional atómico). Devuelve false si no alcanzó; el stock
	// nunca queda negativo.
	DecrementStock(id string, qty int) (bool, error)
	// IncrementStock repone unidades (devoluciones, recepción de mercancía).
	IncrementStock(id string, qty int) error
}
