package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	Category     string          `json:"category"`
	Barcode      string          `json:"barcode"`
	Cost         decimal.Decimal `json:"cost"`
	PricePieza   decimal.Decimal `json:"pricePieza" validate:"required"`
	PriceMayoreo decimal.Decimal `json:"priceMayoreo"`
	PricePaquete decimal.Decimal `json:"pricePaquete"`
	PriceCuatro  decimal.Decimal `json:"price4"`
	PriceCinco   decimal.Decimal `json:"price5"`
	MinMayoreo   int             `json:"minMayoreo"`
	MinPaquete   int             `json:"minPaquete"`
	MinCuatro    int             `json:"min4"`
	MinCinco     int             `json:"min5"`
	Stock        int             `json:"stock" validate:"min=0"`
	StockMin     int             `json:"stockMin"`
	StockMax     int             `json:"stockMax"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Discount     DiscountDTO     `json:"discount"`
}

// UpdateProductRequest entrada para actualizar un producto. El stock se
// ajusta con los endpoints de stock, no aquí.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category     *string          `json:"category"`
	Barcode      *string          `json:"barcode"`
	Cost         *decimal.Decimal `json:"cost"`
	PricePieza   *decimal.Decimal `json:"pricePieza"`
	PriceMayoreo *decimal.Decimal `json:"priceMayoreo"`
	PricePaquete *decimal.Decimal `json:"pricePaquete"`
	PriceCuatro  *decimal.Decimal `json:"price4"`
	PriceCinco   *decimal.Decimal `json:"price5"`
	MinMayoreo   *int             `json:"minMayoreo"`
	MinPaquete   *int             `json:"minPaquete"`
	MinCuatro    *int             `json:"min4"`
	MinCinco     *int             `json:"min5"`
	StockMin     *int             `json:"stockMin"`
	StockMax     *int             `json:"stockMax"`
	Description  *string          `json:"description"`
	Image        *string          `json:"image"`
	Discount     *DiscountDTO     `json:"discount"`
}

// AdjustStockRequest entrada para reponer o corregir existencia.
type AdjustStockRequest struct {
	Quantity int `json:"quantity" validate:"required"`
}

// DiscountDTO descuento por volumen de un producto.
type DiscountDTO struct {
	Active      bool            `json:"active"`
	Amount      decimal.Decimal `json:"amount"`
	MinQuantity int             `json:"minQuantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Barcode      string          `json:"barcode"`
	Cost         decimal.Decimal `json:"cost"`
	PricePieza   decimal.Decimal `json:"pricePieza"`
	PriceMayoreo decimal.Decimal `json:"priceMayoreo"`
	PricePaquete decimal.Decimal `json:"pricePaquete"`
	PriceCuatro  decimal.Decimal `json:"price4"`
	PriceCinco   decimal.Decimal `json:"price5"`
	MinMayoreo   int             `json:"minMayoreo"`
	MinPaquete   int             `json:"minPaquete"`
	MinCuatro    int             `json:"min4"`
	MinCinco     int             `json:"min5"`
	Stock        int             `json:"stock"`
	StockMin     int             `json:"stockMin"`
	StockMax     int             `json:"stockMax"`
	Description  string          `json:"description"`
	Image        string          `json:"image"`
	Discount     DiscountDTO     `json:"discount"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductToResponse mapea la entidad al DTO de salida.
func ProductToResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Category:     p.Category,
		Barcode:      p.Barcode,
		Cost:         p.Cost,
		PricePieza:   p.PricePieza,
		PriceMayoreo: p.PriceMayoreo,
		PricePaquete: p.PricePaquete,
		PriceCuatro:  p.PriceCuatro,
		PriceCinco:   p.PriceCinco,
		MinMayoreo:   p.MinMayoreo,
		MinPaquete:   p.MinPaquete,
		MinCuatro:    p.MinCuatro,
		MinCinco:     p.MinCinco,
		Stock:        p.Stock,
		StockMin:     p.StockMin,
		StockMax:     p.StockMax,
		Description:  p.Description,
		Image:        p.Image,
		Discount: DiscountDTO{
			Active:      p.Discount.Active,
			Amount:      p.Discount.Amount,
			MinQuantity: p.Discount.MinQuantity,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
