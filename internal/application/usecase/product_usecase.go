package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

// esCollator ordena nombres con reglas del español (ñ después de n,
// acentos sin peso). La base ordena por bytes; aquí se reordena la página.
var esCollator = collate.New(language.Spanish, collate.IgnoreCase)

// ProductUseCase casos de uso CRUD del catálogo. El stock se ajusta con
// AdjustStock, nunca con Update, para no pisar ventas concurrentes.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto del catálogo.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Barcode != "" {
		existing, _ := uc.repo.GetByBarcode(in.Barcode)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if in.PricePieza.IsNegative() || in.Stock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Category:     in.Category,
		Barcode:      in.Barcode,
		Cost:         in.Cost,
		PricePieza:   in.PricePieza,
		PriceMayoreo: in.PriceMayoreo,
		PricePaquete: in.PricePaquete,
		PriceCuatro:  in.PriceCuatro,
		PriceCinco:   in.PriceCinco,
		MinMayoreo:   in.MinMayoreo,
		MinPaquete:   in.MinPaquete,
		MinCuatro:    in.MinCuatro,
		MinCinco:     in.MinCinco,
		Stock:        in.Stock,
		StockMin:     in.StockMin,
		StockMax:     in.StockMax,
		Description:  in.Description,
		Image:        in.Image,
		Discount: entity.Discount{
			Active:      in.Discount.Active,
			Amount:      in.Discount.Amount,
			MinQuantity: in.Discount.MinQuantity,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := dto.ProductToResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ProductToResponse(product)
	return &resp, nil
}

// GetByBarcode busca por código de barras (escáner de la caja).
func (uc *ProductUseCase) GetByBarcode(barcode string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByBarcode(barcode)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.ProductToResponse(product)
	return &resp, nil
}

// Update actualiza un producto aplicando solo los campos presentes.
// No toca Stock: eso va por AdjustStock.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Barcode != nil {
		product.Barcode = *in.Barcode
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.PricePieza != nil {
		if in.PricePieza.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.PricePieza = *in.PricePieza
	}
	if in.PriceMayoreo != nil {
		product.PriceMayoreo = *in.PriceMayoreo
	}
	if in.PricePaquete != nil {
		product.PricePaquete = *in.PricePaquete
	}
	if in.PriceCuatro != nil {
		product.PriceCuatro = *in.PriceCuatro
	}
	if in.PriceCinco != nil {
		product.PriceCinco = *in.PriceCinco
	}
	if in.MinMayoreo != nil {
		product.MinMayoreo = *in.MinMayoreo
	}
	if in.MinPaquete != nil {
		product.MinPaquete = *in.MinPaquete
	}
	if in.MinCuatro != nil {
		product.MinCuatro = *in.MinCuatro
	}
	if in.MinCinco != nil {
		product.MinCinco = *in.MinCinco
	}
	if in.StockMin != nil {
		product.StockMin = *in.StockMin
	}
	if in.StockMax != nil {
		product.StockMax = *in.StockMax
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Image != nil {
		product.Image = *in.Image
	}
	if in.Discount != nil {
		product.Discount = entity.Discount{
			Active:      in.Discount.Active,
			Amount:      in.Discount.Amount,
			MinQuantity: in.Discount.MinQuantity,
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.ProductToResponse(product)
	return &resp, nil
}

// List devuelve la página filtrada, reordenada con colación en español.
func (uc *ProductUseCase) List(filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	products, total, err := uc.repo.List(filter)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return esCollator.CompareString(products[i].Name, products[j].Name) < 0
	})
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page: dto.PageResponse{
			Limit:  filter.Limit,
			Offset: filter.Offset,
			Total:  total,
		},
	}
	for _, p := range products {
		out.Items = append(out.Items, dto.ProductToResponse(p))
	}
	return out, nil
}

// Categories devuelve las categorías del catálogo ordenadas en español.
func (uc *ProductUseCase) Categories() ([]string, error) {
	cats, err := uc.repo.Categories()
	if err != nil {
		return nil, err
	}
	esCollator.SortStrings(cats)
	return cats, nil
}

// AdjustStock repone (positivo) o corrige (negativo) existencia.
func (uc *ProductUseCase) AdjustStock(id string, quantity int) (*dto.ProductResponse, error) {
	if quantity == 0 {
		return nil, domain.ErrInvalidInput
	}
	if quantity > 0 {
		if err := uc.repo.IncrementStock(id, quantity); err != nil {
			return nil, err
		}
	} else {
		ok, err := uc.repo.DecrementStock(id, -quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrInsufficientStock
		}
	}
	return uc.GetByID(id)
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}
