package usecase

import (
	"time"

	"github.com/dramirezh/puntoventa-api/internal/application/dto"
	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

// SaleUseCase consultas del ledger de ventas. Las ventas nunca se editan:
// solo se listan, se consultan y (solo admin) se eliminan pendientes.
type SaleUseCase struct {
	repo repository.SaleRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(repo repository.SaleRepository) *SaleUseCase {
	return &SaleUseCase{repo: repo}
}

// ListFilter filtros de búsqueda del ledger.
type ListFilter struct {
	UserID      string
	Status      string
	ProductTerm string
	From, To    *time.Time
	Limit       int
	Offset      int
}

// List devuelve la página filtrada del ledger, más recientes primero.
func (uc *SaleUseCase) List(f ListFilter) (*dto.SaleListResponse, error) {
	sales, total, err := uc.repo.List(repository.SaleFilter{
		UserID:      f.UserID,
		Status:      f.Status,
		ProductTerm: f.ProductTerm,
		From:        f.From,
		To:          f.To,
		Limit:       f.Limit,
		Offset:      f.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: f.Limit, Offset: f.Offset, Total: total},
	}
	for _, s := range sales {
		out.Items = append(out.Items, dto.SaleToResponse(s))
	}
	return out, nil
}

// GetByID obtiene una venta con sus renglones.
func (uc *SaleUseCase) GetByID(id string) (*dto.SaleResponse, error) {
	sale, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	resp := dto.SaleToResponse(sale)
	return &resp, nil
}

// GetEntity obtiene la entidad cruda (para reimprimir tickets).
func (uc *SaleUseCase) GetEntity(id string) (*entity.Sale, error) {
	sale, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

// DeletePending elimina una venta apartada que nunca se va a retomar.
// Una venta finalizada es inmutable: no se puede borrar.
func (uc *SaleUseCase) DeletePending(id string) error {
	sale, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sale == nil {
		return domain.ErrNotFound
	}
	if sale.Status != entity.SaleStatusPendiente {
		return domain.ErrSaleFinalized
	}
	return uc.repo.DeleteByID(id)
}
