package checkout

import (
	"context"

	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

// Service orquesta carrito por sesión y motor de cobro. Lo comparten la
// caja del cajero y el kiosco de autoservicio: cambia la sesión, no la
// lógica.
type Service struct {
	engine      *Engine
	store       CartStore
	productRepo repository.ProductRepository
}

// NewService construye el servicio de caja.
func NewService(engine *Engine, store CartStore, productRepo repository.ProductRepository) *Service {
	return &Service{engine: engine, store: store, productRepo: productRepo}
}

// Engine expone el motor para quien necesite totales puros.
func (s *Service) Engine() *Engine { return s.engine }

// GetCart devuelve la sesión y sus totales recalculados. Un carrito vacío
// regresa totales en cero, no error.
func (s *Service) GetCart(ctx context.Context, sessionID string) (*Session, Totals, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, Totals{}, err
	}
	if session.Tier == "" {
		session.Tier = entity.TierPieza
	}
	if len(session.Cart) == 0 {
		return session, Totals{}, nil
	}
	totals, err := s.engine.ComputeTotals(session.Cart, session.Tier)
	if err != nil {
		return nil, Totals{}, err
	}
	return session, *totals, nil
}

// AddItem agrega un producto (por ID o código de barras) respetando el
// stock. Devuelve cuántas unidades sí entraron.
func (s *Service) AddItem(ctx context.Context, sessionID, productID, barcode string, qty int) (int, error) {
	var product *entity.Product
	var err error
	switch {
	case productID != "":
		product, err = s.productRepo.GetByID(productID)
	case barcode != "":
		product, err = s.productRepo.GetByBarcode(barcode)
	default:
		return 0, domain.ErrInvalidInput
	}
	if err != nil {
		return 0, err
	}
	if product == nil {
		return 0, domain.ErrProductNotFound
	}

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	cart, added := session.Cart.Add(product, qty)
	session.Cart = cart
	if err := s.store.Save(ctx, sessionID, session); err != nil {
		return 0, err
	}
	return added, nil
}

// RemoveItem quita por completo un producto del carrito.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Cart = session.Cart.Remove(productID)
	return s.store.Save(ctx, sessionID, session)
}

// DecreaseItem resta una unidad de un producto del carrito.
func (s *Service) DecreaseItem(ctx context.Context, sessionID, productID string) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Cart = session.Cart.Decrease(productID)
	return s.store.Save(ctx, sessionID, session)
}

// SetTier cambia el nivel de precio de la sesión.
func (s *Service) SetTier(ctx context.Context, sessionID string, tier entity.PriceTier) error {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Tier = tier
	return s.store.Save(ctx, sessionID, session)
}

// Clear vacía el carrito de la sesión.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// Pay cobra el carrito de la sesión. Solo si el cobro entra completo se
// limpia el carrito; si falla, queda intacto para reintentar.
func (s *Service) Pay(ctx context.Context, sessionID, method string, amounts PaymentAmounts, userID string) (*Ticket, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Tier == "" {
		session.Tier = entity.TierPieza
	}
	ticket, err := s.engine.Commit(ctx, session.Cart, session.Tier, method, amounts, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return ticket, nil
}

// Hold aparta el carrito como venta pendiente y limpia la sesión.
func (s *Service) Hold(ctx context.Context, sessionID, userID string) (*entity.Sale, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Tier == "" {
		session.Tier = entity.TierPieza
	}
	sale, err := s.engine.HoldPending(ctx, session.Cart, session.Tier, userID)
	if err != nil {
		return nil, err
	}
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return nil, err
	}
	return sale, nil
}

// Resume retoma una venta pendiente hacia el carrito de la sesión. El
// carrito actual de la sesión se reemplaza.
func (s *Service) Resume(ctx context.Context, sessionID, saleID, userID string) error {
	cart, err := s.engine.ResumePending(ctx, saleID, userID)
	if err != nil {
		return err
	}
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Cart = cart
	return s.store.Save(ctx, sessionID, session)
}
