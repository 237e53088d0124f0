package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// memCartStore guarda las sesiones en un mapa, con semántica de copia como
// el store real.
type memCartStore struct {
	sessions map[string]*Session
}

func newMemCartStore() *memCartStore {
	return &memCartStore{sessions: make(map[string]*Session)}
}

func (s *memCartStore) Get(ctx context.Context, sessionID string) (*Session, error) {
	if session, ok := s.sessions[sessionID]; ok {
		clone := *session
		return &clone, nil
	}
	return &Session{}, nil
}

func (s *memCartStore) Save(ctx context.Context, sessionID string, session *Session) error {
	clone := *session
	s.sessions[sessionID] = &clone
	return nil
}

func (s *memCartStore) Clear(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func newTestService(products []*entity.Product) (*Service, *memProductRepo, *memSaleRepo) {
	engine, productRepo, saleRepo := newTestEngine(products)
	return NewService(engine, newMemCartStore(), productRepo), productRepo, saleRepo
}

func TestServiceGetCart_SesionNuevaRegresaTotalesEnCero(t *testing.T) {
	svc, _, _ := newTestService(nil)

	session, totals, err := svc.GetCart(context.Background(), "caja:u1")
	require.NoError(t, err)

	assert.Equal(t, entity.TierPieza, session.Tier)
	assert.Equal(t, 0, session.Cart.Count())
	assert.True(t, totals.Total.IsZero())
}

func TestServiceGetCart_RecalculaTotalesDelCarrito(t *testing.T) {
	svc, _, _ := newTestService([]*entity.Product{
		productoBase("p1", "Refresco", "10.00", 50),
	})
	ctx := context.Background()

	added, err := svc.AddItem(ctx, "caja:u1", "p1", "", 3)
	require.NoError(t, err)
	require.Equal(t, 3, added)

	_, totals, err := svc.GetCart(ctx, "caja:u1")
	require.NoError(t, err)

	// 3 x $10.00 + 16% de IVA
	assert.True(t, totals.Subtotal.Equal(dec("30")), "subtotal: %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(dec("4.8")), "iva: %s", totals.Tax)
	assert.True(t, totals.Total.Equal(dec("34.8")), "total: %s", totals.Total)
	require.Len(t, totals.Lines, 1)
	assert.Equal(t, 3, totals.Lines[0].Quantity)
}

func TestServiceGetCart_SesionesAisladas(t *testing.T) {
	svc, _, _ := newTestService([]*entity.Product{
		productoBase("p1", "Refresco", "10.00", 50),
	})
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "caja:u1", "p1", "", 2)
	require.NoError(t, err)

	_, totalsOtra, err := svc.GetCart(ctx, "kiosk:t9")
	require.NoError(t, err)
	assert.True(t, totalsOtra.Total.IsZero(), "otra sesión no debe ver el carrito ajeno")
}
