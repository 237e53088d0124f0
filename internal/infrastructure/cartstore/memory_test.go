package cartstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

func TestMemoryStore_SesionInexistenteDevuelveVacia(t *testing.T) {
	store := NewMemoryStore()

	session, err := store.Get(context.Background(), "caja-1")
	require.NoError(t, err)
	assert.Empty(t, session.Cart)
}

func TestMemoryStore_AislaSesiones(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	p := &entity.Product{ID: "p1", Name: "Refresco", PricePieza: decimal.NewFromInt(10), Stock: 10}
	cart, _ := checkout.Cart{}.Add(p, 2)
	require.NoError(t, store.Save(ctx, "caja-1", &checkout.Session{Cart: cart, Tier: entity.TierPieza}))

	otra, err := store.Get(ctx, "caja-2")
	require.NoError(t, err)
	assert.Empty(t, otra.Cart, "cada sesión tiene su propio carrito")

	mia, err := store.Get(ctx, "caja-1")
	require.NoError(t, err)
	assert.Equal(t, 2, mia.Cart.Count())
}

func TestMemoryStore_GetDevuelveCopia(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	p := &entity.Product{ID: "p1", Name: "Refresco", PricePieza: decimal.NewFromInt(10), Stock: 10}
	cart, _ := checkout.Cart{}.Add(p, 1)
	require.NoError(t, store.Save(ctx, "caja-1", &checkout.Session{Cart: cart}))

	a, _ := store.Get(ctx, "caja-1")
	a.Cart[0].Quantity = 99

	b, _ := store.Get(ctx, "caja-1")
	assert.Equal(t, 1, b.Cart[0].Quantity, "mutar lo devuelto no debe tocar lo guardado")
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	p := &entity.Product{ID: "p1", Name: "Refresco", PricePieza: decimal.NewFromInt(10), Stock: 10}
	cart, _ := checkout.Cart{}.Add(p, 1)
	require.NoError(t, store.Save(ctx, "caja-1", &checkout.Session{Cart: cart}))
	require.NoError(t, store.Clear(ctx, "caja-1"))

	session, err := store.Get(ctx, "caja-1")
	require.NoError(t, err)
	assert.Empty(t, session.Cart)
}
