package checkout

import (
	"context"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

// CartEntry par transitorio producto/cantidad. No se persiste: vive lo que
// dura la sesión del operador.
type CartEntry struct {
	Product  *entity.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart carrito de una sesión. Nunca es estado global del proceso: el motor
// lo recibe explícitamente y el CartStore lo aísla por sesión.
type Cart []CartEntry

// Count total de unidades en el carrito (para el contador de la UI).
func (c Cart) Count() int {
	n := 0
	for _, e := range c {
		n += e.Quantity
	}
	return n
}

// Add agrega qty unidades del producto respetando el stock disponible:
// devuelve el carrito resultante y cuántas unidades sí se agregaron.
func (c Cart) Add(product *entity.Product, qty int) (Cart, int) {
	if qty <= 0 {
		qty = 1
	}
	for i, e := range c {
		if e.Product.ID == product.ID {
			canAdd := product.Stock - e.Quantity
			if canAdd > qty {
				canAdd = qty
			}
			if canAdd < 0 {
				canAdd = 0
			}
			c[i].Quantity += canAdd
			c[i].Product = product
			return c, canAdd
		}
	}
	canAdd := qty
	if canAdd > product.Stock {
		canAdd = product.Stock
	}
	if canAdd <= 0 {
		return c, 0
	}
	return append(c, CartEntry{Product: product, Quantity: canAdd}), canAdd
}

// Remove elimina por completo un producto del carrito.
func (c Cart) Remove(productID string) Cart {
	out := c[:0]
	for _, e := range c {
		if e.Product.ID != productID {
			out = append(out, e)
		}
	}
	return out
}

// Decrease resta una unidad; si llega a cero la línea desaparece.
func (c Cart) Decrease(productID string) Cart {
	for i, e := range c {
		if e.Product.ID == productID {
			if e.Quantity > 1 {
				c[i].Quantity--
				return c
			}
			return append(c[:i], c[i+1:]...)
		}
	}
	return c
}

// Session estado de carrito de una sesión: entradas más el nivel de precio
// elegido por el operador.
type Session struct {
	Cart Cart             `json:"cart"`
	Tier entity.PriceTier `json:"tier"`
}

// CartStore guarda el carrito de cada sesión (Redis en producción, memoria
// en pruebas). La clave es el ID de sesión del operador o del kiosco.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*Session, error)
	Save(ctx context.Context, sessionID string, session *Session) error
	Clear(ctx context.Context, sessionID string) error
}
