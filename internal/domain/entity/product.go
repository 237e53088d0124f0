package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceTier identifica cuál de los cinco precios del producto se aplica.
// Reemplaza la selección por nombre de campo del sistema anterior: el tipo
// es cerrado y el fallback al precio por pieza es explícito en PriceFor.
type PriceTier string

const (
	TierPieza   PriceTier = "pricePieza"
	TierMayoreo PriceTier = "priceMayoreo"
	TierPaquete PriceTier = "pricePaquete"
	TierCuatro  PriceTier = "price4"
	TierCinco   PriceTier = "price5"
)

// ParsePriceTier normaliza un tipo de precio recibido por la API.
// Valores desconocidos o vacíos caen al precio por pieza.
func ParsePriceTier(s string) PriceTier {
	switch PriceTier(s) {
	case TierMayoreo, TierPaquete, TierCuatro, TierCinco:
		return PriceTier(s)
	default:
		return TierPieza
	}
}

// Discount descuento por volumen opcional de un producto: si está activo y
// la cantidad pedida alcanza MinQuantity, Amount se resta del precio unitario.
type Discount struct {
	Active      bool
	Amount      decimal.Decimal
	MinQuantity int
}

// Product representa un producto del catálogo con sus cinco niveles de precio.
// Stock nunca debe quedar negativo tras una venta; StockMin/StockMax son
// límites de reorden informativos.
type Product struct {
	ID           string
	Name         string
	Category     string
	Barcode      string // único
	Cost         decimal.Decimal
	PricePieza   decimal.Decimal // precio base de menudeo
	PriceMayoreo decimal.Decimal
	PricePaquete decimal.Decimal
	PriceCuatro  decimal.Decimal
	PriceCinco   decimal.Decimal
	MinMayoreo   int
	MinPaquete   int
	MinCuatro    int
	MinCinco     int
	Stock        int
	StockMin     int
	StockMax     int
	Description  string
	Image        string
	Discount     Discount
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PriceFor devuelve el precio del nivel solicitado, cayendo al precio por
// pieza cuando el nivel no está definido (cero o negativo).
func (p *Product) PriceFor(tier PriceTier) decimal.Decimal {
	var price decimal.Decimal
	switch tier {
	case TierMayoreo:
		price = p.PriceMayoreo
	case TierPaquete:
		price = p.PricePaquete
	case TierCuatro:
		price = p.PriceCuatro
	case TierCinco:
		price = p.PriceCinco
	default:
		price = p.PricePieza
	}
	if price.GreaterThan(decimal.Zero) {
		return price
	}
	return p.PricePieza
}

// MinQtyFor devuelve la cantidad mínima sugerida para el nivel de precio.
// Para el precio por pieza siempre es 1.
func (p *Product) MinQtyFor(tier PriceTier) int {
	switch tier {
	case TierMayoreo:
		return p.MinMayoreo
	case TierPaquete:
		return p.MinPaquete
	case TierCuatro:
		return p.MinCuatro
	case TierCinco:
		return p.MinCinco
	default:
		return 1
	}
}
