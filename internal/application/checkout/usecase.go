package checkout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/dramirezh/puntoventa-api/internal/domain"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
	"github.com/dramirezh/puntoventa-api/internal/domain/repository"
)

// defaultTaxRate se aplica cuando no existe configuración guardada (16%).
var defaultTaxRate = decimal.New(16, -2)

// LineTotal desglose de una línea del carrito ya valorada.
type LineTotal struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"` // precio cobrado, ya con descuento
	Discount    decimal.Decimal `json:"discount"`  // descuento unitario aplicado
	Total       decimal.Decimal `json:"total"`
}

// Totals resultado de valorar un carrito. Sin efectos secundarios.
type Totals struct {
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	Total         decimal.Decimal `json:"total"`
	TotalDiscount decimal.Decimal `json:"totalDiscount"`
	Lines         []LineTotal     `json:"lines"`
}

// PaymentAmounts montos recibidos por método. En pagos simples solo se usa
// el campo del método elegido; en mixto pueden combinarse los tres.
type PaymentAmounts struct {
	Efectivo      decimal.Decimal `json:"pagoEfectivo"`
	Tarjeta       decimal.Decimal `json:"pagoTarjeta"`
	Transferencia decimal.Decimal `json:"pagoTransferencia"`
}

// Sum suma de los tres componentes.
func (a PaymentAmounts) Sum() decimal.Decimal {
	return a.Efectivo.Add(a.Tarjeta).Add(a.Transferencia)
}

// Payment pago ya validado contra un total.
type Payment struct {
	Method  string
	Amounts PaymentAmounts
	Cambio  decimal.Decimal
}

// Ticket proyección de solo lectura de una venta finalizada, lista para
// render (PDF, texto o JSON) por los consumidores aguas abajo.
type Ticket struct {
	SaleID   string          `json:"saleId"`
	Date     time.Time       `json:"date"`
	Lines    []LineTotal     `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
	Method   string          `json:"metodo"`
	Amounts  PaymentAmounts  `json:"pagos"`
	Cambio   decimal.Decimal `json:"cambio"`
}

// Engine transforma un carrito más un método de pago en una venta
// finalizada, haciendo cumplir los invariantes de stock y suficiencia de
// pago, y produce la proyección de ticket.
//
// El descuento de stock y el alta de la venta ocurren en UNA transacción:
// cada línea se descuenta con un UPDATE condicional (stock = stock - n
// solo si stock >= n) y un fallo en cualquier línea revierte todo.
type Engine struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	configRepo  repository.ConfigRepository
	// descuentos por volumen: opcional, apagado por defecto
	discountsEnabled bool
}

// Option configura el motor.
type Option func(*Engine)

// WithVolumeDiscounts habilita el descuento por volumen por producto.
func WithVolumeDiscounts() Option {
	return func(e *Engine) { e.discountsEnabled = true }
}

// NewEngine construye el motor de cobro.
func NewEngine(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	configRepo repository.ConfigRepository,
	opts ...Option,
) *Engine {
	e := &Engine{
		txRunner:    txRunner,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		configRepo:  configRepo,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TaxRate devuelve la tasa vigente como fracción (Config.TaxRate/100, o
// 0.16 si no hay configuración).
func (e *Engine) TaxRate() decimal.Decimal {
	if e.configRepo == nil {
		return defaultTaxRate
	}
	cfg, err := e.configRepo.Get()
	if err != nil || cfg == nil {
		return defaultTaxRate
	}
	return cfg.TaxFraction()
}

// ComputeTotals valora el carrito con el nivel de precio elegido. Cada
// línea usa product[tier] si es > 0 y si no el precio por pieza. No tiene
// efectos secundarios.
func (e *Engine) ComputeTotals(cart Cart, tier entity.PriceTier) (*Totals, error) {
	return computeTotals(cart, tier, e.TaxRate(), e.discountsEnabled)
}

func computeTotals(cart Cart, tier entity.PriceTier, taxRate decimal.Decimal, discounts bool) (*Totals, error) {
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}
	t := &Totals{Lines: make([]LineTotal, 0, len(cart))}
	for _, entry := range cart {
		p := entry.Product
		qty := decimal.NewFromInt(int64(entry.Quantity))
		unit := p.PriceFor(tier)

		var lineDiscount decimal.Decimal
		if discounts && p.Discount.Active && entry.Quantity >= p.Discount.MinQuantity && p.Discount.MinQuantity > 0 {
			lineDiscount = p.Discount.Amount
			unit = unit.Sub(lineDiscount)
			if unit.IsNegative() {
				unit = decimal.Zero
			}
			t.TotalDiscount = t.TotalDiscount.Add(lineDiscount.Mul(qty))
		}

		lineTotal := unit.Mul(qty)
		t.Subtotal = t.Subtotal.Add(lineTotal)
		t.Lines = append(t.Lines, LineTotal{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    entry.Quantity,
			UnitPrice:   unit,
			Discount:    lineDiscount,
			Total:       lineTotal,
		})
	}
	t.Tax = t.Subtotal.Mul(taxRate)
	t.Total = t.Subtotal.Add(t.Tax)
	return t, nil
}

// ValidateStock vuelve a consultar el stock autoritativo de cada línea.
// Falla en el primer producto por debajo de lo pedido; no hay surtido
// parcial. Debe llamarse inmediatamente antes del commit para acotar la
// ventana de carrera (la garantía dura la da el UPDATE condicional).
func (e *Engine) ValidateStock(cart Cart) error {
	if len(cart) == 0 {
		return domain.ErrEmptyCart
	}
	for _, entry := range cart {
		p, err := e.productRepo.GetByID(entry.Product.ID)
		if err != nil {
			return err
		}
		if p == nil {
			return &domain.ProductNotFoundError{ProductID: entry.Product.ID}
		}
		if p.Stock < entry.Quantity {
			return &domain.InsufficientStockError{
				ProductName: p.Name,
				Requested:   entry.Quantity,
				Available:   p.Stock,
			}
		}
	}
	return nil
}

// ValidatePayment aplica las reglas de pago:
//   - efectivo: lo recibido debe cubrir el total; el cambio es el excedente.
//   - tarjeta / transferencia: el monto se fuerza igual al total, sin cambio.
//   - mixto: la suma de componentes debe cubrir el total y la tarjeta no
//     puede exceder el total (la tarjeta no da cambio); el cambio sale del
//     excedente de efectivo/transferencia.
func ValidatePayment(method string, total decimal.Decimal, amounts PaymentAmounts) (*Payment, error) {
	if amounts.Efectivo.IsNegative() || amounts.Tarjeta.IsNegative() || amounts.Transferencia.IsNegative() {
		return nil, &domain.InvalidPaymentError{Reason: "los montos no pueden ser negativos"}
	}
	switch method {
	case entity.PaymentEfectivo:
		if amounts.Efectivo.LessThan(total) {
			return nil, &domain.InvalidPaymentError{Reason: "el monto en efectivo no cubre el total"}
		}
		return &Payment{
			Method:  method,
			Amounts: PaymentAmounts{Efectivo: amounts.Efectivo},
			Cambio:  amounts.Efectivo.Sub(total),
		}, nil
	case entity.PaymentTarjeta:
		// La tarjeta se carga exacta: no existe "cambio" con tarjeta.
		return &Payment{
			Method:  method,
			Amounts: PaymentAmounts{Tarjeta: total},
			Cambio:  decimal.Zero,
		}, nil
	case entity.PaymentTransferencia:
		return &Payment{
			Method:  method,
			Amounts: PaymentAmounts{Transferencia: total},
			Cambio:  decimal.Zero,
		}, nil
	case entity.PaymentMixto:
		if amounts.Tarjeta.GreaterThan(total) {
			return nil, &domain.InvalidPaymentError{Reason: "el componente de tarjeta excede el total"}
		}
		sum := amounts.Sum()
		if sum.LessThan(total) {
			return nil, &domain.InvalidPaymentError{Reason: "la suma de los pagos no cubre el total"}
		}
		return &Payment{
			Method:  method,
			Amounts: amounts,
			Cambio:  sum.Sub(total),
		}, nil
	default:
		return nil, &domain.InvalidPaymentError{Reason: "método de pago desconocido: " + method}
	}
}

// Commit finaliza la compra: valora el carrito, valida stock y pago,
// descuenta el inventario línea por línea con UPDATE condicional y persiste
// la venta finalizada — todo dentro de una sola transacción. Devuelve la
// proyección de ticket; el carrito de sesión lo limpia el caller.
func (e *Engine) Commit(
	ctx context.Context,
	cart Cart,
	tier entity.PriceTier,
	method string,
	amounts PaymentAmounts,
	userID string,
) (*Ticket, error) {
	totals, err := e.ComputeTotals(cart, tier)
	if err != nil {
		return nil, err
	}
	if err := e.ValidateStock(cart); err != nil {
		return nil, err
	}
	payment, err := ValidatePayment(method, totals.Total, amounts)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:                uuid.New().String(),
		Total:             totals.Total,
		PaymentMethod:     payment.Method,
		PagoEfectivo:      payment.Amounts.Efectivo,
		PagoTarjeta:       payment.Amounts.Tarjeta,
		PagoTransferencia: payment.Amounts.Transferencia,
		Cambio:            payment.Cambio,
		Date:              now,
		UserID:            userID,
		Status:            entity.SaleStatusFinalizado,
		CreatedAt:         now,
	}
	for _, line := range totals.Lines {
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			PriceAtSale: line.UnitPrice,
		})
	}

	err = e.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		saleRepo repository.SaleRepository,
	) error {
		for _, line := range totals.Lines {
			ok, err := productRepo.DecrementStock(line.ProductID, line.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// El UPDATE condicional no aplicó: alguien ganó la carrera.
				// La tx se revierte completa, ningún descuento queda aplicado.
				available := 0
				if p, err := productRepo.GetByID(line.ProductID); err == nil && p != nil {
					available = p.Stock
				}
				return &domain.InsufficientStockError{
					ProductName: line.ProductName,
					Requested:   line.Quantity,
					Available:   available,
				}
			}
		}
		return saleRepo.Create(sale)
	})
	if err != nil {
		return nil, err
	}

	return &Ticket{
		SaleID:   sale.ID,
		Date:     sale.Date,
		Lines:    totals.Lines,
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
		Method:   payment.Method,
		Amounts:  payment.Amounts,
		Cambio:   payment.Cambio,
	}, nil
}

// HoldPending aparta la transacción: persiste la venta con estado pendiente
// y sin campos de pago, sin tocar stock. El carrito de sesión lo limpia el
// caller una vez guardada.
func (e *Engine) HoldPending(ctx context.Context, cart Cart, tier entity.PriceTier, userID string) (*entity.Sale, error) {
	totals, err := e.ComputeTotals(cart, tier)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		Total:     totals.Total,
		Date:      now,
		UserID:    userID,
		Status:    entity.SaleStatusPendiente,
		CreatedAt: now,
	}
	for _, line := range totals.Lines {
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:          uuid.New().String(),
			SaleID:      sale.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			PriceAtSale: line.UnitPrice,
		})
	}
	if err := e.saleRepo.Create(sale); err != nil {
		return nil, err
	}
	return sale, nil
}

// ResumePending reconstruye un carrito desde una venta pendiente del
// usuario, re-resolviendo los productos contra el catálogo vigente, y borra
// el registro pendiente. Si algún producto ya no existe la venta pendiente
// queda intacta y se devuelve el error.
func (e *Engine) ResumePending(ctx context.Context, saleID, userID string) (Cart, error) {
	sale, err := e.saleRepo.GetByID(saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil || sale.Status != entity.SaleStatusPendiente {
		return nil, domain.ErrNotFound
	}
	if sale.UserID != userID {
		return nil, domain.ErrNotFound
	}

	cart := make(Cart, 0, len(sale.Items))
	for _, item := range sale.Items {
		p, err := e.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, &domain.ProductNotFoundError{ProductID: item.ProductID}
		}
		cart = append(cart, CartEntry{Product: p, Quantity: item.Quantity})
	}

	if err := e.saleRepo.DeleteByID(saleID); err != nil {
		return nil, err
	}
	return cart, nil
}
