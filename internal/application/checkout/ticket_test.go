package checkout

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

func ventaAsentada() *entity.Sale {
	return &entity.Sale{
		ID:            "a1b2c3d4-0000-0000-0000-000000000000",
		Total:         dec("34.80"),
		PaymentMethod: entity.PaymentEfectivo,
		PagoEfectivo:  dec("40.00"),
		Cambio:        dec("5.20"),
		Date:          time.Date(2026, 8, 30, 12, 0, 0, 0, time.Local),
		UserID:        "u1",
		Status:        entity.SaleStatusFinalizado,
		Items: []entity.SaleItem{
			{ProductID: "p1", ProductName: "Refresco 600ml", Quantity: 3, PriceAtSale: dec("10.00")},
		},
	}
}

func TestTicketFromSale_ReconstruyeConPreciosCapturados(t *testing.T) {
	ticket := TicketFromSale(ventaAsentada())

	require.Len(t, ticket.Lines, 1)
	assert.True(t, ticket.Lines[0].UnitPrice.Equal(dec("10.00")))
	assert.True(t, ticket.Subtotal.Equal(dec("30.00")), "subtotal: %s", ticket.Subtotal)
	assert.True(t, ticket.Tax.Equal(dec("4.80")), "iva: %s", ticket.Tax)
	assert.True(t, ticket.Total.Equal(dec("34.80")))
}

func TestTicketQRPayload_ContieneLaCompra(t *testing.T) {
	ticket := TicketFromSale(ventaAsentada())

	payload := ticket.QRPayload()
	require.NotEmpty(t, payload)

	var decoded struct {
		Folio     string `json:"folio"`
		Productos []struct {
			Nombre   string `json:"nombre"`
			Cantidad int    `json:"cantidad"`
			Precio   string `json:"precio"`
		} `json:"productos"`
		Total  string `json:"total"`
		Metodo string `json:"metodo"`
		Pagado string `json:"pagado"`
		Cambio string `json:"cambio"`
	}
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))

	assert.Equal(t, "a1b2c3d4-0000-0000-0000-000000000000", decoded.Folio)
	require.Len(t, decoded.Productos, 1)
	assert.Equal(t, "Refresco 600ml", decoded.Productos[0].Nombre)
	assert.Equal(t, 3, decoded.Productos[0].Cantidad)
	assert.True(t, dec(decoded.Productos[0].Precio).Equal(dec("10.00")))
	assert.True(t, dec(decoded.Total).Equal(dec("34.80")))
	assert.Equal(t, entity.PaymentEfectivo, decoded.Metodo)
	assert.True(t, dec(decoded.Pagado).Equal(dec("40.00")))
	assert.True(t, dec(decoded.Cambio).Equal(dec("5.20")))
}
