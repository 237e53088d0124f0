// Package ticket renderiza el comprobante en texto plano de 32 columnas,
// el formato que aceptan las impresoras térmicas en modo raw.
package ticket

import (
	"fmt"
	"strings"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

const width = 32

// RenderText arma el ticket como texto plano listo para mandar a una
// impresora térmica o descargar como .txt.
func RenderText(t *checkout.Ticket, biz *entity.Config) string {
	var b strings.Builder

	name := "PUNTO DE VENTA"
	if biz != nil && biz.TicketName != "" {
		name = biz.TicketName
	} else if biz != nil && biz.BusinessName != "" {
		name = biz.BusinessName
	}

	b.WriteString(center(name) + "\n")
	b.WriteString(center(t.Date.Format("02/01/2006 15:04")) + "\n")
	b.WriteString(center("Folio: "+shortID(t.SaleID)) + "\n")
	b.WriteString(divider() + "\n")

	for _, l := range t.Lines {
		desc := fmt.Sprintf("%d x %s", l.Quantity, l.ProductName)
		b.WriteString(pair(desc, "$"+l.Total.StringFixed(2)) + "\n")
	}

	b.WriteString(divider() + "\n")
	b.WriteString(pair("Subtotal:", "$"+t.Subtotal.StringFixed(2)) + "\n")
	b.WriteString(pair("IVA:", "$"+t.Tax.StringFixed(2)) + "\n")
	b.WriteString(pair("TOTAL:", "$"+t.Total.StringFixed(2)) + "\n")
	if t.Amounts.Efectivo.IsPositive() {
		b.WriteString(pair("Efectivo:", "$"+t.Amounts.Efectivo.StringFixed(2)) + "\n")
	}
	if t.Amounts.Tarjeta.IsPositive() {
		b.WriteString(pair("Tarjeta:", "$"+t.Amounts.Tarjeta.StringFixed(2)) + "\n")
	}
	if t.Amounts.Transferencia.IsPositive() {
		b.WriteString(pair("Transferencia:", "$"+t.Amounts.Transferencia.StringFixed(2)) + "\n")
	}
	if t.Cambio.IsPositive() {
		b.WriteString(pair("Cambio:", "$"+t.Cambio.StringFixed(2)) + "\n")
	}
	b.WriteString(divider() + "\n")
	b.WriteString(center("¡GRACIAS POR SU COMPRA!") + "\n")

	return b.String()
}

func divider() string {
	return strings.Repeat("-", width)
}

// center centra s en la línea; si no cabe, se trunca. Cuenta runas, no
// bytes, para que los acentos no descuadren la columna.
func center(s string) string {
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	pad := (width - len(r)) / 2
	return strings.Repeat(" ", pad) + s
}

// pair alinea label a la izquierda y value a la derecha; trunca el label si
// los dos no caben.
func pair(label, value string) string {
	lr, vr := []rune(label), []rune(value)
	space := width - len(vr) - 1
	if space < 1 {
		return value
	}
	if len(lr) > space {
		lr = lr[:space]
	}
	return string(lr) + strings.Repeat(" ", width-len(lr)-len(vr)) + value
}

func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
