// Package pdf genera los comprobantes imprimibles del punto de venta:
// el ticket de compra (formato angosto de 80mm, como las impresoras
// térmicas de mostrador) y el corte de caja del turno en carta A4.
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dramirezh/puntoventa-api/internal/application/checkout"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

var colorGray = &props.Color{Red: 100, Green: 100, Blue: 100}

// TicketGenerator genera comprobantes PDF usando Maroto v2.
type TicketGenerator struct{}

// NewTicketGenerator construye el generador.
func NewTicketGenerator() *TicketGenerator { return &TicketGenerator{} }

// GenerateTicketPDF genera el ticket de una venta cobrada y devuelve sus bytes.
// Página de 80mm de ancho con alto proporcional al número de renglones.
func (g *TicketGenerator) GenerateTicketPDF(ticket *checkout.Ticket, biz *entity.Config) ([]byte, error) {
	height := 130 + float64(len(ticket.Lines))*5
	cfg := config.NewBuilder().
		WithDimensions(80, height).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(ticketHeaderRows(ticket, biz)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.3}))

	for _, l := range ticket.Lines {
		m.AddRows(ticketLineRow(l))
	}

	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.3}))
	m.AddRows(ticketTotalsRows(ticket)...)

	// QR con el detalle de la compra, para validar el ticket con el celular.
	if qr := ticket.QRPayload(); qr != "" {
		m.AddRows(row.New(32).Add(col.New(12).Add(
			code.NewQr(qr, props.Rect{Percent: 90, Center: true}),
		)))
		m.AddRows(row.New(4).Add(col.New(12).Add(
			text.New("Escanea el código para validar tu compra", props.Text{
				Size: 6, Align: align.Center, Color: colorGray,
			}),
		)))
	}

	m.AddRows(row.New(8).Add(col.New(12).Add(
		text.New("¡GRACIAS POR SU COMPRA!", props.Text{
			Size: 8, Align: align.Center, Style: fontstyle.Bold, Top: 3,
		}),
	)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ticketHeaderRows: nombre del negocio, folio y fecha.
func ticketHeaderRows(ticket *checkout.Ticket, biz *entity.Config) []core.Row {
	name := "PUNTO DE VENTA"
	if biz != nil && biz.TicketName != "" {
		name = biz.TicketName
	} else if biz != nil && biz.BusinessName != "" {
		name = biz.BusinessName
	}
	return []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Center, Top: 1,
			}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New("Folio: "+shortID(ticket.SaleID), props.Text{
				Size: 7, Align: align.Center, Color: colorGray,
			}),
		)),
		row.New(4).Add(col.New(12).Add(
			text.New(ticket.Date.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Align: align.Center, Color: colorGray,
			}),
		)),
	}
}

// ticketLineRow: "2 x Refresco 600ml .... $20.00".
func ticketLineRow(l checkout.LineTotal) core.Row {
	desc := fmt.Sprintf("%d x %s", l.Quantity, l.ProductName)
	return row.New(5).Add(
		col.New(8).Add(text.New(desc, props.Text{Size: 7, Align: align.Left, Top: 1})),
		col.New(4).Add(text.New("$"+l.Total.StringFixed(2), props.Text{
			Size: 7, Align: align.Right, Top: 1,
		})),
	)
}

// ticketTotalsRows: subtotal, IVA, total, pagos y cambio.
func ticketTotalsRows(ticket *checkout.Ticket) []core.Row {
	pair := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 7.0
		if bold {
			style = fontstyle.Bold
			size = 9
		}
		return row.New(4).Add(
			col.New(7).Add(text.New(label, props.Text{Size: size, Style: style, Align: align.Right, Right: 1})),
			col.New(5).Add(text.New(value, props.Text{Size: size, Style: style, Align: align.Right})),
		)
	}

	rows := []core.Row{
		pair("Subtotal:", "$"+ticket.Subtotal.StringFixed(2), false),
		pair("IVA:", "$"+ticket.Tax.StringFixed(2), false),
		pair("TOTAL:", "$"+ticket.Total.StringFixed(2), true),
	}
	if ticket.Amounts.Efectivo.IsPositive() {
		rows = append(rows, pair("Efectivo:", "$"+ticket.Amounts.Efectivo.StringFixed(2), false))
	}
	if ticket.Amounts.Tarjeta.IsPositive() {
		rows = append(rows, pair("Tarjeta:", "$"+ticket.Amounts.Tarjeta.StringFixed(2), false))
	}
	if ticket.Amounts.Transferencia.IsPositive() {
		rows = append(rows, pair("Transferencia:", "$"+ticket.Amounts.Transferencia.StringFixed(2), false))
	}
	if ticket.Cambio.IsPositive() {
		rows = append(rows, pair("Cambio:", "$"+ticket.Cambio.StringFixed(2), false))
	}
	return rows
}

// shortID folio legible: primeros 8 caracteres del UUID en mayúsculas.
func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
