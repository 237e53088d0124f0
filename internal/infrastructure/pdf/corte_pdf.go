package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/dramirezh/puntoventa-api/internal/application/reports"
	"github.com/dramirezh/puntoventa-api/internal/domain/entity"
)

var colorPrimary = &props.Color{Red: 20, Green: 80, Blue: 60}

// GenerateCortePDF genera el corte de caja del turno en A4 y devuelve sus bytes.
func (g *TicketGenerator) GenerateCortePDF(report *reports.CorteReport, biz *entity.Config) ([]byte, error) {
	name := "Punto de Venta"
	if biz != nil && biz.BusinessName != "" {
		name = biz.BusinessName
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Corte de Caja", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(corteHeaderRow(report, name))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(corteTotalsRows(report)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(corteSalesHeaderRow())
	for _, s := range report.Sales {
		m.AddRows(corteSaleRow(s))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar corte: %w", err)
	}
	return doc.GetBytes(), nil
}

// corteHeaderRow: negocio (izq) y cajero + fecha (der).
func corteHeaderRow(report *reports.CorteReport, business string) core.Row {
	cajero := report.UserName
	if cajero == "" {
		cajero = "Todas las cajas"
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New(business, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CORTE DE CAJA", props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Cajero: "+cajero, props.Text{
				Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+report.From.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(fmt.Sprintf("Ventas: %d", report.NumVentas), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// corteTotalsRows: desglose por método y dinero esperado en el cajón.
func corteTotalsRows(report *reports.CorteReport) []core.Row {
	pair := func(label, value string, grand bool) core.Row {
		p := props.Text{Size: 9, Align: align.Right, Right: 2}
		if grand {
			p.Style = fontstyle.Bold
			p.Size = 11
			p.Color = colorPrimary
		}
		return row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: p.Size, Align: align.Right,
				Right: 2, Color: p.Color,
			})),
			col.New(3).Add(text.New(value, p)),
		)
	}

	return []core.Row{
		pair("Efectivo:", "$"+report.Efectivo.StringFixed(2), false),
		pair("Tarjeta:", "$"+report.Tarjeta.StringFixed(2), false),
		pair("Transferencia:", "$"+report.Transferencia.StringFixed(2), false),
		pair("Mixto:", "$"+report.Mixto.StringFixed(2), false),
		pair("Total vendido:", "$"+report.Total.StringFixed(2), true),
		pair("Efectivo neto:", "$"+report.EfectivoNeto.StringFixed(2), false),
		pair("Fondo inicial:", "$"+report.MontoInicial.StringFixed(2), false),
		pair("Esperado en cajón:", "$"+report.TotalConMontoInicial.StringFixed(2), true),
	}
}

// corteSalesHeaderRow: cabecera del detalle de ventas del turno.
func corteSalesHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Folio", 2, align.Left),
		h("Hora", 2, align.Center),
		h("Método", 3, align.Center),
		h("Artículos", 2, align.Center),
		h("Total", 3, align.Right),
	)
}

// corteSaleRow: una fila por venta del turno.
func corteSaleRow(s *entity.Sale) core.Row {
	items := 0
	for _, it := range s.Items {
		items += it.Quantity
	}
	return row.New(6).Add(
		col.New(2).Add(text.New(shortID(s.ID), props.Text{Size: 8, Align: align.Left, Top: 1})),
		col.New(2).Add(text.New(s.Date.Format("15:04"), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New(s.PaymentMethod, props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(2).Add(text.New(fmt.Sprintf("%d", items), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(3).Add(text.New("$"+s.Total.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
	)
}
