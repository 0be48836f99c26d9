// Package pdf genera los reportes imprimibles (kardex y cierre de caja) con Maroto v2.
//
// Layout A4 común:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: nombre del local      │  título + período          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA(S)                                                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES / PIE                                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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
	"github.com/shopspring/decimal"

	appcash "github.com/jhoicas/restobar-api/internal/application/cashregister"
	appinventory "github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain/cashregister"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

var (
	_ appinventory.KardexRenderer = (*Renderer)(nil)
	_ appcash.ClosureRenderer     = (*Renderer)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 20, Blue: 20}
)

const (
	dateTimeLayout = "02/01/2006 15:04"
	dateLayout     = "02/01/2006"
)

// Renderer genera los PDF. businessName aparece en el encabezado.
type Renderer struct {
	businessName string
}

// NewRenderer construye el generador.
func NewRenderer(businessName string) *Renderer {
	return &Renderer{businessName: businessName}
}

func (r *Renderer) newDocument(title string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(title, true).
		WithAuthor(r.businessName, true).
		Build()
	return maroto.New(cfg)
}

func generate(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// RenderKardex un bloque por (artículo, bodega): saldo inicial, movimientos y saldo final.
func (r *Renderer) RenderKardex(_ context.Context, report *appinventory.KardexReport) ([]byte, error) {
	m := r.newDocument("Kardex")
	period := fmt.Sprintf("%s al %s", report.From.Format(dateTimeLayout), report.To.Format(dateTimeLayout))
	m.AddRows(headerRow(r.businessName, "KARDEX DE INVENTARIO", period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if len(report.Groups) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin movimientos en el período.", props.Text{Size: 9, Top: 3, Color: colorGray}),
		)))
		return generate(m)
	}

	for _, g := range report.Groups {
		m.AddRows(row.New(8).Add(
			col.New(8).Add(text.New(fmt.Sprintf("Artículo %s  |  Bodega %s", g.ArticleCode, g.WarehouseCode), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			})),
			col.New(4).Add(text.New("Saldo inicial: "+formatQty(g.Initial.Retail), props.Text{
				Size: 8, Align: align.Right, Top: 2,
			})),
		))
		m.AddRows(kardexHeaderRow())
		for _, ar := range g.Rows {
			m.AddRows(kardexDetailRow(ar.KardexRow))
		}
		final := g.Final()
		status := "Cadena de saldos verificada"
		statusColor := colorGray
		if g.ChainErr != nil {
			status = "Cadena de saldos inconsistente"
			statusColor = colorRed
		}
		m.AddRows(row.New(7).Add(
			col.New(6).Add(text.New(status, props.Text{Size: 7, Top: 1, Color: statusColor})),
			col.New(6).Add(text.New(
				fmt.Sprintf("Saldo final: %s det. / %s alm.", formatQty(final.Retail), formatQty(final.Storage)),
				props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1},
			)),
		))
		m.AddRows(line.NewRow(2, props.Line{Color: colorGray, Thickness: 0.2}))
	}
	return generate(m)
}

// RenderClosure resumen de un cierre: conciliación por medio de pago y cuadre del efectivo.
func (r *Renderer) RenderClosure(_ context.Context, s *cashregister.ClosureSummary) ([]byte, error) {
	m := r.newDocument("Cierre de caja")
	period := fmt.Sprintf("%s - %s", s.OpenedAt.Format(dateTimeLayout), s.ClosedAt.Format(dateTimeLayout))
	m.AddRows(headerRow(r.businessName, "CIERRE DE CAJA "+s.CashRegisterCode, period))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(row.New(8).Add(col.New(12).Add(text.New(
		fmt.Sprintf("Sesión: %s   |   Responsable: %s   |   Transacciones: %d", s.SessionID, s.AdminID, s.TransactionCount),
		props.Text{Size: 8, Top: 2, Color: colorGray},
	))))

	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	m.AddRows(row.New(8).Add(
		h("Medio de pago", 3, align.Left),
		h("Trans.", 1, align.Center),
		h("Esperado", 3, align.Right),
		h("Reportado", 3, align.Right),
		h("Diferencia", 2, align.Right),
	))
	for _, ms := range s.Methods {
		m.AddRows(row.New(6).Add(
			col.New(3).Add(text.New(ms.Method, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprint(ms.Count), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(money(ms.Expected, false)),
			col.New(3).Add(money(ms.Reported, false)),
			col.New(2).Add(money(ms.Difference, true)),
		))
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(7).Add(
		col.New(4).Add(text.New("TOTALES", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1, Left: 1})),
		col.New(3).Add(money(s.TotalExpected, false)),
		col.New(3).Add(money(s.TotalReported, false)),
		col.New(2).Add(money(s.TotalDifference, true)),
	))

	m.AddRows(line.NewRow(4))
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	m.AddRows(
		row.New(6).Add(col.New(6), col.New(3).Add(label("Base de apertura:")), col.New(3).Add(money(s.OpeningAmount, false))),
		row.New(6).Add(col.New(6), col.New(3).Add(label("Efectivo esperado:")), col.New(3).Add(money(s.ExpectedCash, false))),
		row.New(6).Add(col.New(6), col.New(3).Add(label("Efectivo contado:")), col.New(3).Add(money(s.ClosingAmount, false))),
		row.New(6).Add(col.New(6), col.New(3).Add(label("Sobrante / faltante:")), col.New(3).Add(money(s.CashDifference, true))),
	)
	return generate(m)
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(business, title, subtitle string) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New(business, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
		),
		col.New(6).Add(
			text.New(title, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1}),
			text.New(subtitle, props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
		),
	)
}

func kardexHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Color: colorPrimary, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Transacción", 2, align.Left),
		h("E/S", 1, align.Center),
		h("Cantidad", 1, align.Right),
		h("Saldo det.", 2, align.Right),
		h("Saldo alm.", 2, align.Right),
	)
}

func kardexDetailRow(k entity.KardexRow) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	kind := k.TransactionType
	if k.SourceKitCode != "" {
		kind += " (" + k.SourceKitCode + ")"
	}
	qty := formatQty(k.QuantityRetail)
	if k.Direction == entity.DirectionOut {
		qty = "-" + qty
	}
	return row.New(5).Add(
		cell(k.OccurredAt.Format(dateTimeLayout), 2, align.Left),
		cell(kind, 2, align.Left),
		cell(shorten(k.TransactionCode, 14), 2, align.Left),
		cell(k.Direction, 1, align.Center),
		cell(qty, 1, align.Right),
		cell(formatQty(k.BalanceRetail), 2, align.Right),
		cell(formatQty(k.BalanceStorage), 2, align.Right),
	)
}

func money(d decimal.Decimal, highlight bool) core.Component {
	p := props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1}
	if highlight && !d.IsZero() {
		p.Style = fontstyle.Bold
		p.Color = colorRed
	}
	return text.New(FormatMoney(d), p)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// FormatMoney pesos sin decimales con puntos de miles: 1250000 -> "$1.250.000", -500 -> "-$500".
func FormatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	return sign + "$" + groupThousands(d.StringFixed(0))
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// formatQty cantidades con coma decimal y hasta 3 decimales: 1.5 -> "1,5".
func formatQty(d decimal.Decimal) string {
	s := d.Round(3).String()
	return strings.Replace(s, ".", ",", 1)
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
