// Package htmlreport genera la versión imprimible (HTML) del kardex.
package htmlreport

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	appinventory "github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var _ appinventory.KardexRenderer = (*KardexRenderer)(nil)

const layout = "02/01/2006 15:04"

var kardexTemplate = template.Must(template.New("kardex").Funcs(template.FuncMap{
	"qty":  formatQty,
	"when": func(t time.Time) string { return t.Format(layout) },
	"out":  func(dir string) bool { return dir == entity.DirectionOut },
}).Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>Kardex {{.Business}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; font-size: 11px; margin: 16px; }
h1 { font-size: 16px; color: #00467f; margin: 0; }
h2 { font-size: 13px; color: #00467f; margin: 18px 0 4px; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #ccc; padding: 3px 5px; }
th { text-align: left; color: #00467f; }
td.n { text-align: right; font-variant-numeric: tabular-nums; }
.muted { color: #666; }
.bad { color: #aa1414; font-weight: bold; }
@media print { body { margin: 0; } h2 { page-break-after: avoid; } }
</style>
</head>
<body>
<h1>{{.Business}}: kardex de inventario</h1>
<p class="muted">Período: {{when .Report.From}} al {{when .Report.To}}</p>
{{- range .Report.Groups}}
<h2>Artículo {{.ArticleCode}} · Bodega {{.WarehouseCode}}</h2>
<table>
<thead><tr><th>Fecha</th><th>Tipo</th><th>Transacción</th><th>Referencia</th><th>E/S</th>
<th class="n">Cant. det.</th><th class="n">Cant. alm.</th><th class="n">Saldo det.</th><th class="n">Saldo alm.</th></tr></thead>
<tbody>
<tr class="muted"><td colspan="7">Saldo inicial</td><td class="n">{{qty .Initial.Retail}}</td><td class="n">{{qty .Initial.Storage}}</td></tr>
{{- range .Rows}}
<tr><td>{{when .OccurredAt}}</td><td>{{.TransactionType}}{{if .SourceKitCode}} ({{.SourceKitCode}}){{end}}</td>
<td>{{.TransactionCode}}</td><td>{{.Reference}}{{if .Counterparty}} → {{.Counterparty}}{{end}}</td><td>{{.Direction}}</td>
<td class="n">{{if out .Direction}}-{{end}}{{qty .QuantityRetail}}</td><td class="n">{{if out .Direction}}-{{end}}{{qty .QuantityStorage}}</td>
<td class="n">{{qty .BalanceRetail}}</td><td class="n">{{qty .BalanceStorage}}</td></tr>
{{- end}}
</tbody>
</table>
{{- if .ChainErr}}<p class="bad">Cadena de saldos inconsistente: {{.ChainErr}}</p>{{end}}
{{- else}}
<p class="muted">Sin movimientos en el período.</p>
{{- end}}
</body>
</html>
`))

// KardexRenderer genera el kardex como página HTML lista para imprimir.
type KardexRenderer struct {
	business string
}

// NewKardexRenderer construye el generador.
func NewKardexRenderer(business string) *KardexRenderer {
	return &KardexRenderer{business: business}
}

// RenderKardex ejecuta la plantilla; los textos se escapan.
func (r *KardexRenderer) RenderKardex(_ context.Context, report *appinventory.KardexReport) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Business string
		Report   *appinventory.KardexReport
	}{r.business, report}
	if err := kardexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("html kardex: %w", err)
	}
	return buf.Bytes(), nil
}

func formatQty(d decimal.Decimal) string {
	return strings.Replace(d.Round(3).String(), ".", ",", 1)
}
