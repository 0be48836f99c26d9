package htmlreport_test

import (
	"context"
	"errors"
	"testing"
	"time"

	appinventory "github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/inventory"
	"github.com/jhoicas/restobar-api/internal/infrastructure/htmlreport"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderKardexHTML(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []entity.KardexRow{{
		ID: "1", TransactionType: entity.TransactionTypeTransfer, TransactionCode: "TX-9", ArticleCode: "RON", WarehouseCode: "BODEGA",
		Direction: entity.DirectionOut, QuantityRetail: decimal.RequireFromString("1.5"), QuantityStorage: decimal.RequireFromString("0.125"),
		BalanceRetail: decimal.RequireFromString("10.5"), BalanceStorage: decimal.RequireFromString("0.875"),
		OccurredAt: at, CreatedAt: at, Reference: "<script>x</script>", Counterparty: "BARRA",
	}}
	report := &appinventory.KardexReport{From: at.AddDate(0, 0, -1), To: at.AddDate(0, 0, 1)}
	for _, g := range inventory.GroupKardex(rows) {
		report.Groups = append(report.Groups, appinventory.ReportGroup{KardexGroup: g, ChainErr: errors.New("saldo 10 != 10,5")})
	}

	out, err := htmlreport.NewKardexRenderer("Bar & Co").RenderKardex(context.Background(), report)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "Bar &amp; Co")
	assert.Contains(t, html, "Artículo RON")
	assert.Contains(t, html, "-1,5")
	assert.Contains(t, html, `<td class="n">12</td>`, "saldo inicial = 10,5 + 1,5")
	assert.Contains(t, html, "BARRA")
	assert.Contains(t, html, "Cadena de saldos inconsistente")
	assert.NotContains(t, html, "<script>x</script>")
}

func TestRenderKardexHTMLEmpty(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	out, err := htmlreport.NewKardexRenderer("Bar").RenderKardex(context.Background(), &appinventory.KardexReport{From: at, To: at})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Sin movimientos en el período.")
}
