package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	appinventory "github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain/cashregister"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/inventory"
	"github.com/jhoicas/restobar-api/internal/infrastructure/pdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0"},
		{"950", "$950"},
		{"25000", "$25.000"},
		{"1250000.4", "$1.250.000"},
		{"-5000", "-$5.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pdf.FormatMoney(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestRenderKardex(t *testing.T) {
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	rows := []entity.KardexRow{
		{ID: "1", TransactionType: entity.TransactionTypePurchase, TransactionCode: "TX-1", ArticleCode: "RON", WarehouseCode: "BARRA",
			Direction: entity.DirectionIn, QuantityRetail: decimal.NewFromInt(24), QuantityStorage: decimal.NewFromInt(2),
			BalanceRetail: decimal.NewFromInt(24), BalanceStorage: decimal.NewFromInt(2), OccurredAt: at, CreatedAt: at},
		{ID: "2", TransactionType: entity.TransactionTypeConsumption, TransactionCode: "TX-2", ArticleCode: "RON", WarehouseCode: "BARRA",
			Direction: entity.DirectionOut, QuantityRetail: decimal.RequireFromString("0.25"), QuantityStorage: decimal.RequireFromString("0.020833"),
			BalanceRetail: decimal.RequireFromString("23.75"), BalanceStorage: decimal.RequireFromString("1.979167"),
			OccurredAt: at.Add(time.Hour), CreatedAt: at.Add(time.Hour), SourceKitCode: "CUBALIBRE"},
	}
	report := &appinventory.KardexReport{From: at.AddDate(0, 0, -1), To: at.AddDate(0, 0, 1)}
	for _, g := range inventory.GroupKardex(rows) {
		report.Groups = append(report.Groups, appinventory.ReportGroup{KardexGroup: g})
	}

	out, err := pdf.NewRenderer("Bar La Esquina").RenderKardex(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	empty, err := pdf.NewRenderer("Bar La Esquina").RenderKardex(context.Background(), &appinventory.KardexReport{From: at, To: at})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}

func TestRenderClosure(t *testing.T) {
	opened := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	summary := &cashregister.ClosureSummary{
		SessionID:        "s1",
		CashRegisterCode: "CAJA1",
		AdminID:          "cajero1",
		OpenedAt:         opened,
		ClosedAt:         opened.Add(10 * time.Hour),
		OpeningAmount:    decimal.NewFromInt(100000),
		ClosingAmount:    decimal.NewFromInt(180000),
		Methods: []cashregister.MethodSummary{
			{Method: "efectivo", Expected: decimal.NewFromInt(85000), Reported: decimal.NewFromInt(80000), Difference: decimal.NewFromInt(5000), Count: 4},
			{Method: "tarjeta", Expected: decimal.NewFromInt(40000), Reported: decimal.NewFromInt(40000), Difference: decimal.Zero, Count: 2},
		},
		TotalExpected:    decimal.NewFromInt(125000),
		TotalReported:    decimal.NewFromInt(120000),
		TotalDifference:  decimal.NewFromInt(5000),
		TransactionCount: 6,
		ExpectedCash:     decimal.NewFromInt(185000),
		CashDifference:   decimal.NewFromInt(-5000),
	}
	out, err := pdf.NewRenderer("Bar La Esquina").RenderClosure(context.Background(), summary)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
