package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculateQuantities_Storage(t *testing.T) {
	cases := []struct{ qty, factor string }{
		{"2", "12"}, {"1.5", "24"}, {"3", "0.5"}, {"0.25", "1"}, {"100", "6"},
	}
	for _, tc := range cases {
		q := inventory.CalculateQuantities(d(tc.qty), entity.UnitStorage, d(tc.factor))
		assert.True(t, q.Retail.Equal(d(tc.qty).Mul(d(tc.factor))), "retail = qty * factor (%s x %s)", tc.qty, tc.factor)
		assert.True(t, q.Storage.Equal(d(tc.qty)), "storage = qty")
	}
}

func TestCalculateQuantities_Retail(t *testing.T) {
	cases := []struct{ qty, factor string }{
		{"5", "12"}, {"24", "12"}, {"1", "3"}, {"7", "0.5"},
	}
	for _, tc := range cases {
		q := inventory.CalculateQuantities(d(tc.qty), entity.UnitRetail, d(tc.factor))
		assert.True(t, q.Retail.Equal(d(tc.qty)))
		assert.True(t, q.Storage.Equal(d(tc.qty).Div(d(tc.factor))), "storage = qty / factor (%s / %s)", tc.qty, tc.factor)
	}
}

func TestCalculateQuantities_FactorNoPositivoUsaUno(t *testing.T) {
	for _, f := range []string{"0", "-3", "-0.0001"} {
		s := inventory.CalculateQuantities(d("4"), entity.UnitStorage, d(f))
		r := inventory.CalculateQuantities(d("4"), entity.UnitRetail, d(f))
		assert.True(t, s.Retail.Equal(d("4")), "factor %s", f)
		assert.True(t, r.Storage.Equal(d("4")), "factor %s", f)
	}
	_, fallback := inventory.NormalizeFactor(decimal.Zero)
	assert.True(t, fallback)
	_, fallback = inventory.NormalizeFactor(d("12"))
	assert.False(t, fallback)
}

func TestCalculateQuantities_ResiduoSeNormalizaACero(t *testing.T) {
	q := inventory.CalculateQuantities(d("0.0000001"), entity.UnitRetail, d("12"))
	assert.True(t, q.Retail.IsZero())
	assert.True(t, q.Storage.IsZero())

	q = inventory.CalculateQuantities(d("0.00001"), entity.UnitRetail, d("100"))
	assert.True(t, q.Retail.Equal(d("0.00001")), "por encima de epsilon se conserva")
	assert.True(t, q.Storage.IsZero(), "0.0000001 queda por debajo de epsilon")
}

func TestResolveMovementDirection(t *testing.T) {
	tests := []struct {
		txType string
		qty    string
		want   string
	}{
		{entity.TransactionTypePurchase, "5", entity.DirectionIn},
		{entity.TransactionTypePurchase, "-5", entity.DirectionIn},
		{entity.TransactionTypeConsumption, "5", entity.DirectionOut},
		{entity.TransactionTypeConsumption, "-5", entity.DirectionOut},
		{entity.TransactionTypeAdjustment, "3", entity.DirectionIn},
		{entity.TransactionTypeAdjustment, "0", entity.DirectionIn},
		{entity.TransactionTypeAdjustment, "-3", entity.DirectionOut},
		{entity.TransactionTypeTransfer, "1", entity.DirectionIn},
		{entity.TransactionTypeTransfer, "0", entity.DirectionIn},
		{entity.TransactionTypeTransfer, "-1", entity.DirectionOut},
	}
	for _, tt := range tests {
		t.Run(tt.txType+"_"+tt.qty, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.ResolveMovementDirection(tt.txType, d(tt.qty)))
		})
	}
}
