package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restobar-api/internal/domain/inventory"
)

func TestCostCalculator(t *testing.T) {
	tests := []struct {
		name                           string
		stock, cost, entrada, costoEnt string
		want                           string
	}{
		{"promedio ponderado", "10", "100", "10", "200", "150"},
		{"sin stock toma costo de entrada", "0", "100", "5", "80", "80"},
		{"stock negativo toma costo de entrada", "-3", "100", "5", "80", "80"},
		{"entrada cero conserva costo", "10", "100", "0", "999", "100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := inventory.CostCalculator(d(tt.stock), d(tt.cost), d(tt.entrada), d(tt.costoEnt))
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}
