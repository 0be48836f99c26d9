package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/inventory"
)

var t0 = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

// chain construye filas encadenadas a partir de un saldo inicial y deltas con signo.
func chain(article, warehouse string, initial string, deltas ...string) []entity.KardexRow {
	rows := make([]entity.KardexRow, 0, len(deltas))
	prev := &entity.KardexRow{BalanceRetail: d(initial), BalanceStorage: d(initial)}
	for i, ds := range deltas {
		delta := d(ds)
		dir := inventory.ResolveMovementDirection(entity.TransactionTypeAdjustment, delta)
		q := inventory.Quantities{Retail: delta.Abs(), Storage: delta.Abs()}
		bal := inventory.NextBalance(prev, inventory.SignedDelta(dir, q))
		row := entity.KardexRow{
			ID:              article + "-" + warehouse + "-" + string(rune('a'+i)),
			ArticleCode:     article,
			WarehouseCode:   warehouse,
			Direction:       dir,
			QuantityRetail:  q.Retail,
			QuantityStorage: q.Storage,
			BalanceRetail:   bal.Retail,
			BalanceStorage:  bal.Storage,
			OccurredAt:      t0.Add(time.Duration(i) * time.Hour),
			CreatedAt:       t0.Add(time.Duration(i) * time.Hour),
		}
		rows = append(rows, row)
		prev = &rows[len(rows)-1]
	}
	return rows
}

func TestGroupKardex_AgrupaYOrdena(t *testing.T) {
	a := chain("COKE", "BAR", "10", "5", "-3", "-2")
	b := chain("COKE", "BODEGA", "0", "24")
	c := chain("BEER", "BAR", "1", "-1", "6")

	// desordenar
	input := []entity.KardexRow{a[2], c[1], b[0], a[0], c[0], a[1]}
	groups := inventory.GroupKardex(input)
	require.Len(t, groups, 3)

	assert.Equal(t, "BEER", groups[0].ArticleCode)
	assert.Equal(t, "COKE", groups[1].ArticleCode)
	assert.Equal(t, "BAR", groups[1].WarehouseCode)
	assert.Equal(t, "BODEGA", groups[2].WarehouseCode)

	g := groups[1]
	require.Len(t, g.Rows, 3)
	assert.Equal(t, a[0].ID, g.Rows[0].ID)
	assert.Equal(t, a[2].ID, g.Rows[2].ID)
	assert.True(t, g.Initial.Retail.Equal(d("10")))
	assert.True(t, g.Rows[1].Delta.Retail.Equal(d("-3")))
	assert.True(t, g.Final().Retail.Equal(d("10")))
}

func TestGroupKardex_DesempatePorFechaDeRegistro(t *testing.T) {
	rows := chain("X", "W", "0", "4", "-1")
	rows[0].OccurredAt = t0
	rows[1].OccurredAt = t0
	rows[0].CreatedAt = t0.Add(time.Minute)
	rows[1].CreatedAt = t0.Add(2 * time.Minute)

	groups := inventory.GroupKardex([]entity.KardexRow{rows[1], rows[0]})
	require.Len(t, groups, 1)
	assert.Equal(t, rows[0].ID, groups[0].Rows[0].ID)
	assert.NoError(t, inventory.VerifyChain(groups[0]))
}

func TestVerifyChain_ReconstruyeSaldos(t *testing.T) {
	deltas := []string{"24", "-5", "-0.4166666666666667", "12.5", "-30"}
	groups := inventory.GroupKardex(chain("COKE-600", "BAR", "3", deltas...))
	require.Len(t, groups, 1)
	g := groups[0]

	balance := g.Initial
	for _, r := range g.Rows {
		balance = balance.Add(r.Delta)
		assert.True(t, balance.Retail.Equal(r.BalanceRetail))
	}
	assert.NoError(t, inventory.VerifyChain(g))
}

func TestVerifyChain_DetectaSaldoRoto(t *testing.T) {
	rows := chain("X", "W", "0", "5", "-2", "1")
	rows[2].BalanceRetail = d("99")
	groups := inventory.GroupKardex(rows)
	err := inventory.VerifyChain(groups[0])
	assert.ErrorIs(t, err, domain.ErrBrokenChain)
}

func TestGroupKardex_Vacio(t *testing.T) {
	assert.Empty(t, inventory.GroupKardex(nil))
}
