package inventory

import (
	"fmt"
	"sort"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// AnnotatedRow fila del kardex con su delta con signo (IN positivo, OUT negativo).
type AnnotatedRow struct {
	entity.KardexRow
	Delta Quantities
}

// KardexGroup filas de un par (artículo, bodega) en orden cronológico.
// Initial es el saldo inmediatamente anterior a la primera fila del rango.
type KardexGroup struct {
	ArticleCode   string
	WarehouseCode string
	Initial       Quantities
	Rows          []AnnotatedRow
}

// Final saldo después de la última fila del grupo.
func (g KardexGroup) Final() Quantities {
	if len(g.Rows) == 0 {
		return g.Initial
	}
	last := g.Rows[len(g.Rows)-1]
	return Quantities{Retail: last.BalanceRetail, Storage: last.BalanceStorage}
}

// SignedDelta aplica el signo de la dirección a las cantidades.
func SignedDelta(direction string, q Quantities) Quantities {
	if direction == entity.DirectionOut {
		return q.Neg()
	}
	return q
}

// NextBalance saldo resultante de aplicar delta sobre la fila previa (nil = saldo cero).
func NextBalance(prev *entity.KardexRow, delta Quantities) Quantities {
	if prev == nil {
		return Quantities{Retail: decimal.Zero, Storage: decimal.Zero}.Add(delta)
	}
	return Quantities{Retail: prev.BalanceRetail, Storage: prev.BalanceStorage}.Add(delta)
}

// GroupKardex agrupa las filas por (artículo, bodega), las ordena por fecha de ocurrencia
// (desempate por fecha de registro) y anota deltas y saldo inicial. Los saldos persistidos
// se conservan tal cual; la cadena no se recalcula.
func GroupKardex(rows []entity.KardexRow) []KardexGroup {
	type key struct{ article, warehouse string }
	byKey := make(map[key][]entity.KardexRow)
	for _, r := range rows {
		k := key{r.ArticleCode, r.WarehouseCode}
		byKey[k] = append(byKey[k], r)
	}

	groups := make([]KardexGroup, 0, len(byKey))
	for k, list := range byKey {
		sort.SliceStable(list, func(i, j int) bool {
			a, b := list[i], list[j]
			if !a.OccurredAt.Equal(b.OccurredAt) {
				return a.OccurredAt.Before(b.OccurredAt)
			}
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		})
		g := KardexGroup{ArticleCode: k.article, WarehouseCode: k.warehouse}
		g.Rows = make([]AnnotatedRow, 0, len(list))
		for _, r := range list {
			g.Rows = append(g.Rows, AnnotatedRow{
				KardexRow: r,
				Delta:     SignedDelta(r.Direction, Quantities{Retail: r.QuantityRetail, Storage: r.QuantityStorage}),
			})
		}
		first := g.Rows[0]
		g.Initial = Quantities{
			Retail:  first.BalanceRetail.Sub(first.Delta.Retail),
			Storage: first.BalanceStorage.Sub(first.Delta.Storage),
		}
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].ArticleCode != groups[j].ArticleCode {
			return groups[i].ArticleCode < groups[j].ArticleCode
		}
		return groups[i].WarehouseCode < groups[j].WarehouseCode
	})
	return groups
}

// VerifyChain recalcula los saldos desde Initial y los deltas y devuelve ErrBrokenChain en la
// primera fila cuyo saldo persistido no coincide.
func VerifyChain(g KardexGroup) error {
	balance := g.Initial
	for i, r := range g.Rows {
		balance = balance.Add(r.Delta)
		if !balance.Retail.Equal(r.BalanceRetail) || !balance.Storage.Equal(r.BalanceStorage) {
			return fmt.Errorf("%s/%s fila %d (%s): esperado %s, persistido %s: %w",
				g.ArticleCode, g.WarehouseCode, i, r.ID,
				balance.Retail.String(), r.BalanceRetail.String(), domain.ErrBrokenChain)
		}
	}
	return nil
}
