package memory

import (
	"context"
	"slices"
	"sort"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type articleRepo struct{ db db }

func (r *articleRepo) Create(_ context.Context, a *entity.Article) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.articles[a.Code]; ok {
			return domain.ErrDuplicate
		}
		st.articles[a.Code] = *a
		return nil
	})
}

func (r *articleRepo) GetByCode(_ context.Context, code string) (*entity.Article, error) {
	var out *entity.Article
	err := r.db.read(func(st *state) error {
		if a, ok := st.articles[code]; ok {
			out = &a
		}
		return nil
	})
	return out, err
}

func (r *articleRepo) Update(_ context.Context, a *entity.Article) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.articles[a.Code]; !ok {
			return domain.ErrNotFound
		}
		st.articles[a.Code] = *a
		return nil
	})
}

func (r *articleRepo) UpdateCost(_ context.Context, code string, cost decimal.Decimal) error {
	return r.db.write(func(st *state) error {
		a, ok := st.articles[code]
		if !ok {
			return domain.ErrNotFound
		}
		a.Cost = cost
		st.articles[code] = a
		return nil
	})
}

func (r *articleRepo) List(_ context.Context, limit, offset int) ([]*entity.Article, error) {
	var out []*entity.Article
	err := r.db.read(func(st *state) error {
		keys := sortedKeys(st.articles)
		for _, k := range page(keys, limit, offset) {
			a := st.articles[k]
			out = append(out, &a)
		}
		return nil
	})
	return out, err
}

type kitRepo struct{ db db }

func (r *kitRepo) ListByKit(_ context.Context, kitCode string) ([]entity.KitComponent, error) {
	var out []entity.KitComponent
	err := r.db.read(func(st *state) error {
		out = slices.Clone(st.kits[kitCode])
		return nil
	})
	return out, err
}

func (r *kitRepo) ReplaceForKit(_ context.Context, kitCode string, components []entity.KitComponent) error {
	return r.db.write(func(st *state) error {
		st.kits[kitCode] = slices.Clone(components)
		return nil
	})
}

type warehouseRepo struct{ db db }

func (r *warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.warehouses[w.Code]; ok {
			return domain.ErrDuplicate
		}
		st.warehouses[w.Code] = *w
		return nil
	})
}

func (r *warehouseRepo) GetByCode(_ context.Context, code string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.db.read(func(st *state) error {
		if w, ok := st.warehouses[code]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.warehouses[w.Code]; !ok {
			return domain.ErrNotFound
		}
		st.warehouses[w.Code] = *w
		return nil
	})
}

func (r *warehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	err := r.db.read(func(st *state) error {
		for _, k := range page(sortedKeys(st.warehouses), limit, offset) {
			w := st.warehouses[k]
			out = append(out, &w)
		}
		return nil
	})
	return out, err
}

type kardexRepo struct{ db db }

func (r *kardexRepo) Append(_ context.Context, row *entity.KardexRow) error {
	return r.db.write(func(st *state) error {
		st.kardex = append(st.kardex, *row)
		return nil
	})
}

// after indica si a va después de b en el orden del kardex (ocurrencia, registro).
func after(a, b entity.KardexRow) bool {
	if !a.OccurredAt.Equal(b.OccurredAt) {
		return a.OccurredAt.After(b.OccurredAt)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

func (r *kardexRepo) LastForUpdate(_ context.Context, articleCode, warehouseCode string) (*entity.KardexRow, error) {
	var out *entity.KardexRow
	err := r.db.read(func(st *state) error {
		for _, row := range st.kardex {
			if row.ArticleCode != articleCode || row.WarehouseCode != warehouseCode {
				continue
			}
			if out == nil || after(row, *out) {
				cp := row
				out = &cp
			}
		}
		return nil
	})
	return out, err
}

func (r *kardexRepo) List(_ context.Context, f entity.KardexFilter) ([]entity.KardexRow, error) {
	var out []entity.KardexRow
	err := r.db.read(func(st *state) error {
		for _, row := range st.kardex {
			if !f.From.IsZero() && row.OccurredAt.Before(f.From) {
				continue
			}
			if !f.To.IsZero() && !row.OccurredAt.Before(f.To) {
				continue
			}
			if len(f.ArticleCodes) > 0 && !slices.Contains(f.ArticleCodes, row.ArticleCode) {
				continue
			}
			if len(f.WarehouseCodes) > 0 && !slices.Contains(f.WarehouseCodes, row.WarehouseCode) {
				continue
			}
			out = append(out, row)
		}
		return nil
	})
	return out, err
}

func (r *kardexRepo) Balances(_ context.Context, warehouseCodes []string) ([]entity.KardexRow, error) {
	type key struct{ article, warehouse string }
	last := map[key]entity.KardexRow{}
	err := r.db.read(func(st *state) error {
		for _, row := range st.kardex {
			if len(warehouseCodes) > 0 && !slices.Contains(warehouseCodes, row.WarehouseCode) {
				continue
			}
			k := key{row.ArticleCode, row.WarehouseCode}
			if prev, ok := last[k]; !ok || after(row, prev) {
				last[k] = row
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]entity.KardexRow, 0, len(last))
	for _, row := range last {
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].WarehouseCode != out[j].WarehouseCode {
			return out[i].WarehouseCode < out[j].WarehouseCode
		}
		return out[i].ArticleCode < out[j].ArticleCode
	})
	return out, nil
}

type transactionRepo struct{ db db }

func (r *transactionRepo) Create(_ context.Context, tx *entity.InventoryTransaction) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.transactions[tx.Code]; ok {
			return domain.ErrDuplicate
		}
		cp := *tx
		cp.Lines = slices.Clone(tx.Lines)
		st.transactions[tx.Code] = cp
		return nil
	})
}

func (r *transactionRepo) GetByCode(_ context.Context, code string) (*entity.InventoryTransaction, error) {
	var out *entity.InventoryTransaction
	err := r.db.read(func(st *state) error {
		if tx, ok := st.transactions[code]; ok {
			tx.Lines = slices.Clone(tx.Lines)
			out = &tx
		}
		return nil
	})
	return out, err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func page[T any](list []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
