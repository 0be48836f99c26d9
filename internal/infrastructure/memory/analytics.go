package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

type analyticsRepo struct{ db db }

// Analytics consultas de ventas sobre las facturas guardadas.
func (s *Store) Analytics() repository.SalesAnalyticsRepository {
	return &analyticsRepo{db: s}
}

func inRange(inv entity.SalesInvoice, from, to time.Time) bool {
	return !inv.CreatedAt.Before(from) && inv.CreatedAt.Before(to)
}

func (r *analyticsRepo) SalesMetrics(_ context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	revenue, cogs := decimal.Zero, decimal.Zero
	err := r.db.read(func(st *state) error {
		for _, inv := range st.invoices {
			if !inRange(inv, from, to) {
				continue
			}
			for _, l := range inv.Lines {
				revenue = revenue.Add(l.Subtotal)
				cogs = cogs.Add(l.Quantity.Mul(l.UnitCost))
			}
		}
		return nil
	})
	return revenue, cogs, err
}

func (r *analyticsRepo) SalesByMethod(_ context.Context, from, to time.Time) ([]repository.MethodSales, error) {
	byMethod := map[string]*repository.MethodSales{}
	err := r.db.read(func(st *state) error {
		for _, inv := range st.invoices {
			if !inRange(inv, from, to) {
				continue
			}
			seen := map[string]bool{}
			for _, p := range inv.Payments {
				m, ok := byMethod[p.Method]
				if !ok {
					m = &repository.MethodSales{Method: p.Method, Amount: decimal.Zero}
					byMethod[p.Method] = m
				}
				m.Amount = m.Amount.Add(p.Amount)
				if !seen[p.Method] {
					m.InvoiceCount++
					seen[p.Method] = true
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.MethodSales, 0, len(byMethod))
	for _, m := range byMethod {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Amount.Equal(out[j].Amount) {
			return out[i].Amount.GreaterThan(out[j].Amount)
		}
		return out[i].Method < out[j].Method
	})
	return out, nil
}

func (r *analyticsRepo) ArticleSales(_ context.Context, from, to time.Time, limit int) ([]repository.ArticleSales, error) {
	byArticle := map[string]*repository.ArticleSales{}
	err := r.db.read(func(st *state) error {
		for _, inv := range st.invoices {
			if !inRange(inv, from, to) {
				continue
			}
			for _, l := range inv.Lines {
				a, ok := byArticle[l.ArticleCode]
				if !ok {
					a = &repository.ArticleSales{
						ArticleCode:  l.ArticleCode,
						ArticleName:  st.articles[l.ArticleCode].Name,
						UnitsSold:    decimal.Zero,
						GrossRevenue: decimal.Zero,
						TotalCOGS:    decimal.Zero,
					}
					byArticle[l.ArticleCode] = a
				}
				a.UnitsSold = a.UnitsSold.Add(l.Quantity)
				a.GrossRevenue = a.GrossRevenue.Add(l.Subtotal)
				a.TotalCOGS = a.TotalCOGS.Add(l.Quantity.Mul(l.UnitCost))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.ArticleSales, 0, len(byArticle))
	for _, a := range byArticle {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].GrossRevenue.Equal(out[j].GrossRevenue) {
			return out[i].GrossRevenue.GreaterThan(out[j].GrossRevenue)
		}
		return out[i].ArticleCode < out[j].ArticleCode
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
