package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SalesAnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para rentabilidad y ventas por medio de pago.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// SalesMetrics ingresos y costo de ventas del período [from, to).
// El costo sale del costo unitario guardado en la línea, no del costo actual del artículo.
func (r *AnalyticsRepo) SalesMetrics(ctx context.Context, from, to time.Time) (revenue, cogs decimal.Decimal, err error) {
	const query = `
	SELECT
	    COALESCE(SUM(d.subtotal),               0) AS revenue,
	    COALESCE(SUM(d.quantity * d.unit_cost), 0) AS cogs
	FROM sales_invoices i
	JOIN sales_invoice_lines d ON d.invoice_id = i.id
	WHERE i.created_at >= $1 AND i.created_at < $2`

	if err = r.q.QueryRow(ctx, query, from, to).Scan(&revenue, &cogs); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("analytics.SalesMetrics: %w", err)
	}
	return revenue, cogs, nil
}

// SalesByMethod total cobrado y facturas por medio de pago, de mayor a menor monto.
func (r *AnalyticsRepo) SalesByMethod(ctx context.Context, from, to time.Time) ([]repository.MethodSales, error) {
	const query = `
	SELECT
	    p.method,
	    COUNT(DISTINCT i.id) AS invoice_count,
	    SUM(p.amount)        AS amount
	FROM sales_invoices i
	JOIN sales_invoice_payments p ON p.invoice_id = i.id
	WHERE i.created_at >= $1 AND i.created_at < $2
	GROUP BY p.method
	ORDER BY amount DESC, p.method`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesByMethod: %w", err)
	}
	defer rows.Close()

	var results []repository.MethodSales
	for rows.Next() {
		var row repository.MethodSales
		if err := rows.Scan(&row.Method, &row.InvoiceCount, &row.Amount); err != nil {
			return nil, fmt.Errorf("analytics.SalesByMethod scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ArticleSales unidades, ingreso y costo por artículo, de mayor a menor ingreso.
func (r *AnalyticsRepo) ArticleSales(ctx context.Context, from, to time.Time, limit int) ([]repository.ArticleSales, error) {
	const query = `
	SELECT
	    d.article_code,
	    COALESCE(a.name, d.article_code)  AS article_name,
	    SUM(d.quantity)                   AS units_sold,
	    SUM(d.subtotal)                   AS gross_revenue,
	    SUM(d.quantity * d.unit_cost)     AS total_cogs
	FROM sales_invoice_lines d
	JOIN sales_invoices i ON i.id   = d.invoice_id
	LEFT JOIN articles  a ON a.code = d.article_code
	WHERE i.created_at >= $1 AND i.created_at < $2
	GROUP BY d.article_code, a.name
	ORDER BY gross_revenue DESC, d.article_code
	LIMIT NULLIF($3, 0)`

	if limit < 0 {
		limit = 0
	}
	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.ArticleSales: %w", err)
	}
	defer rows.Close()

	var results []repository.ArticleSales
	for rows.Next() {
		var row repository.ArticleSales
		if err := rows.Scan(&row.ArticleCode, &row.ArticleName, &row.UnitsSold, &row.GrossRevenue, &row.TotalCOGS); err != nil {
			return nil, fmt.Errorf("analytics.ArticleSales scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
