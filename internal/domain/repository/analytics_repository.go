package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MethodSales ventas de un período agrupadas por medio de pago.
type MethodSales struct {
	Method       string
	InvoiceCount int
	Amount       decimal.Decimal
}

// ArticleSales ventas y costo de un artículo en un período.
type ArticleSales struct {
	ArticleCode  string
	ArticleName  string
	UnitsSold    decimal.Decimal
	GrossRevenue decimal.Decimal
	TotalCOGS    decimal.Decimal // cantidad × costo al momento de la venta
}

// SalesAnalyticsRepository consultas de solo lectura sobre facturas de venta. Rango [from, to).
type SalesAnalyticsRepository interface {
	SalesMetrics(ctx context.Context, from, to time.Time) (revenue, cogs decimal.Decimal, err error)
	SalesByMethod(ctx context.Context, from, to time.Time) ([]MethodSales, error)
	// ArticleSales ordenado por ingreso descendente; limit <= 0 sin límite.
	ArticleSales(ctx context.Context, from, to time.Time, limit int) ([]ArticleSales, error)
}
