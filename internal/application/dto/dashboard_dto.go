package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Contiene los KPIs principales del día y del mes en curso, más el Top-5 de artículos del mes.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59)
	TodaySales  decimal.Decimal `json:"today_sales"`
	TodayMargin decimal.Decimal `json:"today_margin"` // revenue - COGS

	// Métricas del mes en curso (día 1 – hoy)
	MonthlySales  decimal.Decimal `json:"monthly_sales"`
	MonthlyMargin decimal.Decimal `json:"monthly_margin"`

	TopArticles []TopArticleDTO `json:"top_articles"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}

// TopArticleDTO resumen de un artículo para el widget del dashboard.
type TopArticleDTO struct {
	ArticleCode      string          `json:"article_code"`
	ArticleName      string          `json:"article_name"`
	QuantitySold     decimal.Decimal `json:"quantity_sold"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	MarginPercentage decimal.Decimal `json:"margin_percentage"` // (revenue - cogs) / revenue * 100
}
