package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// MarginsReportRequest parámetros para GET /api/analytics/margins.
type MarginsReportRequest struct {
	StartDate string `query:"start_date"` // YYYY-MM-DD; por defecto primer día del mes actual
	EndDate   string `query:"end_date"`   // YYYY-MM-DD; por defecto hoy
	TopN      int    `query:"top_n"`      // máx artículos a devolver (default 20, max 200)
}

// ── Por medio de pago ─────────────────────────────────────────────────────────

// SalesByMethodDTO recaudo de un medio de pago en el período.
type SalesByMethodDTO struct {
	Method       string          `json:"method"`
	InvoiceCount int             `json:"invoice_count"`
	Amount       decimal.Decimal `json:"amount"`
	AmountPct    decimal.Decimal `json:"amount_pct"` // participación % en el recaudo total
}

// ProfitabilityDTO resumen de rentabilidad del período.
type ProfitabilityDTO struct {
	TotalRevenue     decimal.Decimal    `json:"total_revenue"`
	TotalCOGS        decimal.Decimal    `json:"total_cogs"`
	TotalMargin      decimal.Decimal    `json:"total_margin"`
	OverallMarginPct decimal.Decimal    `json:"overall_margin_pct"`
	Methods          []SalesByMethodDTO `json:"methods"`
}

// ── Por artículo ──────────────────────────────────────────────────────────────

// ArticleRankingDTO margen y rentabilidad por artículo.
type ArticleRankingDTO struct {
	Rank             int             `json:"rank"` // posición (1 = más rentable)
	ArticleCode      string          `json:"article_code"`
	ArticleName      string          `json:"article_name"`
	UnitsSold        decimal.Decimal `json:"units_sold"`
	GrossRevenue     decimal.Decimal `json:"gross_revenue"`
	TotalCOGS        decimal.Decimal `json:"total_cogs"`
	GrossProfit      decimal.Decimal `json:"gross_profit"` // GrossRevenue - TotalCOGS
	MarginPct        decimal.Decimal `json:"margin_pct"`
	RevenuePct       decimal.Decimal `json:"revenue_pct"`
	CumulativeRevPct decimal.Decimal `json:"cumulative_revenue_pct"`
	IsTopPareto      bool            `json:"is_top_pareto"` // dentro del 80% acumulado de ingresos
}

// ── Reporte combinado ─────────────────────────────────────────────────────────

// PeriodDTO rango de fechas del reporte.
type PeriodDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// MarginsReportDTO respuesta completa de GET /api/analytics/margins.
type MarginsReportDTO struct {
	Period         PeriodDTO           `json:"period"`
	Profitability  ProfitabilityDTO    `json:"profitability"`
	ArticleRanking []ArticleRankingDTO `json:"article_ranking"`
	ParetoArticles []ArticleRankingDTO `json:"pareto_articles"`
}
