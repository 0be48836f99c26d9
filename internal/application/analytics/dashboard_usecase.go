// Package analytics contiene los casos de uso para reportes de ventas y el
// dashboard del día y del mes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const dashboardTopArticles = 5 // artículos en el widget del dashboard

// DashboardUseCase genera el resumen de ventas del día y del mes en curso.
//
// Fuente de datos: SalesAnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	repo repository.SalesAnalyticsRepository
	loc  *time.Location
}

// NewDashboardUseCase construye el caso de uso. loc define el "hoy" del local (nil = UTC).
func NewDashboardUseCase(repo repository.SalesAnalyticsRepository, loc *time.Location) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{repo: repo, loc: loc}
}

// GetSummary construye el resumen. Tres llamadas en paralelo:
//  1. SalesMetrics(hoy)      → TodaySales + TodayMargin
//  2. SalesMetrics(mes)      → MonthlySales + MonthlyMargin
//  3. ArticleSales(mes, 5)   → TopArticles
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := time.Now().In(uc.loc)

	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)

	type metricsResult struct {
		revenue decimal.Decimal
		cost    decimal.Decimal
		err     error
	}
	type topResult struct {
		rows []repository.ArticleSales
		err  error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)

	go func() {
		rev, cost, err := uc.repo.SalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		rev, cost, err := uc.repo.SalesMetrics(ctx, monthStart, todayEnd)
		monthCh <- metricsResult{rev, cost, err}
	}()
	go func() {
		rows, err := uc.repo.ArticleSales(ctx, monthStart, todayEnd, dashboardTopArticles)
		topCh <- topResult{rows, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top artículos: %w", top.err)
	}

	articles := make([]dto.TopArticleDTO, 0, len(top.rows))
	for _, r := range top.rows {
		pct := decimal.Zero
		if r.GrossRevenue.IsPositive() {
			pct = r.GrossRevenue.Sub(r.TotalCOGS).Div(r.GrossRevenue).Mul(hundred).Round(2)
		}
		articles = append(articles, dto.TopArticleDTO{
			ArticleCode:      r.ArticleCode,
			ArticleName:      r.ArticleName,
			QuantitySold:     r.UnitsSold,
			TotalRevenue:     r.GrossRevenue.Round(2),
			MarginPercentage: pct,
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:    today.revenue.Round(2),
		TodayMargin:   today.revenue.Sub(today.cost).Round(2),
		MonthlySales:  month.revenue.Round(2),
		MonthlyMargin: month.revenue.Sub(month.cost).Round(2),
		TopArticles:   articles,
		DateLabel:     monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
