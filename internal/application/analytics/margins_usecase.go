package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	defaultTopN     = 20
	maxTopN         = 200
	paretoThreshold = 80 // el top 20% de artículos genera ~80% de ingresos
	dateLayout      = "2006-01-02"
)

var (
	hundred  = decimal.NewFromInt(100)
	pareto80 = decimal.NewFromInt(paretoThreshold)
)

// MarginsUseCase orquesta las consultas de rentabilidad:
//   - Recaudo por medio de pago.
//   - Ranking de artículos por margen bruto.
//   - Identificación del top Pareto (artículos que generan ~80% del ingreso).
type MarginsUseCase struct {
	repo repository.SalesAnalyticsRepository
	loc  *time.Location
}

// NewMarginsUseCase construye el caso de uso. loc interpreta las fechas del período (nil = UTC).
func NewMarginsUseCase(repo repository.SalesAnalyticsRepository, loc *time.Location) *MarginsUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &MarginsUseCase{repo: repo, loc: loc}
}

// GetMarginsReport genera el reporte completo de márgenes para un período.
func (uc *MarginsUseCase) GetMarginsReport(ctx context.Context, req dto.MarginsReportRequest) (*dto.MarginsReportDTO, error) {
	start, end, err := parsePeriod(req.StartDate, req.EndDate, time.Now().In(uc.loc))
	if err != nil {
		return nil, err
	}
	topN := req.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if topN > maxTopN {
		topN = maxTopN
	}

	// 1) Consultas independientes en paralelo
	type metricsResult struct {
		revenue, cogs decimal.Decimal
		err           error
	}
	type methodResult struct {
		rows []repository.MethodSales
		err  error
	}
	type articleResult struct {
		rows []repository.ArticleSales
		err  error
	}
	metricsCh := make(chan metricsResult, 1)
	methodCh := make(chan methodResult, 1)
	articleCh := make(chan articleResult, 1)

	go func() {
		rev, cogs, err := uc.repo.SalesMetrics(ctx, start, end)
		metricsCh <- metricsResult{rev, cogs, err}
	}()
	go func() {
		rows, err := uc.repo.SalesByMethod(ctx, start, end)
		methodCh <- methodResult{rows, err}
	}()
	go func() {
		rows, err := uc.repo.ArticleSales(ctx, start, end, 0)
		articleCh <- articleResult{rows, err}
	}()

	metrics := <-metricsCh
	methods := <-methodCh
	articles := <-articleCh

	if metrics.err != nil {
		return nil, fmt.Errorf("analytics: métricas: %w", metrics.err)
	}
	if methods.err != nil {
		return nil, fmt.Errorf("analytics: medios de pago: %w", methods.err)
	}
	if articles.err != nil {
		return nil, fmt.Errorf("analytics: artículos: %w", articles.err)
	}

	ranking := buildArticleRanking(articles.rows)
	if len(ranking) > topN {
		ranking = ranking[:topN]
	}
	var pareto []dto.ArticleRankingDTO
	for _, a := range ranking {
		if a.IsTopPareto {
			pareto = append(pareto, a)
		}
	}

	return &dto.MarginsReportDTO{
		Period: dto.PeriodDTO{
			StartDate: start.Format(dateLayout),
			EndDate:   end.AddDate(0, 0, -1).Format(dateLayout),
		},
		Profitability:  buildProfitability(metrics.revenue, metrics.cogs, methods.rows),
		ArticleRanking: ranking,
		ParetoArticles: pareto,
	}, nil
}

// buildProfitability totales del período con la participación de cada medio de pago.
func buildProfitability(revenue, cogs decimal.Decimal, rows []repository.MethodSales) dto.ProfitabilityDTO {
	var collected decimal.Decimal
	for _, r := range rows {
		collected = collected.Add(r.Amount)
	}
	methods := make([]dto.SalesByMethodDTO, 0, len(rows))
	for _, r := range rows {
		pct := decimal.Zero
		if collected.IsPositive() {
			pct = r.Amount.Div(collected).Mul(hundred).Round(2)
		}
		methods = append(methods, dto.SalesByMethodDTO{
			Method:       r.Method,
			InvoiceCount: r.InvoiceCount,
			Amount:       r.Amount.Round(2),
			AmountPct:    pct,
		})
	}
	margin := revenue.Sub(cogs)
	marginPct := decimal.Zero
	if revenue.IsPositive() {
		marginPct = margin.Div(revenue).Mul(hundred).Round(2)
	}
	return dto.ProfitabilityDTO{
		TotalRevenue:     revenue.Round(2),
		TotalCOGS:        cogs.Round(2),
		TotalMargin:      margin.Round(2),
		OverallMarginPct: marginPct,
		Methods:          methods,
	}
}

// buildArticleRanking ordena por margen bruto descendente y calcula la curva Pareto
// sobre los ingresos acumulados en ese orden.
func buildArticleRanking(rows []repository.ArticleSales) []dto.ArticleRankingDTO {
	if len(rows) == 0 {
		return []dto.ArticleRankingDTO{}
	}
	rows = append([]repository.ArticleSales(nil), rows...)
	sort.SliceStable(rows, func(i, j int) bool {
		pi := rows[i].GrossRevenue.Sub(rows[i].TotalCOGS)
		pj := rows[j].GrossRevenue.Sub(rows[j].TotalCOGS)
		if !pi.Equal(pj) {
			return pi.GreaterThan(pj)
		}
		return rows[i].ArticleCode < rows[j].ArticleCode
	})

	var totalRevenue decimal.Decimal
	for _, r := range rows {
		totalRevenue = totalRevenue.Add(r.GrossRevenue)
	}

	ranking := make([]dto.ArticleRankingDTO, 0, len(rows))
	var cumulative decimal.Decimal
	for i, r := range rows {
		profit := r.GrossRevenue.Sub(r.TotalCOGS)
		marginPct := decimal.Zero
		if r.GrossRevenue.IsPositive() {
			marginPct = profit.Div(r.GrossRevenue).Mul(hundred).Round(2)
		}
		revenuePct := decimal.Zero
		if totalRevenue.IsPositive() {
			revenuePct = r.GrossRevenue.Div(totalRevenue).Mul(hundred).Round(2)
		}
		cumulative = cumulative.Add(revenuePct)
		// el artículo que cruza el umbral también cuenta (80/20 es aproximado)
		isPareto := cumulative.LessThanOrEqual(pareto80) || i == 0

		ranking = append(ranking, dto.ArticleRankingDTO{
			Rank:             i + 1,
			ArticleCode:      r.ArticleCode,
			ArticleName:      r.ArticleName,
			UnitsSold:        r.UnitsSold,
			GrossRevenue:     r.GrossRevenue.Round(2),
			TotalCOGS:        r.TotalCOGS.Round(2),
			GrossProfit:      profit.Round(2),
			MarginPct:        marginPct,
			RevenuePct:       revenuePct,
			CumulativeRevPct: cumulative.Round(2),
			IsTopPareto:      isPareto,
		})
	}
	return ranking
}

// parsePeriod convierte las fechas YYYY-MM-DD en el rango [start, end). end es inclusivo
// en la entrada. Por defecto: primer día del mes actual hasta hoy.
func parsePeriod(startStr, endStr string, now time.Time) (start, end time.Time, err error) {
	loc := now.Location()
	if endStr == "" {
		end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	} else {
		end, err = time.ParseInLocation(dateLayout, endStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("end_date inválido: %w", domain.ErrInvalidInput)
		}
	}
	end = end.AddDate(0, 0, 1)

	if startStr == "" {
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	} else {
		start, err = time.ParseInLocation(dateLayout, startStr, loc)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("start_date inválido: %w", domain.ErrInvalidInput)
		}
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date no puede ser posterior a end_date: %w", domain.ErrInvalidInput)
	}
	return start, end, nil
}
