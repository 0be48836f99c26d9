package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/shopspring/decimal"
)

// StockUseCase existencias actuales a partir del último saldo del kardex de cada par.
type StockUseCase struct {
	kardexRepo  repository.KardexRepository
	articleRepo repository.ArticleRepository
}

// NewStockUseCase construye el caso de uso de existencias.
func NewStockUseCase(kardexRepo repository.KardexRepository, articleRepo repository.ArticleRepository) *StockUseCase {
	return &StockUseCase{kardexRepo: kardexRepo, articleRepo: articleRepo}
}

// Current devuelve las existencias de las bodegas dadas (todas si está vacío), valorizadas
// al costo promedio vigente del artículo. Los saldos en cero se omiten salvo includeZero.
func (uc *StockUseCase) Current(ctx context.Context, warehouseCodes []string, includeZero bool) (*dto.StockResponse, error) {
	rows, err := uc.kardexRepo.Balances(ctx, codes.NormalizeAll(warehouseCodes))
	if err != nil {
		return nil, err
	}
	out := &dto.StockResponse{Items: []dto.StockItemResponse{}, TotalValue: decimal.Zero}
	for _, r := range rows {
		if r.BalanceRetail.IsZero() && !includeZero {
			continue
		}
		item := dto.StockItemResponse{
			ArticleCode:    r.ArticleCode,
			WarehouseCode:  r.WarehouseCode,
			BalanceRetail:  r.BalanceRetail,
			BalanceStorage: r.BalanceStorage,
			UnitCost:       r.UnitCost,
			LastMovementAt: r.OccurredAt,
		}
		article, err := uc.articleRepo.GetByCode(ctx, r.ArticleCode)
		if err != nil {
			return nil, err
		}
		if article != nil {
			item.ArticleName = article.Name
			item.RetailUnit = article.RetailUnit
			item.StorageUnit = article.StorageUnit
			item.UnitCost = article.Cost
		}
		item.TotalCost = item.BalanceRetail.Mul(item.UnitCost)
		out.TotalValue = out.TotalValue.Add(item.TotalCost)
		out.Items = append(out.Items, item)
	}
	sort.Slice(out.Items, func(i, j int) bool {
		a, b := out.Items[i], out.Items[j]
		if a.WarehouseCode != b.WarehouseCode {
			return a.WarehouseCode < b.WarehouseCode
		}
		return a.ArticleCode < b.ArticleCode
	})
	return out, nil
}
