package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// RegisterFromRequest adapta el request HTTP al caso de uso Register(ctx, MovementInput).
// txType lo fija la ruta (purchases, consumptions, adjustments, transfers).
func (uc *RegisterMovementUseCase) RegisterFromRequest(ctx context.Context, userID, txType string, in dto.InventoryTransactionRequest) (*dto.InventoryTransactionResponse, error) {
	input := MovementInput{
		UserID:          userID,
		Type:            txType,
		WarehouseCode:   in.WarehouseCode,
		ToWarehouseCode: in.ToWarehouseCode,
		Reference:       in.Reference,
		Reason:          in.Reason,
		AuthorizedBy:    in.AuthorizedBy,
		Lines:           make([]LineInput, 0, len(in.Lines)),
	}
	if in.OccurredAt != nil {
		input.OccurredAt = *in.OccurredAt
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, LineInput{
			ArticleCode: l.ArticleCode,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
			UnitCost:    l.UnitCost,
			Notes:       l.Notes,
		})
	}
	header, rows, err := uc.Register(ctx, input)
	if err != nil {
		return nil, err
	}
	return toTransactionResponse(header, rows), nil
}

func toTransactionResponse(h *entity.InventoryTransaction, rows []entity.KardexRow) *dto.InventoryTransactionResponse {
	out := &dto.InventoryTransactionResponse{
		Code:            h.Code,
		Type:            h.Type,
		OccurredAt:      h.OccurredAt,
		WarehouseCode:   h.WarehouseCode,
		ToWarehouseCode: h.ToWarehouseCode,
		Rows:            make([]dto.KardexRowResponse, 0, len(rows)),
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, toKardexRowResponse(r))
	}
	return out
}

func toKardexRowResponse(r entity.KardexRow) dto.KardexRowResponse {
	delta := signedDelta(r)
	return dto.KardexRowResponse{
		ID:              r.ID,
		TransactionType: r.TransactionType,
		TransactionCode: r.TransactionCode,
		ArticleCode:     r.ArticleCode,
		WarehouseCode:   r.WarehouseCode,
		Direction:       r.Direction,
		QuantityRetail:  r.QuantityRetail,
		QuantityStorage: r.QuantityStorage,
		DeltaRetail:     delta.Retail,
		DeltaStorage:    delta.Storage,
		BalanceRetail:   r.BalanceRetail,
		BalanceStorage:  r.BalanceStorage,
		UnitCost:        r.UnitCost,
		OccurredAt:      r.OccurredAt.In(time.UTC),
		CreatedAt:       r.CreatedAt.In(time.UTC),
		Reference:       r.Reference,
		Counterparty:    r.Counterparty,
		SourceKitCode:   r.SourceKitCode,
	}
}
