package inventory

import (
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ResolveMovementDirection determina si un movimiento entra o sale de la bodega.
// PURCHASE siempre es IN y CONSUMPTION siempre es OUT; el resto (ADJUSTMENT, TRANSFER)
// se resuelve por el signo de la cantidad, con cero como IN.
func ResolveMovementDirection(txType string, qty decimal.Decimal) string {
	switch txType {
	case entity.TransactionTypePurchase:
		return entity.DirectionIn
	case entity.TransactionTypeConsumption:
		return entity.DirectionOut
	}
	if qty.Sign() < 0 {
		return entity.DirectionOut
	}
	return entity.DirectionIn
}

// ValidTransactionType indica si txType es uno de los tipos de transacción soportados.
func ValidTransactionType(txType string) bool {
	switch txType {
	case entity.TransactionTypePurchase, entity.TransactionTypeConsumption,
		entity.TransactionTypeAdjustment, entity.TransactionTypeTransfer:
		return true
	}
	return false
}
