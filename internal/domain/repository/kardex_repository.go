package repository

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// KardexRepository puerto del libro de movimientos (append-only).
type KardexRepository interface {
	Append(ctx context.Context, row *entity.KardexRow) error
	// LastForUpdate devuelve la última fila de (artículo, bodega) por fecha de ocurrencia
	// (desempate por fecha de registro) y bloquea el par hasta el fin de la transacción.
	// (nil, nil) si aún no hay movimientos.
	LastForUpdate(ctx context.Context, articleCode, warehouseCode string) (*entity.KardexRow, error)
	List(ctx context.Context, filter entity.KardexFilter) ([]entity.KardexRow, error)
	// Balances devuelve la última fila de cada par (artículo, bodega) de las bodegas dadas
	// (todas si la lista está vacía).
	Balances(ctx context.Context, warehouseCodes []string) ([]entity.KardexRow, error)
}

// InventoryTransactionRepository persiste las cabeceras y líneas de transacciones de inventario.
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	GetByCode(ctx context.Context, code string) (*entity.InventoryTransaction, error)
}
