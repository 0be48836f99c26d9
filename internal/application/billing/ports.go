package billing

import (
	"context"

	appinventory "github.com/jhoicas/restobar-api/internal/application/inventory"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y facturación.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// InventoryUseCase interfaz para integrar facturación con inventario.
// ConsumeInTx registra el consumo usando los repositorios del caller (misma transacción).
// Si retorna error (ej: ErrInsufficientStock), el caller debe hacer rollback.
type InventoryUseCase interface {
	ConsumeInTx(ctx context.Context, uow repository.UnitOfWork, in appinventory.MovementInput) ([]entity.KardexRow, error)
}
