package inventory

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// KardexRenderer genera una representación imprimible del kardex (HTML, PDF).
type KardexRenderer interface {
	RenderKardex(ctx context.Context, report *KardexReport) ([]byte, error)
}
