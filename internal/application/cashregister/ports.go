package cashregister

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/cashregister"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// ClosureRenderer genera el reporte imprimible de un cierre de caja.
type ClosureRenderer interface {
	RenderClosure(ctx context.Context, summary *cashregister.ClosureSummary) ([]byte, error)
}
