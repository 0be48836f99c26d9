package usecase

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}
