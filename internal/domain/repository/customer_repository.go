package repository

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para clientes y condiciones de pago.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Customer, error)

	CreateTerm(ctx context.Context, term *entity.PaymentTerm) error
	GetTerm(ctx context.Context, code string) (*entity.PaymentTerm, error)
	ListTerms(ctx context.Context) ([]*entity.PaymentTerm, error)
}
