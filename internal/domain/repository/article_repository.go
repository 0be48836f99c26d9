package repository

import (
	"context"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ArticleRepository define el puerto de persistencia para artículos.
// GetByCode devuelve (nil, nil) si no existe.
type ArticleRepository interface {
	Create(ctx context.Context, article *entity.Article) error
	GetByCode(ctx context.Context, code string) (*entity.Article, error)
	Update(ctx context.Context, article *entity.Article) error
	UpdateCost(ctx context.Context, code string, cost decimal.Decimal) error
	List(ctx context.Context, limit, offset int) ([]*entity.Article, error)
}

// KitComponentRepository define el puerto para los componentes de un kit.
type KitComponentRepository interface {
	ListByKit(ctx context.Context, kitCode string) ([]entity.KitComponent, error)
	// ReplaceForKit reemplaza la lista completa de componentes del kit.
	ReplaceForKit(ctx context.Context, kitCode string, components []entity.KitComponent) error
}
