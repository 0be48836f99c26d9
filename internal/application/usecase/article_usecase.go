package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/shopspring/decimal"
)

// ArticleUseCase casos de uso del catálogo de artículos y kits. El costo se maneja vía compras.
type ArticleUseCase struct {
	repo     repository.ArticleRepository
	kitRepo  repository.KitComponentRepository
	txRunner TxRunner
}

// NewArticleUseCase construye el caso de uso.
func NewArticleUseCase(repo repository.ArticleRepository, kitRepo repository.KitComponentRepository, txRunner TxRunner) *ArticleUseCase {
	return &ArticleUseCase{repo: repo, kitRepo: kitRepo, txRunner: txRunner}
}

// Create crea un nuevo artículo. El factor de conversión debe ser mayor que cero.
func (uc *ArticleUseCase) Create(ctx context.Context, in dto.CreateArticleRequest) (*dto.ArticleResponse, error) {
	code := codes.Normalize(in.Code)
	if code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	typ := in.Type
	if typ == "" {
		typ = entity.ArticleTypeSimple
	}
	if typ != entity.ArticleTypeSimple && typ != entity.ArticleTypeKit {
		return nil, domain.ErrInvalidInput
	}
	factor := in.ConversionFactor
	if factor.IsZero() {
		factor = decimal.NewFromInt(1)
	}
	if !factor.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidConversion
	}
	if in.Cost.LessThan(decimal.Zero) || in.Price.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now().UTC()
	article := &entity.Article{
		ID:               uuid.New().String(),
		Code:             code,
		Name:             in.Name,
		Type:             typ,
		StorageUnit:      in.StorageUnit,
		RetailUnit:       in.RetailUnit,
		ConversionFactor: factor,
		Cost:             in.Cost,
		Price:            in.Price,
		Active:           true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.repo.Create(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// GetByCode obtiene un artículo por código.
func (uc *ArticleUseCase) GetByCode(ctx context.Context, code string) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByCode(ctx, codes.Normalize(code))
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	return toArticleResponse(article), nil
}

// Update actualiza un artículo. No permite modificar el costo ni el tipo.
func (uc *ArticleUseCase) Update(ctx context.Context, code string, in dto.UpdateArticleRequest) (*dto.ArticleResponse, error) {
	article, err := uc.repo.GetByCode(ctx, codes.Normalize(code))
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		article.Name = *in.Name
	}
	if in.StorageUnit != nil {
		article.StorageUnit = *in.StorageUnit
	}
	if in.RetailUnit != nil {
		article.RetailUnit = *in.RetailUnit
	}
	if in.ConversionFactor != nil {
		if !in.ConversionFactor.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidConversion
		}
		article.ConversionFactor = *in.ConversionFactor
	}
	if in.Price != nil {
		if in.Price.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		article.Price = *in.Price
	}
	if in.Active != nil {
		article.Active = *in.Active
	}
	article.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, article); err != nil {
		return nil, err
	}
	return toArticleResponse(article), nil
}

// List lista artículos con paginación.
func (uc *ArticleUseCase) List(ctx context.Context, limit, offset int) (*dto.ArticleListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ArticleResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toArticleResponse(a))
	}
	return &dto.ArticleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Components lista los componentes de un kit.
func (uc *ArticleUseCase) Components(ctx context.Context, kitCode string) (*dto.KitResponse, error) {
	code := codes.Normalize(kitCode)
	kit, err := uc.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if kit == nil {
		return nil, domain.ErrNotFound
	}
	if !kit.IsKit() {
		return nil, fmt.Errorf("%s no es un kit: %w", code, domain.ErrInvalidInput)
	}
	list, err := uc.kitRepo.ListByKit(ctx, code)
	if err != nil {
		return nil, err
	}
	return toKitResponse(code, list), nil
}

// ReplaceComponents reemplaza la definición del kit. Los componentes deben ser artículos
// simples existentes; las filas históricas del kardex no cambian.
func (uc *ArticleUseCase) ReplaceComponents(ctx context.Context, kitCode string, in dto.ReplaceKitComponentsRequest) (*dto.KitResponse, error) {
	code := codes.Normalize(kitCode)
	var components []entity.KitComponent
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		kit, err := uow.Articles.GetByCode(ctx, code)
		if err != nil {
			return err
		}
		if kit == nil {
			return domain.ErrNotFound
		}
		if !kit.IsKit() {
			return fmt.Errorf("%s no es un kit: %w", code, domain.ErrInvalidInput)
		}
		seen := make(map[string]bool, len(in.Components))
		components = make([]entity.KitComponent, 0, len(in.Components))
		for _, c := range in.Components {
			compCode := codes.Normalize(c.ComponentCode)
			if compCode == "" || compCode == code || seen[compCode] || !c.Quantity.GreaterThan(decimal.Zero) {
				return fmt.Errorf("componente %q: %w", c.ComponentCode, domain.ErrInvalidInput)
			}
			seen[compCode] = true
			comp, err := uow.Articles.GetByCode(ctx, compCode)
			if err != nil {
				return err
			}
			if comp == nil {
				return fmt.Errorf("componente %s: %w", compCode, domain.ErrNotFound)
			}
			if comp.IsKit() {
				return fmt.Errorf("componente %s: %w", compCode, domain.ErrNestedKit)
			}
			components = append(components, entity.KitComponent{
				ID:            uuid.New().String(),
				KitCode:       code,
				ComponentCode: compCode,
				Quantity:      c.Quantity,
			})
		}
		return uow.KitComponents.ReplaceForKit(ctx, code, components)
	})
	if err != nil {
		return nil, err
	}
	return toKitResponse(code, components), nil
}

func toArticleResponse(a *entity.Article) *dto.ArticleResponse {
	if a == nil {
		return nil
	}
	return &dto.ArticleResponse{
		ID:               a.ID,
		Code:             a.Code,
		Name:             a.Name,
		Type:             a.Type,
		StorageUnit:      a.StorageUnit,
		RetailUnit:       a.RetailUnit,
		ConversionFactor: a.ConversionFactor,
		Cost:             a.Cost,
		Price:            a.Price,
		Active:           a.Active,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toKitResponse(kitCode string, list []entity.KitComponent) *dto.KitResponse {
	out := &dto.KitResponse{KitCode: kitCode, Components: make([]dto.KitComponentResponse, 0, len(list))}
	for _, c := range list {
		out.Components = append(out.Components, dto.KitComponentResponse{
			ComponentCode: c.ComponentCode,
			Quantity:      c.Quantity,
		})
	}
	return out
}
