package usecase_test

import (
	"context"
	"testing"

	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/application/usecase"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newArticleUseCase() *usecase.ArticleUseCase {
	store := memory.NewStore()
	repos := store.Repositories()
	return usecase.NewArticleUseCase(repos.Articles, repos.KitComponents, store)
}

func TestArticleCreate(t *testing.T) {
	ctx := context.Background()
	uc := newArticleUseCase()

	a, err := uc.Create(ctx, dto.CreateArticleRequest{Code: " ron-añejo ", Name: "Ron añejo", StorageUnit: "caja", RetailUnit: "botella", ConversionFactor: d("12")})
	require.NoError(t, err)
	assert.Equal(t, "RON-ANEJO", a.Code)
	assert.Equal(t, entity.ArticleTypeSimple, a.Type)

	b, err := uc.Create(ctx, dto.CreateArticleRequest{Code: "limon", Name: "Limón"})
	require.NoError(t, err)
	assert.True(t, d("1").Equal(b.ConversionFactor), "sin factor se asume 1")

	tests := []struct {
		name string
		in   dto.CreateArticleRequest
		want error
	}{
		{"duplicado", dto.CreateArticleRequest{Code: "RON-ANEJO", Name: "x"}, domain.ErrDuplicate},
		{"factor negativo", dto.CreateArticleRequest{Code: "x1", Name: "x", ConversionFactor: d("-2")}, domain.ErrInvalidConversion},
		{"tipo inválido", dto.CreateArticleRequest{Code: "x2", Name: "x", Type: "combo"}, domain.ErrInvalidInput},
		{"sin nombre", dto.CreateArticleRequest{Code: "x3"}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateArticleRequest{Code: "x4", Name: "x", Price: d("-1")}, domain.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Create(ctx, tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestArticleUpdate(t *testing.T) {
	ctx := context.Background()
	uc := newArticleUseCase()
	_, err := uc.Create(ctx, dto.CreateArticleRequest{Code: "RON", Name: "Ron", ConversionFactor: d("12")})
	require.NoError(t, err)

	zero := decimal.Zero
	_, err = uc.Update(ctx, "ron", dto.UpdateArticleRequest{ConversionFactor: &zero})
	assert.ErrorIs(t, err, domain.ErrInvalidConversion)

	price := d("18000")
	name := "Ron viejo"
	a, err := uc.Update(ctx, "ron", dto.UpdateArticleRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Ron viejo", a.Name)
	assert.True(t, price.Equal(a.Price))

	_, err = uc.Update(ctx, "gin", dto.UpdateArticleRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}

func TestReplaceComponents(t *testing.T) {
	ctx := context.Background()
	uc := newArticleUseCase()
	for _, in := range []dto.CreateArticleRequest{
		{Code: "RON", Name: "Ron", ConversionFactor: d("12")},
		{Code: "COLA", Name: "Cola"},
		{Code: "CUBALIBRE", Name: "Cuba libre", Type: entity.ArticleTypeKit},
		{Code: "COMBO", Name: "Combo", Type: entity.ArticleTypeKit},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	kit, err := uc.ReplaceComponents(ctx, "cubalibre", dto.ReplaceKitComponentsRequest{Components: []dto.KitComponentRequest{
		{ComponentCode: "ron", Quantity: d("0.25")},
		{ComponentCode: "cola", Quantity: d("1")},
	}})
	require.NoError(t, err)
	assert.Len(t, kit.Components, 2)

	got, err := uc.Components(ctx, "CUBALIBRE")
	require.NoError(t, err)
	require.Len(t, got.Components, 2)
	assert.Equal(t, "RON", got.Components[0].ComponentCode)

	_, err = uc.ReplaceComponents(ctx, "COMBO", dto.ReplaceKitComponentsRequest{Components: []dto.KitComponentRequest{
		{ComponentCode: "CUBALIBRE", Quantity: d("1")},
	}})
	assert.ErrorIs(t, err, domain.ErrNestedKit)

	_, err = uc.ReplaceComponents(ctx, "COMBO", dto.ReplaceKitComponentsRequest{Components: []dto.KitComponentRequest{
		{ComponentCode: "RON", Quantity: d("1")},
		{ComponentCode: "ron", Quantity: d("2")},
	}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "componente repetido")

	_, err = uc.ReplaceComponents(ctx, "RON", dto.ReplaceKitComponentsRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "no es kit")

	_, err = uc.Components(ctx, "COLA")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// un reemplazo fallido no toca la definición vigente
	got, err = uc.Components(ctx, "CUBALIBRE")
	require.NoError(t, err)
	assert.Len(t, got.Components, 2)
}
