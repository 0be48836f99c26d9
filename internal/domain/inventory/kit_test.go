package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/inventory"
)

func catalog(articles ...*entity.Article) inventory.ArticleLookup {
	byCode := make(map[string]*entity.Article, len(articles))
	for _, a := range articles {
		byCode[a.Code] = a
	}
	return func(code string) (*entity.Article, error) { return byCode[code], nil }
}

func simple(code, factor string) *entity.Article {
	return &entity.Article{Code: code, Type: entity.ArticleTypeSimple, ConversionFactor: d(factor)}
}

func kit(code string) *entity.Article {
	return &entity.Article{Code: code, Type: entity.ArticleTypeKit, ConversionFactor: d("1")}
}

func TestExpandKit_Combo(t *testing.T) {
	burger := simple("BURGER", "1")
	fries := simple("FRIES", "10")
	combo := kit("COMBO-1")
	comps := []entity.KitComponent{
		{KitCode: "COMBO-1", ComponentCode: "BURGER", Quantity: d("1")},
		{KitCode: "COMBO-1", ComponentCode: "FRIES", Quantity: d("1")},
	}

	out, err := inventory.ExpandKit(combo, d("3"), comps, catalog(burger, fries))
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "BURGER", out[0].Article.Code)
	assert.True(t, out[0].Quantities.Retail.Equal(d("3")))
	assert.True(t, out[0].Quantities.Storage.Equal(d("3")))

	assert.Equal(t, "FRIES", out[1].Article.Code)
	assert.True(t, out[1].Quantities.Retail.Equal(d("3")))
	assert.True(t, out[1].Quantities.Storage.Equal(d("0.3")), "cada componente usa su propio factor")
}

func TestExpandKit_SinComponentesNoGeneraMovimientos(t *testing.T) {
	out, err := inventory.ExpandKit(kit("VACIO"), d("2"), nil, catalog())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestExpandKit_KitAnidadoFalla(t *testing.T) {
	inner := kit("INNER")
	comps := []entity.KitComponent{{KitCode: "OUTER", ComponentCode: "INNER", Quantity: d("1")}}
	_, err := inventory.ExpandKit(kit("OUTER"), d("1"), comps, catalog(inner))
	assert.ErrorIs(t, err, domain.ErrNestedKit)
}

func TestExpandKit_ComponenteInexistente(t *testing.T) {
	comps := []entity.KitComponent{{KitCode: "K", ComponentCode: "NOPE", Quantity: d("1")}}
	_, err := inventory.ExpandKit(kit("K"), d("1"), comps, catalog())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestComputeMovement_CompraEnCajas(t *testing.T) {
	coke := simple("COKE-600", "12")
	m, err := inventory.ComputeMovement(coke, entity.TransactionTypePurchase, d("2"), entity.UnitStorage, nil, catalog())
	require.NoError(t, err)

	assert.Equal(t, entity.DirectionIn, m.Direction)
	assert.True(t, m.Quantities.Retail.Equal(d("24")))
	assert.True(t, m.Quantities.Storage.Equal(d("2")))
	assert.False(t, m.FactorFallback)
	require.Len(t, m.Targets(), 1)
	assert.Equal(t, "COKE-600", m.Targets()[0].Article.Code)
}

func TestComputeMovement_ConsumoDeKit(t *testing.T) {
	burger := simple("BURGER", "1")
	fries := simple("FRIES", "1")
	comps := []entity.KitComponent{
		{ComponentCode: "BURGER", Quantity: d("1")},
		{ComponentCode: "FRIES", Quantity: d("1")},
	}
	m, err := inventory.ComputeMovement(kit("COMBO-1"), entity.TransactionTypeConsumption, d("3"), entity.UnitRetail, comps, catalog(burger, fries))
	require.NoError(t, err)

	assert.Equal(t, entity.DirectionOut, m.Direction)
	targets := m.Targets()
	require.Len(t, targets, 2)
	for _, tg := range targets {
		assert.Equal(t, "COMBO-1", tg.SourceKitCode)
		assert.True(t, tg.Quantities.Retail.Equal(d("3")))
	}
}

func TestComputeMovement_AjusteNegativoEsSalidaAbsoluta(t *testing.T) {
	m, err := inventory.ComputeMovement(simple("X", "4"), entity.TransactionTypeAdjustment, d("-2"), entity.UnitRetail, nil, catalog())
	require.NoError(t, err)
	assert.Equal(t, entity.DirectionOut, m.Direction)
	assert.True(t, m.Quantities.Retail.Equal(d("2")))
	assert.True(t, m.Quantities.Storage.Equal(d("0.5")))
}

func TestComputeMovement_FactorInvalidoSeMarca(t *testing.T) {
	m, err := inventory.ComputeMovement(simple("X", "0"), entity.TransactionTypePurchase, d("2"), entity.UnitStorage, nil, catalog())
	require.NoError(t, err)
	assert.True(t, m.FactorFallback)
	assert.True(t, m.Quantities.Retail.Equal(d("2")))
}
