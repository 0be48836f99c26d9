package inventory

import (
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// MovementComputation resultado efímero de procesar una línea de transacción.
// No se persiste; solo las filas de kardex que genera.
type MovementComputation struct {
	Article         *entity.Article
	TransactionType string
	Direction       string
	Quantity        decimal.Decimal // valor absoluto, tal como se capturó
	Unit            string
	Quantities      Quantities
	Components      []ComponentMovement // solo kits
	FactorFallback  bool                // el factor del artículo era <= 0
}

// Target artículo sobre el que se escribe una fila de kardex.
type Target struct {
	Article       *entity.Article
	Quantities    Quantities
	SourceKitCode string
}

// ComputeMovement combina dirección, conversión y expansión de kit para una línea.
// qty puede venir con signo (ajustes); las cantidades resultantes son absolutas.
func ComputeMovement(
	article *entity.Article,
	txType string,
	qty decimal.Decimal,
	unit string,
	components []entity.KitComponent,
	lookup ArticleLookup,
) (*MovementComputation, error) {
	abs := qty.Abs()
	_, fallback := NormalizeFactor(article.ConversionFactor)
	m := &MovementComputation{
		Article:         article,
		TransactionType: txType,
		Direction:       ResolveMovementDirection(txType, qty),
		Quantity:        abs,
		Unit:            unit,
		Quantities:      CalculateQuantities(abs, unit, article.ConversionFactor),
		FactorFallback:  fallback,
	}
	if article.IsKit() {
		comps, err := ExpandKit(article, m.Quantities.Retail, components, lookup)
		if err != nil {
			return nil, err
		}
		m.Components = comps
	}
	return m, nil
}

// Targets devuelve los artículos a registrar en el kardex: el propio artículo o, si es kit,
// cada uno de sus componentes.
func (m *MovementComputation) Targets() []Target {
	if !m.Article.IsKit() {
		return []Target{{Article: m.Article, Quantities: m.Quantities}}
	}
	targets := make([]Target, 0, len(m.Components))
	for _, c := range m.Components {
		targets = append(targets, Target{
			Article:       c.Article,
			Quantities:    c.Quantities,
			SourceKitCode: m.Article.Code,
		})
	}
	return targets
}
