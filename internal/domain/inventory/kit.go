package inventory

import (
	"fmt"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ArticleLookup resuelve un artículo por código. Devuelve (nil, nil) si no existe.
type ArticleLookup func(code string) (*entity.Article, error)

// ComponentMovement movimiento derivado de un componente de kit.
type ComponentMovement struct {
	Article    *entity.Article
	PerKit     decimal.Decimal // unidades de detalle del componente por unidad de kit
	Quantities Quantities
}

// ExpandKit genera un movimiento por componente del kit: PerKit * kitQty unidades de detalle,
// convertidas con el factor propio del componente. Un kit sin componentes no genera
// movimientos. Solo se expande un nivel; un componente que sea kit devuelve ErrNestedKit.
func ExpandKit(kit *entity.Article, kitQty decimal.Decimal, components []entity.KitComponent, lookup ArticleLookup) ([]ComponentMovement, error) {
	out := make([]ComponentMovement, 0, len(components))
	for _, c := range components {
		article, err := lookup(c.ComponentCode)
		if err != nil {
			return nil, err
		}
		if article == nil {
			return nil, fmt.Errorf("componente %s del kit %s: %w", c.ComponentCode, kit.Code, domain.ErrNotFound)
		}
		if article.IsKit() {
			return nil, fmt.Errorf("componente %s del kit %s: %w", c.ComponentCode, kit.Code, domain.ErrNestedKit)
		}
		retail := c.Quantity.Mul(kitQty)
		out = append(out, ComponentMovement{
			Article:    article,
			PerKit:     c.Quantity,
			Quantities: CalculateQuantities(retail, entity.UnitRetail, article.ConversionFactor),
		})
	}
	return out, nil
}
