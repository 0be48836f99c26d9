package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de artículo.
const (
	ArticleTypeSimple = "simple"
	ArticleTypeKit    = "kit" // se expande en sus componentes al moverse
)

// Unidades de captura de una cantidad.
const (
	UnitStorage = "STORAGE" // unidad de almacenamiento (caja, bulto)
	UnitRetail  = "RETAIL"  // unidad de venta al detalle (botella, porción)
)

// Article representa un artículo del inventario identificado por su código.
// ConversionFactor indica cuántas unidades de detalle contiene una unidad de almacenamiento.
// Cost es el costo promedio ponderado por unidad de detalle.
type Article struct {
	ID               string
	Code             string
	Name             string
	Type             string
	StorageUnit      string
	RetailUnit       string
	ConversionFactor decimal.Decimal
	Cost             decimal.Decimal
	Price            decimal.Decimal // precio de venta por unidad de detalle
	Active           bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsKit indica si el artículo es un kit.
func (a *Article) IsKit() bool {
	return a != nil && a.Type == ArticleTypeKit
}
