// Package inventory contiene los servicios de dominio del kardex: conversión de unidades,
// dirección de movimientos, expansión de kits, saldos y costo promedio.
package inventory

import (
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Epsilon por debajo del cual una cantidad se considera cero.
var Epsilon = decimal.New(1, -6)

// Quantities una cantidad expresada en ambas unidades del artículo.
type Quantities struct {
	Retail  decimal.Decimal
	Storage decimal.Decimal
}

// Neg devuelve las cantidades con signo invertido.
func (q Quantities) Neg() Quantities {
	return Quantities{Retail: q.Retail.Neg(), Storage: q.Storage.Neg()}
}

// Add suma componente a componente.
func (q Quantities) Add(o Quantities) Quantities {
	return Quantities{Retail: q.Retail.Add(o.Retail), Storage: q.Storage.Add(o.Storage)}
}

// ValidUnit indica si unit es STORAGE o RETAIL.
func ValidUnit(unit string) bool {
	return unit == entity.UnitStorage || unit == entity.UnitRetail
}

// NormalizeFactor devuelve el factor a usar en la conversión. Un factor <= 0 se reemplaza
// por 1; el segundo valor indica que se aplicó ese reemplazo.
func NormalizeFactor(factor decimal.Decimal) (decimal.Decimal, bool) {
	if factor.LessThanOrEqual(decimal.Zero) {
		return decimal.NewFromInt(1), true
	}
	return factor, false
}

// Normalize lleva a cero exacto las cantidades con valor absoluto menor que Epsilon.
func Normalize(q decimal.Decimal) decimal.Decimal {
	if q.Abs().LessThan(Epsilon) {
		return decimal.Zero
	}
	return q
}

// CalculateQuantities convierte qty capturada en unit a unidades de detalle y de almacenamiento.
//
//	STORAGE: retail = qty * factor, storage = qty
//	RETAIL:  retail = qty,          storage = qty / factor
//
// Cualquier unidad distinta de STORAGE se trata como RETAIL.
func CalculateQuantities(qty decimal.Decimal, unit string, factor decimal.Decimal) Quantities {
	f, _ := NormalizeFactor(factor)
	if unit == entity.UnitStorage {
		return Quantities{
			Retail:  Normalize(qty.Mul(f)),
			Storage: Normalize(qty),
		}
	}
	return Quantities{
		Retail:  Normalize(qty),
		Storage: Normalize(qty.Div(f)),
	}
}
