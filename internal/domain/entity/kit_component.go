package entity

import "github.com/shopspring/decimal"

// KitComponent es un componente de un kit: Quantity unidades de detalle de ComponentCode
// se consumen por cada unidad del kit.
type KitComponent struct {
	ID            string
	KitCode       string
	ComponentCode string
	Quantity      decimal.Decimal
}
