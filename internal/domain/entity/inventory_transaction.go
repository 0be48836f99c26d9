package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTransaction cabecera de una transacción de inventario (compra, consumo, ajuste o traslado).
type InventoryTransaction struct {
	ID              string
	Code            string
	Type            string
	WarehouseCode   string
	ToWarehouseCode string // solo TRANSFER
	OccurredAt      time.Time
	Reference       string
	Reason          string
	AuthorizedBy    string
	CreatedBy       string
	CreatedAt       time.Time
	Lines           []InventoryTransactionLine
}

// InventoryTransactionLine línea tal como fue capturada.
type InventoryTransactionLine struct {
	ArticleCode string
	Quantity    decimal.Decimal
	Unit        string
	UnitCost    *decimal.Decimal // por unidad capturada; solo compras
	Notes       string
}
