package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TransactionTypePurchase    = "PURCHASE"    // compra
	TransactionTypeConsumption = "CONSUMPTION" // consumo / venta
	TransactionTypeAdjustment  = "ADJUSTMENT"  // ajuste por conteo físico
	TransactionTypeTransfer    = "TRANSFER"    // traslado entre bodegas
)

// Dirección del movimiento.
const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// KardexRow es un registro inmutable del kardex. Las cantidades se guardan en valor absoluto
// (Direction indica el signo) y los saldos son los acumulados de (ArticleCode, WarehouseCode)
// después de aplicar la fila.
type KardexRow struct {
	ID              string
	TransactionType string
	TransactionCode string
	ArticleCode     string
	WarehouseCode   string
	Direction       string
	QuantityRetail  decimal.Decimal
	QuantityStorage decimal.Decimal
	BalanceRetail   decimal.Decimal
	BalanceStorage  decimal.Decimal
	UnitCost        decimal.Decimal // costo por unidad de detalle
	OccurredAt      time.Time
	CreatedAt       time.Time
	Reference       string
	Counterparty    string // bodega contraparte en traslados, proveedor en compras
	SourceKitCode   string // kit que originó el movimiento, si aplica
	CreatedBy       string
}

// KardexFilter filtros de consulta del kardex. Rango [From, To).
type KardexFilter struct {
	From           time.Time
	To             time.Time
	ArticleCodes   []string
	WarehouseCodes []string
}
