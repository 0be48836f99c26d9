package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionLineRequest línea de una transacción de inventario.
// Unit: STORAGE o RETAIL. UnitCost aplica solo a compras y es por unidad capturada.
type TransactionLineRequest struct {
	ArticleCode string           `json:"article_code"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit"`
	UnitCost    *decimal.Decimal `json:"unit_cost,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// InventoryTransactionRequest body para POST /api/inventory/{purchases,consumptions,adjustments,transfers}.
type InventoryTransactionRequest struct {
	OccurredAt      *time.Time               `json:"occurred_at,omitempty"`
	WarehouseCode   string                   `json:"warehouse_code"`
	ToWarehouseCode string                   `json:"to_warehouse_code,omitempty"`
	Reference       string                   `json:"reference,omitempty"`
	Reason          string                   `json:"reason,omitempty"`
	AuthorizedBy    string                   `json:"authorized_by,omitempty"`
	Lines           []TransactionLineRequest `json:"lines"`
}

// KardexRowResponse fila del kardex con su delta con signo.
type KardexRowResponse struct {
	ID              string          `json:"id"`
	TransactionType string          `json:"transaction_type"`
	TransactionCode string          `json:"transaction_code"`
	ArticleCode     string          `json:"article_code"`
	WarehouseCode   string          `json:"warehouse_code"`
	Direction       string          `json:"direction"`
	QuantityRetail  decimal.Decimal `json:"quantity_retail"`
	QuantityStorage decimal.Decimal `json:"quantity_storage"`
	DeltaRetail     decimal.Decimal `json:"delta_retail"`
	DeltaStorage    decimal.Decimal `json:"delta_storage"`
	BalanceRetail   decimal.Decimal `json:"balance_retail"`
	BalanceStorage  decimal.Decimal `json:"balance_storage"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	OccurredAt      time.Time       `json:"occurred_at"`
	CreatedAt       time.Time       `json:"created_at"`
	Reference       string          `json:"reference,omitempty"`
	Counterparty    string          `json:"counterparty,omitempty"`
	SourceKitCode   string          `json:"source_kit_code,omitempty"`
}

// InventoryTransactionResponse transacción registrada y las filas de kardex que generó.
type InventoryTransactionResponse struct {
	Code            string              `json:"code"`
	Type            string              `json:"type"`
	OccurredAt      time.Time           `json:"occurred_at"`
	WarehouseCode   string              `json:"warehouse_code"`
	ToWarehouseCode string              `json:"to_warehouse_code,omitempty"`
	Rows            []KardexRowResponse `json:"rows"`
}

// KardexGroupResponse saldos de un par (artículo, bodega) dentro del rango consultado.
type KardexGroupResponse struct {
	ArticleCode           string          `json:"article_code"`
	WarehouseCode         string          `json:"warehouse_code"`
	InitialBalanceRetail  decimal.Decimal `json:"initial_balance_retail"`
	InitialBalanceStorage decimal.Decimal `json:"initial_balance_storage"`
	FinalBalanceRetail    decimal.Decimal `json:"final_balance_retail"`
	FinalBalanceStorage   decimal.Decimal `json:"final_balance_storage"`
	Rows                  int             `json:"rows"`
	Consistent            bool            `json:"consistent"`
}

// KardexResponse respuesta de GET /api/inventory/kardex. Items va agrupado por
// (artículo, bodega) y en orden cronológico dentro de cada grupo.
type KardexResponse struct {
	From   time.Time             `json:"from"`
	To     time.Time             `json:"to"`
	Items  []KardexRowResponse   `json:"items"`
	Groups []KardexGroupResponse `json:"groups"`
}

// StockItemResponse existencia actual de un artículo en una bodega, valorizada al costo promedio.
type StockItemResponse struct {
	ArticleCode    string          `json:"article_code"`
	ArticleName    string          `json:"article_name"`
	WarehouseCode  string          `json:"warehouse_code"`
	BalanceRetail  decimal.Decimal `json:"balance_retail"`
	BalanceStorage decimal.Decimal `json:"balance_storage"`
	RetailUnit     string          `json:"retail_unit"`
	StorageUnit    string          `json:"storage_unit"`
	UnitCost       decimal.Decimal `json:"unit_cost"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	LastMovementAt time.Time       `json:"last_movement_at"`
}

// StockResponse existencias por bodega y valor total del inventario.
type StockResponse struct {
	Items      []StockItemResponse `json:"items"`
	TotalValue decimal.Decimal     `json:"total_value"`
}
