package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest body para POST /api/invoices.
// WarehouseCode: bodega de la cual se descuenta el inventario.
type CreateInvoiceRequest struct {
	WarehouseCode string                  `json:"warehouse_code"`
	TableCode     string                  `json:"table_code,omitempty"`
	CustomerID    string                  `json:"customer_id,omitempty"` // obligatorio si hay pago a crédito
	Items         []InvoiceItemRequest    `json:"items"`
	Payments      []InvoicePaymentRequest `json:"payments"`
}

// InvoiceItemRequest línea de factura en unidades de detalle. Sin precio se usa el del artículo.
type InvoiceItemRequest struct {
	ArticleCode string           `json:"article_code"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unit_price,omitempty"`
}

// InvoicePaymentRequest pago de la factura.
type InvoicePaymentRequest struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// InvoiceResponse factura con detalle.
type InvoiceResponse struct {
	ID            string                   `json:"id"`
	Number        string                   `json:"number"`
	SessionID     string                   `json:"session_id"`
	WarehouseCode string                   `json:"warehouse_code"`
	TableCode     string                   `json:"table_code,omitempty"`
	CustomerID    string                   `json:"customer_id,omitempty"`
	Total         decimal.Decimal          `json:"total"`
	CreatedAt     time.Time                `json:"created_at"`
	Items         []InvoiceDetailResponse  `json:"items"`
	Payments      []InvoicePaymentResponse `json:"payments"`
	ReceivableID  string                   `json:"receivable_id,omitempty"`
}

// InvoiceDetailResponse línea de detalle en la respuesta.
type InvoiceDetailResponse struct {
	ArticleCode string          `json:"article_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// InvoicePaymentResponse pago registrado.
type InvoicePaymentResponse struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}
