package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago.
const (
	PaymentMethodCash     = "efectivo"
	PaymentMethodCard     = "tarjeta"
	PaymentMethodTransfer = "transferencia"
	PaymentMethodCredit   = "credito" // genera documento de cuentas por cobrar
)

// SalesInvoice factura de venta registrada durante una sesión de caja.
type SalesInvoice struct {
	ID            string
	Number        string
	SessionID     string
	WarehouseCode string
	TableCode     string
	CustomerID    string
	Total         decimal.Decimal
	CreatedBy     string
	CreatedAt     time.Time
	Lines         []SalesInvoiceLine
	Payments      []InvoicePayment
}

// SalesInvoiceLine detalle de una factura.
type SalesInvoiceLine struct {
	ArticleCode string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	UnitCost    decimal.Decimal // costo promedio por unidad al momento de la venta
	Subtotal    decimal.Decimal
}

// InvoicePayment pago de una factura por medio.
type InvoicePayment struct {
	Method string
	Amount decimal.Decimal
}
