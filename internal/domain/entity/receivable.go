package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un documento por cobrar.
const (
	DocumentStatusOpen = "open"
	DocumentStatusPaid = "paid"
)

// ReceivableDocument documento de cuentas por cobrar (factura a crédito, nota débito).
type ReceivableDocument struct {
	ID         string
	CustomerID string
	Number     string
	InvoiceID  string
	IssuedAt   time.Time
	DueAt      time.Time
	Amount     decimal.Decimal
	Balance    decimal.Decimal
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DocumentPayment abono a un documento.
type DocumentPayment struct {
	ID         string
	DocumentID string
	Amount     decimal.Decimal
	Method     string
	PaidAt     time.Time
	CreatedBy  string
}
