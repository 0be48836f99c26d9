package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente con cuenta por cobrar (CxC).
type Customer struct {
	ID              string
	Name            string
	TaxID           string // NIT o Cédula
	Email           string
	Phone           string
	PaymentTermCode string
	CreditLimit     decimal.Decimal // cero = sin cupo
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentTerm condición de pago (contado, 30 días, ...).
type PaymentTerm struct {
	Code string
	Name string
	Days int
}
