package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	PaymentTermCode string          `json:"payment_term_code,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	TaxID           string          `json:"tax_id"`
	Email           string          `json:"email,omitempty"`
	Phone           string          `json:"phone,omitempty"`
	PaymentTermCode string          `json:"payment_term_code,omitempty"`
	CreditLimit     decimal.Decimal `json:"credit_limit"`
}

// PaymentTermRequest body para POST /api/payment-terms.
type PaymentTermRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Days int    `json:"days"`
}

// PaymentTermResponse condición de pago.
type PaymentTermResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Days int    `json:"days"`
}

// CreateReceivableRequest body para POST /api/receivables.
type CreateReceivableRequest struct {
	CustomerID string          `json:"customer_id"`
	Number     string          `json:"number"`
	Amount     decimal.Decimal `json:"amount"`
	IssuedAt   *time.Time      `json:"issued_at,omitempty"`
}

// ReceivablePaymentRequest body para POST /api/receivables/:id/payments.
type ReceivablePaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
}

// ReceivableResponse documento por cobrar.
type ReceivableResponse struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customer_id"`
	Number     string          `json:"number"`
	InvoiceID  string          `json:"invoice_id,omitempty"`
	IssuedAt   time.Time       `json:"issued_at"`
	DueAt      time.Time       `json:"due_at"`
	Amount     decimal.Decimal `json:"amount"`
	Balance    decimal.Decimal `json:"balance"`
	Status     string          `json:"status"`
	Overdue    bool            `json:"overdue"`
}

// StatementResponse estado de cuenta de un cliente.
type StatementResponse struct {
	Customer    CustomerResponse     `json:"customer"`
	Documents   []ReceivableResponse `json:"documents"`
	Outstanding decimal.Decimal      `json:"outstanding"`
	Overdue     decimal.Decimal      `json:"overdue"`
	Available   decimal.Decimal      `json:"available_credit"`
}
