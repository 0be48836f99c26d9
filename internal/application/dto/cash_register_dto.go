package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCashRegisterRequest entrada para crear una caja.
type CreateCashRegisterRequest struct {
	Code string `json:"code" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// CashRegisterResponse salida de una caja.
type CashRegisterResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// OpenSessionRequest body para POST /api/cash-registers/sessions/open.
type OpenSessionRequest struct {
	CashRegisterCode string          `json:"cash_register_code"`
	OpeningAmount    decimal.Decimal `json:"opening_amount"`
	Notes            string          `json:"notes,omitempty"`
}

// ReportedPayment monto contado por el cajero para un medio de pago.
type ReportedPayment struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// CloseSessionRequest body para POST /api/cash-registers/sessions/close.
// SessionID es opcional: sin él se cierra la sesión abierta del usuario.
type CloseSessionRequest struct {
	SessionID     string            `json:"session_id,omitempty"`
	ClosingAmount decimal.Decimal   `json:"closing_amount"`
	Payments      []ReportedPayment `json:"payments"`
	Notes         string            `json:"notes,omitempty"`
}

// SessionPaymentResponse conciliación de un medio de pago.
type SessionPaymentResponse struct {
	Method     string          `json:"method"`
	Expected   decimal.Decimal `json:"expected"`
	Reported   decimal.Decimal `json:"reported"`
	Difference decimal.Decimal `json:"difference"`
	Count      int             `json:"count"`
}

// SessionResponse sesión de caja; Payments solo se llena en sesiones cerradas.
type SessionResponse struct {
	ID               string                   `json:"id"`
	CashRegisterCode string                   `json:"cash_register_code"`
	AdminID          string                   `json:"admin_id"`
	Status           string                   `json:"status"`
	OpeningAmount    decimal.Decimal          `json:"opening_amount"`
	OpeningNotes     string                   `json:"opening_notes,omitempty"`
	OpenedAt         time.Time                `json:"opened_at"`
	ClosingAmount    *decimal.Decimal         `json:"closing_amount,omitempty"`
	ClosingNotes     string                   `json:"closing_notes,omitempty"`
	ClosedAt         *time.Time               `json:"closed_at,omitempty"`
	Payments         []SessionPaymentResponse `json:"payments,omitempty"`
}

// ClosureResponse resultado del cierre de una sesión.
type ClosureResponse struct {
	Session         SessionResponse          `json:"session"`
	Methods         []SessionPaymentResponse `json:"methods"`
	TotalExpected   decimal.Decimal          `json:"total_expected"`
	TotalReported   decimal.Decimal          `json:"total_reported"`
	TotalDifference decimal.Decimal          `json:"total_difference"`
	ExpectedCash    decimal.Decimal          `json:"expected_cash"`
	CashDifference  decimal.Decimal          `json:"cash_difference"`
}
