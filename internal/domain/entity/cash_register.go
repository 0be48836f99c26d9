package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una sesión de caja.
const (
	SessionStatusOpen   = "OPEN"
	SessionStatusClosed = "CLOSED"
)

// CashRegister representa una caja registradora física.
type CashRegister struct {
	ID        string
	Code      string
	Name      string
	Active    bool
	CreatedAt time.Time
}

// CashRegisterSession ciclo de apertura/cierre de una caja. Solo puede existir una sesión
// OPEN por administrador y por caja.
type CashRegisterSession struct {
	ID               string
	CashRegisterCode string
	AdminID          string
	Status           string
	OpeningAmount    decimal.Decimal
	OpeningNotes     string
	OpenedAt         time.Time
	ClosingAmount    *decimal.Decimal
	ClosingNotes     string
	ClosedAt         *time.Time
	ClosedBy         string
	Summary          json.RawMessage // snapshot del cierre
}

// IsOpen indica si la sesión sigue abierta.
func (s *CashRegisterSession) IsOpen() bool {
	return s != nil && s.Status == SessionStatusOpen
}

// SessionPayment fila de conciliación por medio de pago de una sesión cerrada.
type SessionPayment struct {
	SessionID  string
	Method     string
	Expected   decimal.Decimal
	Reported   decimal.Decimal
	Difference decimal.Decimal
	Count      int
}
