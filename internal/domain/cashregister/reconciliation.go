// Package cashregister concilia lo cobrado por el sistema contra lo reportado en el cierre de caja.
package cashregister

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentAmount monto reportado por el cajero para un medio de pago.
type PaymentAmount struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// ExpectedPayment monto esperado por medio según las facturas de la sesión.
type ExpectedPayment struct {
	Method string
	Amount decimal.Decimal
	Count  int
}

// MethodSummary conciliación de un medio de pago. Difference = Expected - Reported.
type MethodSummary struct {
	Method     string          `json:"method"`
	Expected   decimal.Decimal `json:"expected"`
	Reported   decimal.Decimal `json:"reported"`
	Difference decimal.Decimal `json:"difference"`
	Count      int             `json:"count"`
}

// ClosureSummary resumen inmutable del cierre de una sesión.
type ClosureSummary struct {
	SessionID        string          `json:"session_id"`
	CashRegisterCode string          `json:"cash_register_code"`
	AdminID          string          `json:"admin_id"`
	OpenedAt         time.Time       `json:"opened_at"`
	ClosedAt         time.Time       `json:"closed_at"`
	OpeningAmount    decimal.Decimal `json:"opening_amount"`
	ClosingAmount    decimal.Decimal `json:"closing_amount"`
	Methods          []MethodSummary `json:"methods"`
	TotalExpected    decimal.Decimal `json:"total_expected"`
	TotalReported    decimal.Decimal `json:"total_reported"`
	TotalDifference  decimal.Decimal `json:"total_difference"`
	TransactionCount int             `json:"transaction_count"`
	// ExpectedCash = apertura + efectivo esperado; CashDifference = cierre - ExpectedCash.
	ExpectedCash   decimal.Decimal `json:"expected_cash"`
	CashDifference decimal.Decimal `json:"cash_difference"`
}

// NormalizeMethod nombre canónico de un medio de pago.
func NormalizeMethod(method string) string {
	return strings.ToLower(strings.TrimSpace(method))
}

// BuildClosureSummary concilia por medio de pago lo esperado contra lo reportado.
// Un medio presente en un solo lado aparece con cero en el otro; los montos reportados
// repetidos para un mismo medio se suman. Los medios se ordenan por nombre.
func BuildClosureSummary(
	session *entity.CashRegisterSession,
	closingAmount decimal.Decimal,
	closedAt time.Time,
	reported []PaymentAmount,
	expected []ExpectedPayment,
) ClosureSummary {
	byMethod := make(map[string]*MethodSummary)
	get := func(method string) *MethodSummary {
		m := NormalizeMethod(method)
		if s, ok := byMethod[m]; ok {
			return s
		}
		s := &MethodSummary{Method: m, Expected: decimal.Zero, Reported: decimal.Zero}
		byMethod[m] = s
		return s
	}
	for _, e := range expected {
		s := get(e.Method)
		s.Expected = s.Expected.Add(e.Amount)
		s.Count += e.Count
	}
	for _, r := range reported {
		s := get(r.Method)
		s.Reported = s.Reported.Add(r.Amount)
	}

	summary := ClosureSummary{
		SessionID:        session.ID,
		CashRegisterCode: session.CashRegisterCode,
		AdminID:          session.AdminID,
		OpenedAt:         session.OpenedAt,
		ClosedAt:         closedAt,
		OpeningAmount:    session.OpeningAmount,
		ClosingAmount:    closingAmount,
		Methods:          make([]MethodSummary, 0, len(byMethod)),
		TotalExpected:    decimal.Zero,
		TotalReported:    decimal.Zero,
		TotalDifference:  decimal.Zero,
	}
	cashExpected := decimal.Zero
	for _, s := range byMethod {
		s.Difference = s.Expected.Sub(s.Reported)
		summary.Methods = append(summary.Methods, *s)
		summary.TotalExpected = summary.TotalExpected.Add(s.Expected)
		summary.TotalReported = summary.TotalReported.Add(s.Reported)
		summary.TotalDifference = summary.TotalDifference.Add(s.Difference)
		summary.TransactionCount += s.Count
		if s.Method == entity.PaymentMethodCash {
			cashExpected = s.Expected
		}
	}
	sort.Slice(summary.Methods, func(i, j int) bool {
		return summary.Methods[i].Method < summary.Methods[j].Method
	})
	summary.ExpectedCash = session.OpeningAmount.Add(cashExpected)
	summary.CashDifference = closingAmount.Sub(summary.ExpectedCash)
	return summary
}

// SessionPayments filas de conciliación persistibles de un resumen.
func (s ClosureSummary) SessionPayments() []entity.SessionPayment {
	out := make([]entity.SessionPayment, 0, len(s.Methods))
	for _, m := range s.Methods {
		out = append(out, entity.SessionPayment{
			SessionID:  s.SessionID,
			Method:     m.Method,
			Expected:   m.Expected,
			Reported:   m.Reported,
			Difference: m.Difference,
			Count:      m.Count,
		})
	}
	return out
}
