// Package receivable reglas de cuentas por cobrar (CxC): abonos y cupo de crédito.
package receivable

import (
	"time"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ApplyPayment descuenta amount del saldo del documento; un abono mayor al saldo falla.
func ApplyPayment(doc *entity.ReceivableDocument, amount decimal.Decimal, now time.Time) error {
	if !amount.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if doc.Status == entity.DocumentStatusPaid || amount.GreaterThan(doc.Balance) {
		return domain.ErrExceedsBalance
	}
	doc.Balance = doc.Balance.Sub(amount)
	if doc.Balance.IsZero() {
		doc.Status = entity.DocumentStatusPaid
	}
	doc.UpdatedAt = now
	return nil
}

// Outstanding saldo total pendiente de los documentos.
func Outstanding(docs []*entity.ReceivableDocument) decimal.Decimal {
	total := decimal.Zero
	for _, doc := range docs {
		if doc.Status == entity.DocumentStatusOpen {
			total = total.Add(doc.Balance)
		}
	}
	return total
}

// CheckCreditLimit valida que un nuevo documento no supere el cupo del cliente.
// Un cupo en cero significa cliente sin cupo de crédito.
func CheckCreditLimit(customer *entity.Customer, outstanding, amount decimal.Decimal) error {
	if customer.CreditLimit.LessThanOrEqual(decimal.Zero) {
		return domain.ErrCreditLimitExceeded
	}
	if outstanding.Add(amount).GreaterThan(customer.CreditLimit) {
		return domain.ErrCreditLimitExceeded
	}
	return nil
}

// DueDate fecha de vencimiento según la condición de pago (nil = contado).
func DueDate(issuedAt time.Time, term *entity.PaymentTerm) time.Time {
	if term == nil {
		return issuedAt
	}
	return issuedAt.AddDate(0, 0, term.Days)
}

// Overdue indica si el documento está vencido a la fecha dada.
func Overdue(doc *entity.ReceivableDocument, at time.Time) bool {
	return doc.Status == entity.DocumentStatusOpen && at.After(doc.DueAt)
}
