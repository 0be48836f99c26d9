package receivable_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/receivable"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestApplyPayment(t *testing.T) {
	now := time.Now()
	doc := &entity.ReceivableDocument{Amount: d("100"), Balance: d("100"), Status: entity.DocumentStatusOpen}

	require.NoError(t, receivable.ApplyPayment(doc, d("40"), now))
	assert.True(t, doc.Balance.Equal(d("60")))

	assert.ErrorIs(t, receivable.ApplyPayment(doc, d("60.01"), now), domain.ErrExceedsBalance)
	assert.ErrorIs(t, receivable.ApplyPayment(doc, d("0"), now), domain.ErrInvalidInput)

	require.NoError(t, receivable.ApplyPayment(doc, d("60"), now))
	assert.Equal(t, entity.DocumentStatusPaid, doc.Status)
	assert.ErrorIs(t, receivable.ApplyPayment(doc, d("1"), now), domain.ErrExceedsBalance)
}

func TestCheckCreditLimit(t *testing.T) {
	c := &entity.Customer{CreditLimit: d("500")}
	assert.NoError(t, receivable.CheckCreditLimit(c, d("300"), d("200")))
	assert.ErrorIs(t, receivable.CheckCreditLimit(c, d("300"), d("200.01")), domain.ErrCreditLimitExceeded)
	assert.ErrorIs(t, receivable.CheckCreditLimit(&entity.Customer{}, d("0"), d("1")), domain.ErrCreditLimitExceeded)
}

func TestOutstandingYVencimiento(t *testing.T) {
	issued := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	due := receivable.DueDate(issued, &entity.PaymentTerm{Code: "30D", Days: 30})
	assert.Equal(t, issued.AddDate(0, 0, 30), due)
	assert.Equal(t, issued, receivable.DueDate(issued, nil))

	docs := []*entity.ReceivableDocument{
		{Balance: d("10"), Status: entity.DocumentStatusOpen, DueAt: due},
		{Balance: d("0"), Status: entity.DocumentStatusPaid, DueAt: due},
		{Balance: d("5.5"), Status: entity.DocumentStatusOpen, DueAt: due},
	}
	assert.True(t, receivable.Outstanding(docs).Equal(d("15.5")))
	assert.True(t, receivable.Overdue(docs[0], due.Add(time.Hour)))
	assert.False(t, receivable.Overdue(docs[1], due.Add(time.Hour)))
}
