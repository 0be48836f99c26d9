package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/restobar-api/internal/application/billing"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceivables(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()
	customers := billing.NewCustomerUseCase(repos.Customers)
	receivables := billing.NewReceivableUseCase(store, repos.Receivables, repos.Customers, zerolog.Nop())

	_, err := customers.CreateTerm(ctx, dto.PaymentTermRequest{Code: "15d", Name: "15 días", Days: 15})
	require.NoError(t, err)

	_, err = customers.Create(ctx, dto.CreateCustomerRequest{Name: "X", TaxID: "1", PaymentTermCode: "60D"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	c, err := customers.Create(ctx, dto.CreateCustomerRequest{
		Name: "Eventos SAS", TaxID: "800555", PaymentTermCode: "15d", CreditLimit: d("100000"),
	})
	require.NoError(t, err)
	assert.Equal(t, "15D", c.PaymentTermCode)

	_, err = customers.Create(ctx, dto.CreateCustomerRequest{Name: "Otro", TaxID: "800555"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	old := time.Now().UTC().AddDate(0, 0, -20)
	overdue, err := receivables.CreateDocument(ctx, dto.CreateReceivableRequest{
		CustomerID: c.ID, Number: "SI-1", Amount: d("30000"), IssuedAt: &old,
	})
	require.NoError(t, err)
	assert.True(t, overdue.Overdue)

	doc, err := receivables.CreateDocument(ctx, dto.CreateReceivableRequest{CustomerID: c.ID, Number: "ND-2", Amount: d("50000")})
	require.NoError(t, err)
	assert.False(t, doc.Overdue)

	_, err = receivables.CreateDocument(ctx, dto.CreateReceivableRequest{CustomerID: c.ID, Number: "ND-3", Amount: d("20001")})
	assert.ErrorIs(t, err, domain.ErrCreditLimitExceeded)

	_, err = receivables.ApplyPayment(ctx, "u1", doc.ID, dto.ReceivablePaymentRequest{Amount: d("50001")})
	assert.ErrorIs(t, err, domain.ErrExceedsBalance)

	_, err = receivables.ApplyPayment(ctx, "u1", doc.ID, dto.ReceivablePaymentRequest{Amount: d("1"), Method: "credito"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	paid, err := receivables.ApplyPayment(ctx, "u1", doc.ID, dto.ReceivablePaymentRequest{Amount: d("50000"), Method: "transferencia"})
	require.NoError(t, err)
	assert.Equal(t, entity.DocumentStatusPaid, paid.Status)
	assert.True(t, paid.Balance.IsZero())

	payments, err := repos.Receivables.ListPayments(ctx, doc.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, "transferencia", payments[0].Method)

	st, err := receivables.Statement(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, st.Documents, 1)
	assert.Equal(t, "SI-1", st.Documents[0].Number)
	assert.True(t, d("30000").Equal(st.Outstanding))
	assert.True(t, d("30000").Equal(st.Overdue))
	assert.True(t, d("70000").Equal(st.Available))

	_, err = receivables.Statement(ctx, "nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
