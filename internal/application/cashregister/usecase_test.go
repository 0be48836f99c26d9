package cashregister_test

import (
	"context"
	"testing"

	appcash "github.com/jhoicas/restobar-api/internal/application/cashregister"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/cashregister"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fakeRenderer struct{ got *cashregister.ClosureSummary }

func (f *fakeRenderer) RenderClosure(_ context.Context, s *cashregister.ClosureSummary) ([]byte, error) {
	f.got = s
	return []byte("%PDF-fake"), nil
}

func setup(t *testing.T) (*appcash.UseCase, *memory.Store, *fakeRenderer) {
	t.Helper()
	store := memory.NewStore()
	renderer := &fakeRenderer{}
	uc := appcash.NewUseCase(store, store.Repositories().CashRegisters, renderer, zerolog.Nop())
	for _, code := range []string{"caja1", "caja2"} {
		_, err := uc.CreateRegister(context.Background(), dto.CreateCashRegisterRequest{Code: code, Name: code})
		require.NoError(t, err)
	}
	return uc, store, renderer
}

func addInvoice(t *testing.T, store *memory.Store, id, sessionID string, payments ...entity.InvoicePayment) {
	t.Helper()
	require.NoError(t, store.Repositories().Invoices.Create(context.Background(), &entity.SalesInvoice{
		ID: id, Number: id, SessionID: sessionID, Payments: payments,
	}))
}

func TestCreateRegister_Duplicate(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.CreateRegister(context.Background(), dto.CreateCashRegisterRequest{Code: "CAJA1", Name: "otra"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	list, err := uc.ListRegisters(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := setup(t)

	s, err := uc.Open(ctx, "admin1", dto.OpenSessionRequest{CashRegisterCode: "caja1", OpeningAmount: d("100000")})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusOpen, s.Status)
	assert.Equal(t, "CAJA1", s.CashRegisterCode)

	_, err = uc.Open(ctx, "admin1", dto.OpenSessionRequest{CashRegisterCode: "caja2"})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen, "mismo usuario")

	_, err = uc.Open(ctx, "admin2", dto.OpenSessionRequest{CashRegisterCode: "caja1"})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen, "misma caja")

	_, err = uc.Open(ctx, "admin2", dto.OpenSessionRequest{CashRegisterCode: "caja9"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Open(ctx, "admin2", dto.OpenSessionRequest{CashRegisterCode: "caja2", OpeningAmount: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	current, err := uc.CurrentSession(ctx, "admin1")
	require.NoError(t, err)
	assert.Equal(t, s.ID, current.ID)
}

func TestClose_Reconciles(t *testing.T) {
	ctx := context.Background()
	uc, store, renderer := setup(t)

	s, err := uc.Open(ctx, "admin1", dto.OpenSessionRequest{CashRegisterCode: "caja1", OpeningAmount: d("50000")})
	require.NoError(t, err)

	pay := func(method, amount string) entity.InvoicePayment {
		return entity.InvoicePayment{Method: method, Amount: d(amount)}
	}
	addInvoice(t, store, "f1", s.ID, pay("efectivo", "30000"))
	addInvoice(t, store, "f2", s.ID, pay("efectivo", "20000"), pay("tarjeta", "15000"))
	addInvoice(t, store, "f3", "otra-sesion", pay("efectivo", "99999"))

	out, err := uc.Close(ctx, "admin1", dto.CloseSessionRequest{
		ClosingAmount: d("98000"),
		Payments: []dto.ReportedPayment{
			{Method: "Efectivo", Amount: d("48000")},
			{Method: "tarjeta", Amount: d("15000")},
			{Method: "transferencia", Amount: d("5000")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SessionStatusClosed, out.Session.Status)
	require.Len(t, out.Methods, 3)

	cash := out.Methods[0]
	assert.Equal(t, "efectivo", cash.Method)
	assert.True(t, d("50000").Equal(cash.Expected))
	assert.True(t, d("48000").Equal(cash.Reported))
	assert.True(t, d("2000").Equal(cash.Difference))
	assert.Equal(t, 2, cash.Count)

	transfer := out.Methods[2]
	assert.Equal(t, "transferencia", transfer.Method)
	assert.True(t, transfer.Expected.IsZero())
	assert.True(t, d("-5000").Equal(transfer.Difference))

	assert.True(t, out.TotalExpected.Sub(out.TotalReported).Equal(out.TotalDifference))
	assert.True(t, d("100000").Equal(out.ExpectedCash))
	assert.True(t, d("-2000").Equal(out.CashDifference))

	// filas persistidas y snapshot
	got, err := uc.GetSession(ctx, s.ID)
	require.NoError(t, err)
	assert.Len(t, got.Payments, 3)

	summary, err := uc.ClosureSummary(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TransactionCount)

	pdf, err := uc.ClosurePDF(ctx, s.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	require.NotNil(t, renderer.got)
	assert.Equal(t, s.ID, renderer.got.SessionID)

	// una sola vez
	_, err = uc.Close(ctx, "admin1", dto.CloseSessionRequest{SessionID: s.ID})
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)
	_, err = uc.Close(ctx, "admin1", dto.CloseSessionRequest{})
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)

	// la caja queda libre
	_, err = uc.Open(ctx, "admin2", dto.OpenSessionRequest{CashRegisterCode: "caja1"})
	assert.NoError(t, err)
}

func TestClose_Errors(t *testing.T) {
	ctx := context.Background()
	uc, _, _ := setup(t)

	_, err := uc.Close(ctx, "admin1", dto.CloseSessionRequest{})
	assert.ErrorIs(t, err, domain.ErrSessionNotOpen)

	s, err := uc.Open(ctx, "admin1", dto.OpenSessionRequest{CashRegisterCode: "caja1"})
	require.NoError(t, err)

	_, err = uc.Close(ctx, "admin2", dto.CloseSessionRequest{SessionID: s.ID})
	assert.ErrorIs(t, err, domain.ErrSessionOwner)

	_, err = uc.Close(ctx, "admin1", dto.CloseSessionRequest{Payments: []dto.ReportedPayment{{Method: " ", Amount: d("1")}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.ClosureSummary(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Close(ctx, "admin1", dto.CloseSessionRequest{SessionID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClosurePDF_SinRenderer(t *testing.T) {
	store := memory.NewStore()
	uc := appcash.NewUseCase(store, store.Repositories().CashRegisters, nil, zerolog.Nop())

	_, err := uc.ClosurePDF(context.Background(), "s1")
	assert.ErrorIs(t, err, domain.ErrReportUnavailable)
}
