package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RunRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repositories()

	require.NoError(t, repos.Warehouses.Create(ctx, &entity.Warehouse{Code: "BARRA", Name: "Barra"}))

	boom := errors.New("boom")
	err := store.Run(ctx, func(uow repository.UnitOfWork) error {
		require.NoError(t, uow.Warehouses.Create(ctx, &entity.Warehouse{Code: "COCINA", Name: "Cocina"}))
		require.NoError(t, uow.Kardex.Append(ctx, &entity.KardexRow{
			ID: "r1", ArticleCode: "RON", WarehouseCode: "BARRA", Direction: entity.DirectionIn,
			QuantityRetail: decimal.NewFromInt(1), BalanceRetail: decimal.NewFromInt(1),
		}))
		// dentro de la transacción se ven las escrituras propias
		w, err := uow.Warehouses.GetByCode(ctx, "COCINA")
		require.NoError(t, err)
		require.NotNil(t, w)
		return boom
	})
	require.ErrorIs(t, err, boom)

	w, err := repos.Warehouses.GetByCode(ctx, "COCINA")
	require.NoError(t, err)
	assert.Nil(t, w)

	last, err := repos.Kardex.LastForUpdate(ctx, "RON", "BARRA")
	require.NoError(t, err)
	assert.Nil(t, last)
}

func TestStore_RunCommits(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.Run(ctx, func(uow repository.UnitOfWork) error {
		return uow.Articles.Create(ctx, &entity.Article{Code: "RON", Name: "Ron", Type: entity.ArticleTypeSimple})
	})
	require.NoError(t, err)

	a, err := store.Repositories().Articles.GetByCode(ctx, "RON")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "Ron", a.Name)
}

func TestStore_RunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewStore().Run(ctx, func(repository.UnitOfWork) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestCashRegisterRepo_OneOpenSessionPerAdminAndRegister(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Repositories().CashRegisters

	require.NoError(t, repo.CreateSession(ctx, &entity.CashRegisterSession{
		ID: "s1", CashRegisterCode: "CAJA1", AdminID: "u1", Status: entity.SessionStatusOpen,
	}))

	err := repo.CreateSession(ctx, &entity.CashRegisterSession{
		ID: "s2", CashRegisterCode: "CAJA2", AdminID: "u1", Status: entity.SessionStatusOpen,
	})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)

	err = repo.CreateSession(ctx, &entity.CashRegisterSession{
		ID: "s3", CashRegisterCode: "CAJA1", AdminID: "u2", Status: entity.SessionStatusOpen,
	})
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyOpen)

	open, err := repo.FindOpenByRegister(ctx, "CAJA1")
	require.NoError(t, err)
	require.NotNil(t, open)
	assert.Equal(t, "s1", open.ID)
}

func TestInvoiceRepo_PaymentTotalsBySession(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Repositories().Invoices

	inv := func(id, session string, payments ...entity.InvoicePayment) *entity.SalesInvoice {
		return &entity.SalesInvoice{ID: id, SessionID: session, Payments: payments}
	}
	pay := func(method string, amount int64) entity.InvoicePayment {
		return entity.InvoicePayment{Method: method, Amount: decimal.NewFromInt(amount)}
	}
	require.NoError(t, repo.Create(ctx, inv("f1", "s1", pay("efectivo", 100), pay("tarjeta", 50))))
	require.NoError(t, repo.Create(ctx, inv("f2", "s1", pay("efectivo", 30))))
	require.NoError(t, repo.Create(ctx, inv("f3", "s2", pay("efectivo", 999))))

	totals, err := repo.PaymentTotalsBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, "efectivo", totals[0].Method)
	assert.True(t, decimal.NewFromInt(130).Equal(totals[0].Amount))
	assert.Equal(t, 2, totals[0].Count)
	assert.Equal(t, "tarjeta", totals[1].Method)
	assert.Equal(t, 1, totals[1].Count)
}

func TestTableRepo_StateDefaultsToFree(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Repositories().Tables

	st, err := repo.GetState(ctx, "M1")
	require.NoError(t, err)
	assert.Equal(t, "M1", st.TableCode)
	assert.Equal(t, entity.TableStatusNormal, st.Status)
	assert.Empty(t, st.WaiterID)
}
