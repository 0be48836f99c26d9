package tables_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/restobar-api/internal/application/dto"
	apptables "github.com/jhoicas/restobar-api/internal/application/tables"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/infrastructure/memory"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ana   = apptables.Actor{ID: "ana", Role: entity.RoleMesero}
	luis  = apptables.Actor{ID: "luis", Role: entity.RoleMesero}
	admin = apptables.Actor{ID: "root", Role: entity.RoleAdmin}
)

func setup(t *testing.T) *apptables.UseCase {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	uc := apptables.NewUseCase(store, store.Repositories().Tables, zerolog.Nop())

	_, err := uc.CreateZone(ctx, dto.CreateZoneRequest{Code: "salon", Name: "Salón"})
	require.NoError(t, err)
	_, err = uc.CreateTable(ctx, dto.CreateTableRequest{Code: "m1", ZoneCode: "salon", Seats: 4})
	require.NoError(t, err)
	return uc
}

func TestCreateTable_UnknownZone(t *testing.T) {
	uc := setup(t)
	_, err := uc.CreateTable(context.Background(), dto.CreateTableRequest{Code: "t1", ZoneCode: "terraza"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.ListTables(context.Background(), "SALON")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Free)
}

func TestTableOrderFlow(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	_, err := uc.AddLine(ctx, ana, "M1", dto.OrderLineRequest{ArticleCode: "COLA", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrTableNotClaimed)

	tbl, err := uc.Claim(ctx, ana, "m1")
	require.NoError(t, err)
	assert.Equal(t, "ana", tbl.WaiterID)

	_, err = uc.Claim(ctx, luis, "M1")
	assert.ErrorIs(t, err, domain.ErrTableTaken)

	_, err = uc.AddLine(ctx, luis, "M1", dto.OrderLineRequest{ArticleCode: "COLA", Quantity: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrTableTaken)

	_, err = uc.AddLine(ctx, ana, "M1", dto.OrderLineRequest{ArticleCode: "cola", Quantity: decimal.NewFromInt(2)})
	require.NoError(t, err)
	tbl, err = uc.AddLine(ctx, admin, "M1", dto.OrderLineRequest{ArticleCode: "CUBALIBRE", Quantity: decimal.NewFromInt(1), Notes: "sin hielo"})
	require.NoError(t, err)
	require.Len(t, tbl.Lines, 2)
	assert.Equal(t, "COLA", tbl.Lines[0].ArticleCode)

	sent, err := uc.Send(ctx, ana, "M1")
	require.NoError(t, err)
	assert.Len(t, sent.Sent, 2)

	sent, err = uc.Send(ctx, ana, "M1")
	require.NoError(t, err)
	assert.Empty(t, sent.Sent, "no hay líneas pendientes")

	tbl, err = uc.SetStatus(ctx, ana, "M1", dto.TableStatusRequest{Status: entity.TableStatusAnulado})
	require.NoError(t, err)
	assert.True(t, tbl.Free)
	assert.Equal(t, entity.TableStatusNormal, tbl.Status)

	_, err = uc.SetStatus(ctx, ana, "M1", dto.TableStatusRequest{Status: "cerrada"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Claim(ctx, ana, "M9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRelease(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)

	_, err := uc.Claim(ctx, ana, "M1")
	require.NoError(t, err)
	_, err = uc.Release(ctx, luis, "M1")
	assert.ErrorIs(t, err, domain.ErrTableTaken)

	tbl, err := uc.Release(ctx, admin, "M1")
	require.NoError(t, err)
	assert.True(t, tbl.Free)

	_, err = uc.Claim(ctx, luis, "M1")
	assert.NoError(t, err)
}

func TestReservations(t *testing.T) {
	ctx := context.Background()
	uc := setup(t)
	start := time.Now().UTC().Add(24 * time.Hour).Truncate(time.Hour)

	r1, err := uc.Reserve(ctx, ana, "m1", dto.CreateReservationRequest{
		CustomerName: "Familia Pérez", StartsAt: start, EndsAt: start.Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationActive, r1.Status)

	_, err = uc.Reserve(ctx, ana, "M1", dto.CreateReservationRequest{
		CustomerName: "Otro", StartsAt: start.Add(time.Hour), EndsAt: start.Add(3 * time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrTableReserved)

	// contiguas no se cruzan
	_, err = uc.Reserve(ctx, ana, "M1", dto.CreateReservationRequest{
		CustomerName: "Otro", StartsAt: start.Add(2 * time.Hour), EndsAt: start.Add(3 * time.Hour),
	})
	require.NoError(t, err)

	_, err = uc.Reserve(ctx, ana, "M1", dto.CreateReservationRequest{
		CustomerName: "Al revés", StartsAt: start, EndsAt: start.Add(-time.Hour),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.ListReservations(ctx, "M1")
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = uc.CancelReservation(ctx, r1.ID)
	require.NoError(t, err)
	_, err = uc.CancelReservation(ctx, r1.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.Reserve(ctx, luis, "M1", dto.CreateReservationRequest{
		CustomerName: "Otro", StartsAt: start.Add(time.Hour), EndsAt: start.Add(90 * time.Minute),
	})
	assert.NoError(t, err, "la reserva cancelada libera el horario")
}
