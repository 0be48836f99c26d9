package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
)

// TableRepository puerto para zonas, mesas, estado de pedido y reservas.
type TableRepository interface {
	CreateZone(ctx context.Context, zone *entity.Zone) error
	ListZones(ctx context.Context) ([]*entity.Zone, error)
	CreateTable(ctx context.Context, table *entity.Table) error
	GetTable(ctx context.Context, code string) (*entity.Table, error)
	ListTables(ctx context.Context, zoneCode string) ([]*entity.Table, error)

	// GetStateForUpdate devuelve el estado de la mesa (vacío si no existe) bloqueando la fila.
	GetStateForUpdate(ctx context.Context, tableCode string) (*entity.TableOrderState, error)
	GetState(ctx context.Context, tableCode string) (*entity.TableOrderState, error)
	SaveState(ctx context.Context, state *entity.TableOrderState) error

	CreateReservation(ctx context.Context, r *entity.Reservation) error
	GetReservation(ctx context.Context, id string) (*entity.Reservation, error)
	UpdateReservation(ctx context.Context, r *entity.Reservation) error
	// ListActiveReservations reservas activas de la mesa que terminan después de since.
	ListActiveReservations(ctx context.Context, tableCode string, since time.Time) ([]entity.Reservation, error)
}
