// Package tables casos de uso de mesas: zonas, asignación de mesero, pedidos y reservas.
package tables

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/restobar-api/internal/application/dto"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/internal/domain/tables"
	"github.com/jhoicas/restobar-api/pkg/codes"
	"github.com/rs/zerolog"
)

// TxRunner ejecuta una función dentro de una transacción de BD.
type TxRunner interface {
	Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error
}

// Actor usuario que opera la mesa. Un admin puede operar mesas de otro mesero.
type Actor struct {
	ID   string
	Role string
}

func (a Actor) canOperate(s *entity.TableOrderState) bool {
	return a.Role == entity.RoleAdmin || s.WaiterID == a.ID
}

// UseCase casos de uso de mesas.
type UseCase struct {
	txRunner TxRunner
	repo     repository.TableRepository
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, repo repository.TableRepository, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repo: repo, log: log}
}

// CreateZone crea una zona del local.
func (uc *UseCase) CreateZone(ctx context.Context, in dto.CreateZoneRequest) (*dto.ZoneResponse, error) {
	code := codes.Normalize(in.Code)
	if code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	zone := &entity.Zone{Code: code, Name: in.Name}
	if err := uc.repo.CreateZone(ctx, zone); err != nil {
		return nil, err
	}
	return &dto.ZoneResponse{Code: zone.Code, Name: zone.Name}, nil
}

// ListZones lista las zonas.
func (uc *UseCase) ListZones(ctx context.Context) ([]dto.ZoneResponse, error) {
	list, err := uc.repo.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ZoneResponse, 0, len(list))
	for _, z := range list {
		out = append(out, dto.ZoneResponse{Code: z.Code, Name: z.Name})
	}
	return out, nil
}

// CreateTable crea una mesa en una zona existente.
func (uc *UseCase) CreateTable(ctx context.Context, in dto.CreateTableRequest) (*dto.TableResponse, error) {
	code := codes.Normalize(in.Code)
	zoneCode := codes.Normalize(in.ZoneCode)
	if code == "" || zoneCode == "" || in.Seats < 0 {
		return nil, domain.ErrInvalidInput
	}
	zones, err := uc.repo.ListZones(ctx)
	if err != nil {
		return nil, err
	}
	found := false
	for _, z := range zones {
		if z.Code == zoneCode {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("zona %s: %w", zoneCode, domain.ErrNotFound)
	}
	table := &entity.Table{Code: code, ZoneCode: zoneCode, Seats: in.Seats}
	if err := uc.repo.CreateTable(ctx, table); err != nil {
		return nil, err
	}
	return toTableResponse(table, tables.NewState(code)), nil
}

// ListTables lista las mesas (opcionalmente de una zona) con su estado actual.
func (uc *UseCase) ListTables(ctx context.Context, zoneCode string) ([]dto.TableResponse, error) {
	list, err := uc.repo.ListTables(ctx, codes.Normalize(zoneCode))
	if err != nil {
		return nil, err
	}
	out := make([]dto.TableResponse, 0, len(list))
	for _, t := range list {
		state, err := uc.repo.GetState(ctx, t.Code)
		if err != nil {
			return nil, err
		}
		out = append(out, *toTableResponse(t, state))
	}
	return out, nil
}

// GetTable devuelve la mesa con su estado.
func (uc *UseCase) GetTable(ctx context.Context, code string) (*dto.TableResponse, error) {
	code = codes.Normalize(code)
	table, err := uc.repo.GetTable(ctx, code)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, domain.ErrNotFound
	}
	state, err := uc.repo.GetState(ctx, code)
	if err != nil {
		return nil, err
	}
	return toTableResponse(table, state), nil
}

// mutate bloquea el estado de la mesa, aplica fn y lo guarda en la misma transacción.
func (uc *UseCase) mutate(ctx context.Context, code string, fn func(s *entity.TableOrderState, now time.Time) error) (*dto.TableResponse, error) {
	code = codes.Normalize(code)
	var (
		table *entity.Table
		state *entity.TableOrderState
	)
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		table, err = uow.Tables.GetTable(ctx, code)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrNotFound
		}
		state, err = uow.Tables.GetStateForUpdate(ctx, code)
		if err != nil {
			return err
		}
		if err := fn(state, time.Now().UTC()); err != nil {
			return err
		}
		return uow.Tables.SaveState(ctx, state)
	})
	if err != nil {
		return nil, err
	}
	return toTableResponse(table, state), nil
}

// Claim asigna la mesa al mesero; falla con ErrTableTaken si la atiende otro.
func (uc *UseCase) Claim(ctx context.Context, actor Actor, code string) (*dto.TableResponse, error) {
	return uc.mutate(ctx, code, func(s *entity.TableOrderState, now time.Time) error {
		return tables.Claim(s, actor.ID, now)
	})
}

// AddLine agrega una línea pendiente al pedido de la mesa.
func (uc *UseCase) AddLine(ctx context.Context, actor Actor, code string, in dto.OrderLineRequest) (*dto.TableResponse, error) {
	articleCode := codes.Normalize(in.ArticleCode)
	return uc.mutate(ctx, code, func(s *entity.TableOrderState, now time.Time) error {
		if s.WaiterID != "" && !actor.canOperate(s) {
			return domain.ErrTableTaken
		}
		return tables.AddLine(s, entity.OrderLine{
			ID:          uuid.New().String(),
			ArticleCode: articleCode,
			Quantity:    in.Quantity,
			Notes:       in.Notes,
		}, now)
	})
}

// Send marca como enviadas a cocina/barra las líneas pendientes y las devuelve.
func (uc *UseCase) Send(ctx context.Context, actor Actor, code string) (*dto.SendResponse, error) {
	var sent []entity.OrderLine
	resp, err := uc.mutate(ctx, code, func(s *entity.TableOrderState, now time.Time) error {
		if s.WaiterID == "" {
			return domain.ErrTableNotClaimed
		}
		if !actor.canOperate(s) {
			return domain.ErrTableTaken
		}
		sent = tables.SendPending(s, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(sent) > 0 {
		uc.log.Info().Str("table", resp.Code).Int("lines", len(sent)).Msg("comanda enviada")
	}
	return &dto.SendResponse{TableCode: resp.Code, Sent: toLineResponses(sent)}, nil
}

// SetStatus cambia el estado de la mesa; facturado/anulado la reinician.
func (uc *UseCase) SetStatus(ctx context.Context, actor Actor, code string, in dto.TableStatusRequest) (*dto.TableResponse, error) {
	return uc.mutate(ctx, code, func(s *entity.TableOrderState, now time.Time) error {
		if s.WaiterID != "" && !actor.canOperate(s) {
			return domain.ErrTableTaken
		}
		return tables.SetStatus(s, in.Status, now)
	})
}

// Release libera la mesa sin facturar.
func (uc *UseCase) Release(ctx context.Context, actor Actor, code string) (*dto.TableResponse, error) {
	return uc.mutate(ctx, code, func(s *entity.TableOrderState, now time.Time) error {
		if s.WaiterID != "" && !actor.canOperate(s) {
			return domain.ErrTableTaken
		}
		tables.Release(s, now)
		return nil
	})
}

// Reserve crea una reserva; falla con ErrTableReserved si se cruza con otra activa.
func (uc *UseCase) Reserve(ctx context.Context, actor Actor, code string, in dto.CreateReservationRequest) (*dto.ReservationResponse, error) {
	code = codes.Normalize(code)
	if in.CustomerName == "" {
		return nil, domain.ErrInvalidInput
	}
	r := entity.Reservation{
		ID:           uuid.New().String(),
		TableCode:    code,
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		StartsAt:     in.StartsAt.UTC(),
		EndsAt:       in.EndsAt.UTC(),
		Status:       entity.ReservationActive,
		CreatedBy:    actor.ID,
		CreatedAt:    time.Now().UTC(),
	}
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		table, err := uow.Tables.GetTable(ctx, code)
		if err != nil {
			return err
		}
		if table == nil {
			return domain.ErrNotFound
		}
		// bloquea la mesa para serializar reservas concurrentes
		if _, err := uow.Tables.GetStateForUpdate(ctx, code); err != nil {
			return err
		}
		existing, err := uow.Tables.ListActiveReservations(ctx, code, r.StartsAt)
		if err != nil {
			return err
		}
		if err := tables.CheckReservation(existing, r); err != nil {
			return err
		}
		return uow.Tables.CreateReservation(ctx, &r)
	})
	if err != nil {
		return nil, err
	}
	return toReservationResponse(r), nil
}

// CancelReservation cancela una reserva activa.
func (uc *UseCase) CancelReservation(ctx context.Context, id string) (*dto.ReservationResponse, error) {
	var r *entity.Reservation
	err := uc.txRunner.Run(ctx, func(uow repository.UnitOfWork) error {
		var err error
		r, err = uow.Tables.GetReservation(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return domain.ErrNotFound
		}
		if r.Status != entity.ReservationActive {
			return domain.ErrConflict
		}
		r.Status = entity.ReservationCancelled
		return uow.Tables.UpdateReservation(ctx, r)
	})
	if err != nil {
		return nil, err
	}
	return toReservationResponse(*r), nil
}

// ListReservations reservas activas de la mesa que no han terminado.
func (uc *UseCase) ListReservations(ctx context.Context, code string) ([]dto.ReservationResponse, error) {
	list, err := uc.repo.ListActiveReservations(ctx, codes.Normalize(code), time.Now().UTC())
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReservationResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toReservationResponse(r))
	}
	return out, nil
}

func toTableResponse(t *entity.Table, s *entity.TableOrderState) *dto.TableResponse {
	if s == nil {
		s = tables.NewState(t.Code)
	}
	return &dto.TableResponse{
		Code:      t.Code,
		ZoneCode:  t.ZoneCode,
		Seats:     t.Seats,
		WaiterID:  s.WaiterID,
		Status:    s.Status,
		Free:      tables.IsFree(s),
		Lines:     toLineResponses(s.Lines),
		UpdatedAt: s.UpdatedAt,
	}
}

func toLineResponses(lines []entity.OrderLine) []dto.OrderLineResponse {
	out := make([]dto.OrderLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.OrderLineResponse{
			ID:          l.ID,
			ArticleCode: l.ArticleCode,
			Quantity:    l.Quantity,
			Notes:       l.Notes,
			Sent:        l.Sent,
		})
	}
	return out
}

func toReservationResponse(r entity.Reservation) *dto.ReservationResponse {
	return &dto.ReservationResponse{
		ID:           r.ID,
		TableCode:    r.TableCode,
		CustomerName: r.CustomerName,
		Phone:        r.Phone,
		StartsAt:     r.StartsAt,
		EndsAt:       r.EndsAt,
		Status:       r.Status,
	}
}
