// Package tables implementa las reglas de la orden de una mesa: asignación de mesero,
// líneas pendientes/enviadas, cambio de estado y reservas.
package tables

import (
	"time"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// NewState estado vacío de una mesa libre.
func NewState(tableCode string) *entity.TableOrderState {
	return &entity.TableOrderState{TableCode: tableCode, Status: entity.TableStatusNormal}
}

// IsFree indica si la mesa no tiene mesero ni líneas.
func IsFree(s *entity.TableOrderState) bool {
	return s.WaiterID == "" && len(s.Lines) == 0
}

// Claim asigna la mesa al mesero. Reclamar una mesa propia no hace nada.
func Claim(s *entity.TableOrderState, waiterID string, now time.Time) error {
	if waiterID == "" {
		return domain.ErrInvalidInput
	}
	if s.WaiterID != "" && s.WaiterID != waiterID {
		return domain.ErrTableTaken
	}
	if s.Status == "" {
		s.Status = entity.TableStatusNormal
	}
	s.WaiterID = waiterID
	s.UpdatedAt = now
	return nil
}

// AddLine agrega una línea pendiente; la mesa debe estar asignada.
func AddLine(s *entity.TableOrderState, line entity.OrderLine, now time.Time) error {
	if s.WaiterID == "" {
		return domain.ErrTableNotClaimed
	}
	if line.ArticleCode == "" || !line.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	line.Sent = false
	s.Lines = append(s.Lines, line)
	s.UpdatedAt = now
	return nil
}

// SendPending marca como enviadas las líneas pendientes y las devuelve.
func SendPending(s *entity.TableOrderState, now time.Time) []entity.OrderLine {
	var sent []entity.OrderLine
	for i := range s.Lines {
		if !s.Lines[i].Sent {
			s.Lines[i].Sent = true
			sent = append(sent, s.Lines[i])
		}
	}
	if len(sent) > 0 {
		s.UpdatedAt = now
	}
	return sent
}

// SetStatus cambia el estado de la mesa. Facturado y anulado cierran la orden y la reinician,
// así el estado guardado siempre es "normal".
func SetStatus(s *entity.TableOrderState, status string, now time.Time) error {
	switch status {
	case entity.TableStatusFacturado, entity.TableStatusAnulado:
		Release(s, now)
		return nil
	case entity.TableStatusNormal:
		s.Status = entity.TableStatusNormal
		s.UpdatedAt = now
		return nil
	}
	return domain.ErrInvalidInput
}

// Release libera la mesa: sin mesero, sin líneas y en estado normal.
func Release(s *entity.TableOrderState, now time.Time) {
	s.WaiterID = ""
	s.Lines = nil
	s.Status = entity.TableStatusNormal
	s.UpdatedAt = now
}

// CheckReservation valida que candidate no se cruce con una reserva activa existente.
func CheckReservation(existing []entity.Reservation, candidate entity.Reservation) error {
	if candidate.TableCode == "" || !candidate.EndsAt.After(candidate.StartsAt) {
		return domain.ErrInvalidInput
	}
	for _, r := range existing {
		if r.Status != entity.ReservationActive || r.TableCode != candidate.TableCode {
			continue
		}
		if candidate.StartsAt.Before(r.EndsAt) && r.StartsAt.Before(candidate.EndsAt) {
			return domain.ErrTableReserved
		}
	}
	return nil
}
