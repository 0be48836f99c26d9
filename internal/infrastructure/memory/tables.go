package memory

import (
	"context"
	"slices"
	"sort"
	"time"

	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/tables"
)

type tableRepo struct{ db db }

func (r *tableRepo) CreateZone(_ context.Context, z *entity.Zone) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.zones[z.Code]; ok {
			return domain.ErrDuplicate
		}
		st.zones[z.Code] = *z
		return nil
	})
}

func (r *tableRepo) ListZones(_ context.Context) ([]*entity.Zone, error) {
	var out []*entity.Zone
	err := r.db.read(func(st *state) error {
		for _, k := range sortedKeys(st.zones) {
			z := st.zones[k]
			out = append(out, &z)
		}
		return nil
	})
	return out, err
}

func (r *tableRepo) CreateTable(_ context.Context, t *entity.Table) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.tables[t.Code]; ok {
			return domain.ErrDuplicate
		}
		st.tables[t.Code] = *t
		return nil
	})
}

func (r *tableRepo) GetTable(_ context.Context, code string) (*entity.Table, error) {
	var out *entity.Table
	err := r.db.read(func(st *state) error {
		if t, ok := st.tables[code]; ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *tableRepo) ListTables(_ context.Context, zoneCode string) ([]*entity.Table, error) {
	var out []*entity.Table
	err := r.db.read(func(st *state) error {
		for _, k := range sortedKeys(st.tables) {
			t := st.tables[k]
			if zoneCode != "" && t.ZoneCode != zoneCode {
				continue
			}
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

func (r *tableRepo) GetState(_ context.Context, code string) (*entity.TableOrderState, error) {
	var out *entity.TableOrderState
	err := r.db.read(func(st *state) error {
		s, ok := st.tableStates[code]
		if !ok {
			out = tables.NewState(code)
			return nil
		}
		s.Lines = slices.Clone(s.Lines)
		out = &s
		return nil
	})
	return out, err
}

func (r *tableRepo) GetStateForUpdate(ctx context.Context, code string) (*entity.TableOrderState, error) {
	return r.GetState(ctx, code)
}

func (r *tableRepo) SaveState(_ context.Context, s *entity.TableOrderState) error {
	return r.db.write(func(st *state) error {
		cp := *s
		cp.Lines = slices.Clone(s.Lines)
		st.tableStates[s.TableCode] = cp
		return nil
	})
}

func (r *tableRepo) CreateReservation(_ context.Context, res *entity.Reservation) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.reservations[res.ID]; ok {
			return domain.ErrDuplicate
		}
		st.reservations[res.ID] = *res
		return nil
	})
}

func (r *tableRepo) GetReservation(_ context.Context, id string) (*entity.Reservation, error) {
	var out *entity.Reservation
	err := r.db.read(func(st *state) error {
		if res, ok := st.reservations[id]; ok {
			out = &res
		}
		return nil
	})
	return out, err
}

func (r *tableRepo) UpdateReservation(_ context.Context, res *entity.Reservation) error {
	return r.db.write(func(st *state) error {
		if _, ok := st.reservations[res.ID]; !ok {
			return domain.ErrNotFound
		}
		st.reservations[res.ID] = *res
		return nil
	})
}

func (r *tableRepo) ListActiveReservations(_ context.Context, tableCode string, since time.Time) ([]entity.Reservation, error) {
	var out []entity.Reservation
	err := r.db.read(func(st *state) error {
		for _, res := range st.reservations {
			if res.Status != entity.ReservationActive || !res.EndsAt.After(since) {
				continue
			}
			if tableCode != "" && res.TableCode != tableCode {
				continue
			}
			out = append(out, res)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt.Before(out[j].StartsAt) })
	return out, err
}
