package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/jhoicas/restobar-api/internal/domain/tables"
	"github.com/shopspring/decimal"
)

var _ repository.TableRepository = (*TableRepo)(nil)

const reservationColumns = `id, table_code, customer_name, phone, starts_at, ends_at, status, created_by, created_at`

// TableRepo zonas, mesas, estado de pedido y reservas sobre PostgreSQL.
type TableRepo struct {
	q Querier
}

// NewTableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTableRepository(q Querier) *TableRepo {
	return &TableRepo{q: q}
}

// CreateZone persiste una zona.
func (r *TableRepo) CreateZone(ctx context.Context, z *entity.Zone) error {
	if _, err := r.q.Exec(ctx, `INSERT INTO zones (code, name) VALUES ($1, $2)`, z.Code, z.Name); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert zone", err)
	}
	return nil
}

// ListZones lista las zonas por código.
func (r *TableRepo) ListZones(ctx context.Context) ([]*entity.Zone, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name FROM zones ORDER BY code`)
	if err != nil {
		return nil, wrap("list zones", err)
	}
	defer rows.Close()
	var list []*entity.Zone
	for rows.Next() {
		var z entity.Zone
		if err := rows.Scan(&z.Code, &z.Name); err != nil {
			return nil, fmt.Errorf("scan zone: %w", err)
		}
		list = append(list, &z)
	}
	return list, rows.Err()
}

// CreateTable persiste una mesa.
func (r *TableRepo) CreateTable(ctx context.Context, t *entity.Table) error {
	_, err := r.q.Exec(ctx, `INSERT INTO dining_tables (code, zone_code, seats) VALUES ($1, $2, $3)`, t.Code, t.ZoneCode, t.Seats)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert table", err)
	}
	return nil
}

// GetTable obtiene una mesa por código.
func (r *TableRepo) GetTable(ctx context.Context, code string) (*entity.Table, error) {
	var t entity.Table
	err := r.q.QueryRow(ctx, `SELECT code, zone_code, seats FROM dining_tables WHERE code = $1`, code).Scan(&t.Code, &t.ZoneCode, &t.Seats)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get table", err)
	}
	return &t, nil
}

// ListTables lista las mesas, opcionalmente de una zona.
func (r *TableRepo) ListTables(ctx context.Context, zoneCode string) ([]*entity.Table, error) {
	rows, err := r.q.Query(ctx, `
		SELECT code, zone_code, seats FROM dining_tables
		WHERE $1 = '' OR zone_code = $1
		ORDER BY code`, zoneCode)
	if err != nil {
		return nil, wrap("list tables", err)
	}
	defer rows.Close()
	var list []*entity.Table
	for rows.Next() {
		var t entity.Table
		if err := rows.Scan(&t.Code, &t.ZoneCode, &t.Seats); err != nil {
			return nil, fmt.Errorf("scan table: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// orderLineJSON forma de una línea de pedido dentro de la columna lines (JSONB).
type orderLineJSON struct {
	ID          string          `json:"id"`
	ArticleCode string          `json:"article_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
	Sent        bool            `json:"sent"`
}

func (r *TableRepo) getState(ctx context.Context, tableCode, suffix string) (*entity.TableOrderState, error) {
	var s entity.TableOrderState
	var raw []byte
	err := r.q.QueryRow(ctx, `
		SELECT table_code, waiter_id, status, lines, updated_at
		FROM table_states WHERE table_code = $1`+suffix, tableCode).
		Scan(&s.TableCode, &s.WaiterID, &s.Status, &raw, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tables.NewState(tableCode), nil
		}
		return nil, wrap("get table state", err)
	}
	var lines []orderLineJSON
	if err := json.Unmarshal(raw, &lines); err != nil {
		return nil, fmt.Errorf("decode table lines: %w", err)
	}
	for _, l := range lines {
		s.Lines = append(s.Lines, entity.OrderLine{
			ID: l.ID, ArticleCode: l.ArticleCode, Quantity: l.Quantity, Notes: l.Notes, Sent: l.Sent,
		})
	}
	return &s, nil
}

// GetState estado de la mesa; vacío si aún no tiene fila.
func (r *TableRepo) GetState(ctx context.Context, tableCode string) (*entity.TableOrderState, error) {
	return r.getState(ctx, tableCode, "")
}

// GetStateForUpdate asegura la fila del estado y la bloquea hasta el fin de la transacción.
func (r *TableRepo) GetStateForUpdate(ctx context.Context, tableCode string) (*entity.TableOrderState, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO table_states (table_code) VALUES ($1)
		ON CONFLICT (table_code) DO NOTHING`, tableCode)
	if err != nil {
		return nil, wrap("ensure table state", err)
	}
	return r.getState(ctx, tableCode, " FOR UPDATE")
}

// SaveState reemplaza el estado de la mesa.
func (r *TableRepo) SaveState(ctx context.Context, s *entity.TableOrderState) error {
	lines := make([]orderLineJSON, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, orderLineJSON{
			ID: l.ID, ArticleCode: l.ArticleCode, Quantity: l.Quantity, Notes: l.Notes, Sent: l.Sent,
		})
	}
	raw, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode table lines: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO table_states (table_code, waiter_id, status, lines, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (table_code)
		DO UPDATE SET waiter_id = EXCLUDED.waiter_id, status = EXCLUDED.status,
		              lines = EXCLUDED.lines, updated_at = EXCLUDED.updated_at`,
		s.TableCode, s.WaiterID, s.Status, string(raw), s.UpdatedAt)
	if err != nil {
		return wrap("save table state", err)
	}
	return nil
}

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(&res.ID, &res.TableCode, &res.CustomerName, &res.Phone, &res.StartsAt, &res.EndsAt,
		&res.Status, &res.CreatedBy, &res.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateReservation persiste una reserva.
func (r *TableRepo) CreateReservation(ctx context.Context, res *entity.Reservation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO reservations (`+reservationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		res.ID, res.TableCode, res.CustomerName, res.Phone, res.StartsAt, res.EndsAt,
		res.Status, res.CreatedBy, res.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert reservation", err)
	}
	return nil
}

// GetReservation obtiene una reserva por ID.
func (r *TableRepo) GetReservation(ctx context.Context, id string) (*entity.Reservation, error) {
	res, err := scanReservation(r.q.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get reservation", err)
	}
	return res, nil
}

// UpdateReservation guarda el estado y el horario de la reserva.
func (r *TableRepo) UpdateReservation(ctx context.Context, res *entity.Reservation) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE reservations SET status = $2, starts_at = $3, ends_at = $4
		WHERE id = $1`, res.ID, res.Status, res.StartsAt, res.EndsAt)
	if err != nil {
		return wrap("update reservation", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListActiveReservations reservas activas que terminan después de since, por hora de inicio.
func (r *TableRepo) ListActiveReservations(ctx context.Context, tableCode string, since time.Time) ([]entity.Reservation, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+reservationColumns+`
		FROM reservations
		WHERE status = 'active' AND ends_at > $2 AND ($1 = '' OR table_code = $1)
		ORDER BY starts_at`, tableCode, since)
	if err != nil {
		return nil, wrap("list reservations", err)
	}
	defer rows.Close()
	var list []entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, *res)
	}
	return list, rows.Err()
}
