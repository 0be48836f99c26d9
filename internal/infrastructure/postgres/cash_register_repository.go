package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

var _ repository.CashRegisterRepository = (*CashRegisterRepo)(nil)

const sessionColumns = `id, cash_register_code, admin_id, status, opening_amount, opening_notes, opened_at,
	closing_amount, closing_notes, closed_at, closed_by, summary`

// CashRegisterRepo cajas, sesiones y filas de conciliación sobre PostgreSQL.
type CashRegisterRepo struct {
	q Querier
}

// NewCashRegisterRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRegisterRepository(q Querier) *CashRegisterRepo {
	return &CashRegisterRepo{q: q}
}

// CreateRegister persiste una caja.
func (r *CashRegisterRepo) CreateRegister(ctx context.Context, c *entity.CashRegister) error {
	query := `INSERT INTO cash_registers (id, code, name, active, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, c.ID, c.Code, c.Name, c.Active, c.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert cash register", err)
	}
	return nil
}

// GetRegister obtiene una caja por código.
func (r *CashRegisterRepo) GetRegister(ctx context.Context, code string) (*entity.CashRegister, error) {
	var c entity.CashRegister
	err := r.q.QueryRow(ctx, `SELECT id, code, name, active, created_at FROM cash_registers WHERE code = $1`, code).
		Scan(&c.ID, &c.Code, &c.Name, &c.Active, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get cash register", err)
	}
	return &c, nil
}

// ListRegisters lista las cajas por código.
func (r *CashRegisterRepo) ListRegisters(ctx context.Context) ([]*entity.CashRegister, error) {
	rows, err := r.q.Query(ctx, `SELECT id, code, name, active, created_at FROM cash_registers ORDER BY code`)
	if err != nil {
		return nil, wrap("list cash registers", err)
	}
	defer rows.Close()
	var list []*entity.CashRegister
	for rows.Next() {
		var c entity.CashRegister
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.Active, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash register: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func scanSession(row pgx.Row) (*entity.CashRegisterSession, error) {
	var s entity.CashRegisterSession
	var summary []byte
	err := row.Scan(&s.ID, &s.CashRegisterCode, &s.AdminID, &s.Status, &s.OpeningAmount, &s.OpeningNotes, &s.OpenedAt,
		&s.ClosingAmount, &s.ClosingNotes, &s.ClosedAt, &s.ClosedBy, &summary)
	if err != nil {
		return nil, err
	}
	s.Summary = summary
	return &s, nil
}

// CreateSession abre una sesión. Los índices parciales garantizan una sola sesión OPEN
// por administrador y por caja.
func (r *CashRegisterRepo) CreateSession(ctx context.Context, s *entity.CashRegisterSession) error {
	query := `
		INSERT INTO cash_register_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CashRegisterCode, s.AdminID, s.Status, s.OpeningAmount, s.OpeningNotes, s.OpenedAt,
		s.ClosingAmount, s.ClosingNotes, s.ClosedAt, s.ClosedBy, nullJSON(s.Summary),
	)
	if err != nil {
		if c := violatedConstraint(err); strings.HasPrefix(c, "uq_session_open") {
			return domain.ErrSessionAlreadyOpen
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert cash register session", err)
	}
	return nil
}

func (r *CashRegisterRepo) getSession(ctx context.Context, op, where string, args ...any) (*entity.CashRegisterSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM cash_register_sessions `+where, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return s, nil
}

// GetSession obtiene una sesión por ID.
func (r *CashRegisterRepo) GetSession(ctx context.Context, id string) (*entity.CashRegisterSession, error) {
	return r.getSession(ctx, "get cash session", `WHERE id = $1`, id)
}

// GetSessionForUpdate obtiene la sesión bloqueando la fila hasta el fin de la transacción.
func (r *CashRegisterRepo) GetSessionForUpdate(ctx context.Context, id string) (*entity.CashRegisterSession, error) {
	return r.getSession(ctx, "lock cash session", `WHERE id = $1 FOR UPDATE`, id)
}

// FindOpenByAdmin sesión abierta del administrador.
func (r *CashRegisterRepo) FindOpenByAdmin(ctx context.Context, adminID string) (*entity.CashRegisterSession, error) {
	return r.getSession(ctx, "find open session by admin", `WHERE admin_id = $1 AND status = 'OPEN'`, adminID)
}

// FindOpenByRegister sesión abierta de la caja.
func (r *CashRegisterRepo) FindOpenByRegister(ctx context.Context, registerCode string) (*entity.CashRegisterSession, error) {
	return r.getSession(ctx, "find open session by register", `WHERE cash_register_code = $1 AND status = 'OPEN'`, registerCode)
}

// UpdateSession guarda el cierre de la sesión.
func (r *CashRegisterRepo) UpdateSession(ctx context.Context, s *entity.CashRegisterSession) error {
	query := `
		UPDATE cash_register_sessions
		SET status = $2, closing_amount = $3, closing_notes = $4, closed_at = $5, closed_by = $6, summary = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, s.ID, s.Status, s.ClosingAmount, s.ClosingNotes, s.ClosedAt, s.ClosedBy, nullJSON(s.Summary))
	if err != nil {
		return wrap("update cash session", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpsertSessionPayment inserta o reemplaza la fila (session_id, method).
func (r *CashRegisterRepo) UpsertSessionPayment(ctx context.Context, p entity.SessionPayment) error {
	query := `
		INSERT INTO cash_register_session_payments (session_id, method, expected, reported, difference, tx_count)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (session_id, method)
		DO UPDATE SET expected = EXCLUDED.expected, reported = EXCLUDED.reported,
		              difference = EXCLUDED.difference, tx_count = EXCLUDED.tx_count`
	if _, err := r.q.Exec(ctx, query, p.SessionID, p.Method, p.Expected, p.Reported, p.Difference, p.Count); err != nil {
		return wrap("upsert session payment", err)
	}
	return nil
}

// ListSessionPayments filas de conciliación ordenadas por medio.
func (r *CashRegisterRepo) ListSessionPayments(ctx context.Context, sessionID string) ([]entity.SessionPayment, error) {
	query := `
		SELECT session_id, method, expected, reported, difference, tx_count
		FROM cash_register_session_payments WHERE session_id = $1 ORDER BY method`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, wrap("list session payments", err)
	}
	defer rows.Close()
	var list []entity.SessionPayment
	for rows.Next() {
		var p entity.SessionPayment
		if err := rows.Scan(&p.SessionID, &p.Method, &p.Expected, &p.Reported, &p.Difference, &p.Count); err != nil {
			return nil, fmt.Errorf("scan session payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// nullJSON NULL para snapshots vacíos.
func nullJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}
