package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

const customerColumns = `id, name, tax_id, email, phone, payment_term_code, credit_limit, created_at, updated_at`

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	err := row.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &c.PaymentTermCode, &c.CreditLimit, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create persiste un nuevo cliente.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.TaxID, c.Email, c.Phone, c.PaymentTermCode, c.CreditLimit, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert customer", err)
	}
	return nil
}

func (r *CustomerRepo) getOne(ctx context.Context, op, where string, arg string) (*entity.Customer, error) {
	c, err := scanCustomer(r.q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return c, nil
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	return r.getOne(ctx, "get customer", `id = $1`, id)
}

// GetByTaxID obtiene un cliente por NIT/cédula.
func (r *CustomerRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Customer, error) {
	return r.getOne(ctx, "get customer by tax id", `tax_id = $1`, taxID)
}

// List lista clientes por nombre con paginación.
func (r *CustomerRepo) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	rows, err := r.q.Query(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, wrap("list customers", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CreateTerm persiste una condición de pago.
func (r *CustomerRepo) CreateTerm(ctx context.Context, t *entity.PaymentTerm) error {
	_, err := r.q.Exec(ctx, `INSERT INTO payment_terms (code, name, days) VALUES ($1, $2, $3)`, t.Code, t.Name, t.Days)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert payment term", err)
	}
	return nil
}

// GetTerm obtiene una condición de pago por código.
func (r *CustomerRepo) GetTerm(ctx context.Context, code string) (*entity.PaymentTerm, error) {
	var t entity.PaymentTerm
	err := r.q.QueryRow(ctx, `SELECT code, name, days FROM payment_terms WHERE code = $1`, code).Scan(&t.Code, &t.Name, &t.Days)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get payment term", err)
	}
	return &t, nil
}

// ListTerms lista las condiciones de pago por código.
func (r *CustomerRepo) ListTerms(ctx context.Context) ([]*entity.PaymentTerm, error) {
	rows, err := r.q.Query(ctx, `SELECT code, name, days FROM payment_terms ORDER BY code`)
	if err != nil {
		return nil, wrap("list payment terms", err)
	}
	defer rows.Close()
	var list []*entity.PaymentTerm
	for rows.Next() {
		var t entity.PaymentTerm
		if err := rows.Scan(&t.Code, &t.Name, &t.Days); err != nil {
			return nil, fmt.Errorf("scan payment term: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
