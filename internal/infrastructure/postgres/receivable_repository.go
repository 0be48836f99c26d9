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

var _ repository.ReceivableRepository = (*ReceivableRepo)(nil)

const documentColumns = `id, customer_id, number, invoice_id, issued_at, due_at, amount, balance, status, created_at, updated_at`

// ReceivableRepo documentos por cobrar y abonos sobre PostgreSQL.
type ReceivableRepo struct {
	q Querier
}

// NewReceivableRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceivableRepository(q Querier) *ReceivableRepo {
	return &ReceivableRepo{q: q}
}

func scanDocument(row pgx.Row) (*entity.ReceivableDocument, error) {
	var d entity.ReceivableDocument
	err := row.Scan(&d.ID, &d.CustomerID, &d.Number, &d.InvoiceID, &d.IssuedAt, &d.DueAt,
		&d.Amount, &d.Balance, &d.Status, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDocument persiste un documento; (cliente, número) es único.
func (r *ReceivableRepo) CreateDocument(ctx context.Context, d *entity.ReceivableDocument) error {
	query := `
		INSERT INTO receivable_documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		d.ID, d.CustomerID, d.Number, d.InvoiceID, d.IssuedAt, d.DueAt,
		d.Amount, d.Balance, d.Status, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert receivable document", err)
	}
	return nil
}

func (r *ReceivableRepo) getDocument(ctx context.Context, op, suffix, id string) (*entity.ReceivableDocument, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, `SELECT `+documentColumns+` FROM receivable_documents WHERE id = $1`+suffix, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap(op, err)
	}
	return d, nil
}

// GetDocument obtiene un documento por ID.
func (r *ReceivableRepo) GetDocument(ctx context.Context, id string) (*entity.ReceivableDocument, error) {
	return r.getDocument(ctx, "get receivable document", "", id)
}

// GetDocumentForUpdate obtiene el documento bloqueando la fila (abonos concurrentes).
func (r *ReceivableRepo) GetDocumentForUpdate(ctx context.Context, id string) (*entity.ReceivableDocument, error) {
	return r.getDocument(ctx, "lock receivable document", " FOR UPDATE", id)
}

// UpdateDocument guarda saldo y estado.
func (r *ReceivableRepo) UpdateDocument(ctx context.Context, d *entity.ReceivableDocument) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE receivable_documents SET balance = $2, status = $3, due_at = $4, updated_at = $5
		WHERE id = $1`, d.ID, d.Balance, d.Status, d.DueAt, d.UpdatedAt)
	if err != nil {
		return wrap("update receivable document", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByCustomer documentos del cliente por fecha de emisión.
func (r *ReceivableRepo) ListByCustomer(ctx context.Context, customerID string, onlyOpen bool) ([]*entity.ReceivableDocument, error) {
	query := `
		SELECT ` + documentColumns + `
		FROM receivable_documents
		WHERE customer_id = $1 AND (NOT $2 OR status = 'open')
		ORDER BY issued_at, number`
	rows, err := r.q.Query(ctx, query, customerID, onlyOpen)
	if err != nil {
		return nil, wrap("list receivable documents", err)
	}
	defer rows.Close()
	var list []*entity.ReceivableDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan receivable document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// CreatePayment persiste un abono.
func (r *ReceivableRepo) CreatePayment(ctx context.Context, p *entity.DocumentPayment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO receivable_payments (id, document_id, amount, method, paid_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)`, p.ID, p.DocumentID, p.Amount, p.Method, p.PaidAt, p.CreatedBy)
	if err != nil {
		return wrap("insert receivable payment", err)
	}
	return nil
}

// ListPayments abonos del documento por fecha.
func (r *ReceivableRepo) ListPayments(ctx context.Context, documentID string) ([]entity.DocumentPayment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, amount, method, paid_at, created_by
		FROM receivable_payments WHERE document_id = $1 ORDER BY paid_at, id`, documentID)
	if err != nil {
		return nil, wrap("list receivable payments", err)
	}
	defer rows.Close()
	var list []entity.DocumentPayment
	for rows.Next() {
		var p entity.DocumentPayment
		if err := rows.Scan(&p.ID, &p.DocumentID, &p.Amount, &p.Method, &p.PaidAt, &p.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan receivable payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
