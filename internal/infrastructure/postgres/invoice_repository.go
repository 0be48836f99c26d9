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

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura con sus líneas y pagos.
func (r *InvoiceRepo) Create(ctx context.Context, inv *entity.SalesInvoice) error {
	query := `
		INSERT INTO sales_invoices (id, number, session_id, warehouse_code, table_code, customer_id, total, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		inv.ID, inv.Number, inv.SessionID, inv.WarehouseCode, inv.TableCode, inv.CustomerID,
		inv.Total, inv.CreatedBy, inv.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice number already exists: %w", domain.ErrDuplicate)
		}
		return wrap("insert invoice", err)
	}
	lineQuery := `
		INSERT INTO sales_invoice_lines (invoice_id, line_no, article_code, quantity, unit_price, unit_cost, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, l := range inv.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, inv.ID, i+1, l.ArticleCode, l.Quantity, l.UnitPrice, l.UnitCost, l.Subtotal); err != nil {
			return wrap("insert invoice line", err)
		}
	}
	paymentQuery := `
		INSERT INTO sales_invoice_payments (invoice_id, line_no, method, amount)
		VALUES ($1, $2, $3, $4)`
	for i, p := range inv.Payments {
		if _, err := r.q.Exec(ctx, paymentQuery, inv.ID, i+1, p.Method, p.Amount); err != nil {
			return wrap("insert invoice payment", err)
		}
	}
	return nil
}

// GetByID obtiene la factura con sus líneas y pagos.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.SalesInvoice, error) {
	query := `
		SELECT id, number, session_id, warehouse_code, table_code, customer_id, total, created_by, created_at
		FROM sales_invoices WHERE id = $1`
	var inv entity.SalesInvoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.Number, &inv.SessionID, &inv.WarehouseCode, &inv.TableCode, &inv.CustomerID,
		&inv.Total, &inv.CreatedBy, &inv.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get invoice", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT article_code, quantity, unit_price, unit_cost, subtotal
		FROM sales_invoice_lines WHERE invoice_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, wrap("list invoice lines", err)
	}
	for rows.Next() {
		var l entity.SalesInvoiceLine
		if err := rows.Scan(&l.ArticleCode, &l.Quantity, &l.UnitPrice, &l.UnitCost, &l.Subtotal); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		inv.Lines = append(inv.Lines, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, wrap("list invoice lines", err)
	}

	rows, err = r.q.Query(ctx, `
		SELECT method, amount FROM sales_invoice_payments WHERE invoice_id = $1 ORDER BY line_no`, id)
	if err != nil {
		return nil, wrap("list invoice payments", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.InvoicePayment
		if err := rows.Scan(&p.Method, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan invoice payment: %w", err)
		}
		inv.Payments = append(inv.Payments, p)
	}
	return &inv, rows.Err()
}

// NextNumber incrementa el consecutivo de facturas. La fila del contador queda bloqueada
// hasta el fin de la transacción, por lo que un rollback no deja huecos en la numeración.
func (r *InvoiceRepo) NextNumber(ctx context.Context) (int64, error) {
	query := `
		INSERT INTO counters (name, value) VALUES ('sales_invoice', 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, wrap("next invoice number", err)
	}
	return n, nil
}

// PaymentTotalsBySession total cobrado por medio de pago en la sesión y número de pagos.
func (r *InvoiceRepo) PaymentTotalsBySession(ctx context.Context, sessionID string) ([]repository.PaymentTotal, error) {
	query := `
		SELECT p.method, COALESCE(SUM(p.amount), 0), COUNT(*)
		FROM sales_invoice_payments p
		JOIN sales_invoices i ON i.id = p.invoice_id
		WHERE i.session_id = $1
		GROUP BY p.method
		ORDER BY p.method`
	rows, err := r.q.Query(ctx, query, sessionID)
	if err != nil {
		return nil, wrap("payment totals by session", err)
	}
	defer rows.Close()
	var list []repository.PaymentTotal
	for rows.Next() {
		var t repository.PaymentTotal
		if err := rows.Scan(&t.Method, &t.Amount, &t.Count); err != nil {
			return nil, fmt.Errorf("scan payment total: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}
