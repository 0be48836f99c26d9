package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/restobar-api/internal/domain"
	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var (
	_ repository.KardexRepository               = (*KardexRepo)(nil)
	_ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)
)

const kardexColumns = `id, transaction_type, transaction_code, article_code, warehouse_code, direction,
	quantity_retail, quantity_storage, balance_retail, balance_storage, unit_cost,
	occurred_at, created_at, reference, counterparty, source_kit_code, created_by`

// KardexRepo libro de movimientos sobre PostgreSQL. Las filas solo se insertan.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

func scanKardex(row pgx.Row) (entity.KardexRow, error) {
	var k entity.KardexRow
	err := row.Scan(&k.ID, &k.TransactionType, &k.TransactionCode, &k.ArticleCode, &k.WarehouseCode, &k.Direction,
		&k.QuantityRetail, &k.QuantityStorage, &k.BalanceRetail, &k.BalanceStorage, &k.UnitCost,
		&k.OccurredAt, &k.CreatedAt, &k.Reference, &k.Counterparty, &k.SourceKitCode, &k.CreatedBy)
	return k, err
}

// Append inserta una fila del kardex.
func (r *KardexRepo) Append(ctx context.Context, k *entity.KardexRow) error {
	query := `
		INSERT INTO kardex (` + kardexColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(ctx, query,
		k.ID, k.TransactionType, k.TransactionCode, k.ArticleCode, k.WarehouseCode, k.Direction,
		k.QuantityRetail, k.QuantityStorage, k.BalanceRetail, k.BalanceStorage, k.UnitCost,
		k.OccurredAt, k.CreatedAt, k.Reference, k.Counterparty, k.SourceKitCode, k.CreatedBy,
	)
	if err != nil {
		return wrap("insert kardex row", err)
	}
	return nil
}

// LastForUpdate toma un advisory lock transaccional sobre (artículo, bodega) y lee la última fila.
// El lock también cubre el primer movimiento del par, cuando aún no hay fila que bloquear.
func (r *KardexRepo) LastForUpdate(ctx context.Context, articleCode, warehouseCode string) (*entity.KardexRow, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1 || '/' || $2, 0))`, articleCode, warehouseCode); err != nil {
		return nil, wrap("lock kardex pair", err)
	}
	query := `
		SELECT ` + kardexColumns + `
		FROM kardex
		WHERE article_code = $1 AND warehouse_code = $2
		ORDER BY occurred_at DESC, created_at DESC
		LIMIT 1`
	k, err := scanKardex(r.q.QueryRow(ctx, query, articleCode, warehouseCode))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("last kardex row", err)
	}
	return &k, nil
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// List filas del kardex en [From, To); listas vacías no filtran.
func (r *KardexRepo) List(ctx context.Context, f entity.KardexFilter) ([]entity.KardexRow, error) {
	query := `
		SELECT ` + kardexColumns + `
		FROM kardex
		WHERE ($1::timestamptz IS NULL OR occurred_at >= $1)
		  AND ($2::timestamptz IS NULL OR occurred_at <  $2)
		  AND (cardinality($3::text[]) = 0 OR article_code   = ANY($3))
		  AND (cardinality($4::text[]) = 0 OR warehouse_code = ANY($4))
		ORDER BY article_code, warehouse_code, occurred_at, created_at, id`
	articles := f.ArticleCodes
	if articles == nil {
		articles = []string{}
	}
	warehouses := f.WarehouseCodes
	if warehouses == nil {
		warehouses = []string{}
	}
	rows, err := r.q.Query(ctx, query, optionalTime(f.From), optionalTime(f.To), articles, warehouses)
	if err != nil {
		return nil, wrap("list kardex", err)
	}
	defer rows.Close()
	var list []entity.KardexRow
	for rows.Next() {
		k, err := scanKardex(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kardex row: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

// Balances última fila de cada par (artículo, bodega).
func (r *KardexRepo) Balances(ctx context.Context, warehouseCodes []string) ([]entity.KardexRow, error) {
	query := `
		SELECT DISTINCT ON (warehouse_code, article_code) ` + kardexColumns + `
		FROM kardex
		WHERE cardinality($1::text[]) = 0 OR warehouse_code = ANY($1)
		ORDER BY warehouse_code, article_code, occurred_at DESC, created_at DESC`
	if warehouseCodes == nil {
		warehouseCodes = []string{}
	}
	rows, err := r.q.Query(ctx, query, warehouseCodes)
	if err != nil {
		return nil, wrap("kardex balances", err)
	}
	defer rows.Close()
	var list []entity.KardexRow
	for rows.Next() {
		k, err := scanKardex(rows)
		if err != nil {
			return nil, fmt.Errorf("scan kardex balance: %w", err)
		}
		list = append(list, k)
	}
	return list, rows.Err()
}

// InventoryTransactionRepo cabeceras y líneas de transacciones de inventario.
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create persiste la cabecera y sus líneas.
func (r *InventoryTransactionRepo) Create(ctx context.Context, tx *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (id, code, type, warehouse_code, to_warehouse_code, occurred_at,
		    reference, reason, authorized_by, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		tx.ID, tx.Code, tx.Type, tx.WarehouseCode, tx.ToWarehouseCode, tx.OccurredAt,
		tx.Reference, tx.Reason, tx.AuthorizedBy, tx.CreatedBy, tx.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return wrap("insert inventory transaction", err)
	}
	lineQuery := `
		INSERT INTO inventory_transaction_lines (transaction_id, line_no, article_code, quantity, unit, unit_cost, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, l := range tx.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, tx.ID, i+1, l.ArticleCode, l.Quantity, l.Unit, l.UnitCost, l.Notes); err != nil {
			return wrap("insert inventory transaction line", err)
		}
	}
	return nil
}

// GetByCode obtiene la transacción con sus líneas.
func (r *InventoryTransactionRepo) GetByCode(ctx context.Context, code string) (*entity.InventoryTransaction, error) {
	query := `
		SELECT id, code, type, warehouse_code, to_warehouse_code, occurred_at,
		       reference, reason, authorized_by, created_by, created_at
		FROM inventory_transactions WHERE code = $1`
	var tx entity.InventoryTransaction
	err := r.q.QueryRow(ctx, query, code).Scan(
		&tx.ID, &tx.Code, &tx.Type, &tx.WarehouseCode, &tx.ToWarehouseCode, &tx.OccurredAt,
		&tx.Reference, &tx.Reason, &tx.AuthorizedBy, &tx.CreatedBy, &tx.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, wrap("get inventory transaction", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT article_code, quantity, unit, unit_cost, notes
		FROM inventory_transaction_lines WHERE transaction_id = $1 ORDER BY line_no`, tx.ID)
	if err != nil {
		return nil, wrap("list inventory transaction lines", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InventoryTransactionLine
		var unitCost *decimal.Decimal
		if err := rows.Scan(&l.ArticleCode, &l.Quantity, &l.Unit, &unitCost, &l.Notes); err != nil {
			return nil, fmt.Errorf("scan inventory transaction line: %w", err)
		}
		l.UnitCost = unitCost
		tx.Lines = append(tx.Lines, l)
	}
	return &tx, rows.Err()
}
