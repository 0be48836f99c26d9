package postgres

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

//go:embed schema.sql
var schema string

// Store adaptador PostgreSQL: repositorios sobre el pool y transacciones vía Run.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el adaptador con el pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Migrate aplica el esquema (idempotente).
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (s *Store) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(unitOfWork(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return wrap("commit transaction", err)
	}
	return nil
}

func unitOfWork(q Querier) repository.UnitOfWork {
	return repository.UnitOfWork{
		Articles:      NewArticleRepository(q),
		KitComponents: NewKitComponentRepository(q),
		Warehouses:    NewWarehouseRepository(q),
		Kardex:        NewKardexRepository(q),
		Transactions:  NewInventoryTransactionRepository(q),
		CashRegisters: NewCashRegisterRepository(q),
		Invoices:      NewInvoiceRepository(q),
		Tables:        NewTableRepository(q),
		Customers:     NewCustomerRepository(q),
		Receivables:   NewReceivableRepository(q),
	}
}

// Repositories repositorios sobre el pool (cada sentencia en su propia transacción implícita).
func (s *Store) Repositories() repository.UnitOfWork {
	return unitOfWork(s.pool)
}

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository {
	return NewUserRepository(s.pool)
}

// Analytics consultas de ventas.
func (s *Store) Analytics() repository.SalesAnalyticsRepository {
	return NewAnalyticsRepository(s.pool)
}
