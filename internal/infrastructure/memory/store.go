// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORAGE_DRIVER=memory (demo, desarrollo) y en las pruebas de los casos de uso.
//
// Las transacciones serializan a los escritores y trabajan sobre una copia del estado:
// si la función falla la copia se descarta, si termina bien reemplaza al estado vigente.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/restobar-api/internal/domain/entity"
	"github.com/jhoicas/restobar-api/internal/domain/repository"
)

type state struct {
	articles     map[string]entity.Article
	kits         map[string][]entity.KitComponent
	warehouses   map[string]entity.Warehouse
	kardex       []entity.KardexRow
	transactions map[string]entity.InventoryTransaction

	registers       map[string]entity.CashRegister
	sessions        map[string]entity.CashRegisterSession
	sessionPayments map[string]map[string]entity.SessionPayment
	invoices        map[string]entity.SalesInvoice
	invoiceSeq      int64

	zones        map[string]entity.Zone
	tables       map[string]entity.Table
	tableStates  map[string]entity.TableOrderState
	reservations map[string]entity.Reservation

	customers   map[string]entity.Customer
	terms       map[string]entity.PaymentTerm
	documents   map[string]entity.ReceivableDocument
	docPayments map[string][]entity.DocumentPayment

	users map[string]entity.User
}

func newState() *state {
	return &state{
		articles:        map[string]entity.Article{},
		kits:            map[string][]entity.KitComponent{},
		warehouses:      map[string]entity.Warehouse{},
		transactions:    map[string]entity.InventoryTransaction{},
		registers:       map[string]entity.CashRegister{},
		sessions:        map[string]entity.CashRegisterSession{},
		sessionPayments: map[string]map[string]entity.SessionPayment{},
		invoices:        map[string]entity.SalesInvoice{},
		zones:           map[string]entity.Zone{},
		tables:          map[string]entity.Table{},
		tableStates:     map[string]entity.TableOrderState{},
		reservations:    map[string]entity.Reservation{},
		customers:       map[string]entity.Customer{},
		terms:           map[string]entity.PaymentTerm{},
		documents:       map[string]entity.ReceivableDocument{},
		docPayments:     map[string][]entity.DocumentPayment{},
		users:           map[string]entity.User{},
	}
}

// clone copia los mapas; los valores guardados nunca se modifican en sitio
// (cada escritura reemplaza el valor completo).
func (st *state) clone() *state {
	c := &state{
		articles:        maps.Clone(st.articles),
		kits:            maps.Clone(st.kits),
		warehouses:      maps.Clone(st.warehouses),
		kardex:          slices.Clone(st.kardex),
		transactions:    maps.Clone(st.transactions),
		registers:       maps.Clone(st.registers),
		sessions:        maps.Clone(st.sessions),
		sessionPayments: make(map[string]map[string]entity.SessionPayment, len(st.sessionPayments)),
		invoices:        maps.Clone(st.invoices),
		invoiceSeq:      st.invoiceSeq,
		zones:           maps.Clone(st.zones),
		tables:          maps.Clone(st.tables),
		tableStates:     maps.Clone(st.tableStates),
		reservations:    maps.Clone(st.reservations),
		customers:       maps.Clone(st.customers),
		terms:           maps.Clone(st.terms),
		documents:       maps.Clone(st.documents),
		docPayments:     maps.Clone(st.docPayments),
		users:           maps.Clone(st.users),
	}
	for id, m := range st.sessionPayments {
		c.sessionPayments[id] = maps.Clone(m)
	}
	return c
}

// db acceso al estado: con bloqueo (Store) o dentro de una transacción (txView).
type db interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

// Store almacenamiento en memoria seguro para uso concurrente.
type Store struct {
	txMu sync.Mutex   // serializa escritores y transacciones
	mu   sync.RWMutex // protege data
	data *state
}

// NewStore crea un almacenamiento vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.data)
}

func (s *Store) write(fn func(st *state) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.data)
}

// txView estado de una transacción en curso; solo lo usa la goroutine dueña de la transacción.
type txView struct {
	data *state
}

func (t *txView) read(fn func(st *state) error) error  { return fn(t.data) }
func (t *txView) write(fn func(st *state) error) error { return fn(t.data) }

// Run ejecuta fn sobre una copia del estado y la publica solo si fn no devuelve error.
func (s *Store) Run(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	view := &txView{data: s.data.clone()}
	s.mu.RUnlock()

	if err := fn(unitOfWork(view)); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.data = view.data
	s.mu.Unlock()
	return nil
}

func unitOfWork(d db) repository.UnitOfWork {
	return repository.UnitOfWork{
		Articles:      &articleRepo{db: d},
		KitComponents: &kitRepo{db: d},
		Warehouses:    &warehouseRepo{db: d},
		Kardex:        &kardexRepo{db: d},
		Transactions:  &transactionRepo{db: d},
		CashRegisters: &cashRegisterRepo{db: d},
		Invoices:      &invoiceRepo{db: d},
		Tables:        &tableRepo{db: d},
		Customers:     &customerRepo{db: d},
		Receivables:   &receivableRepo{db: d},
	}
}

// Repositories repositorios fuera de transacción (lecturas y escrituras simples).
func (s *Store) Repositories() repository.UnitOfWork {
	return unitOfWork(s)
}

// Users repositorio de usuarios.
func (s *Store) Users() repository.UserRepository {
	return &userRepo{db: s}
}
