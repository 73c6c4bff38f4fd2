// Package memory implementa los puertos de persistencia en memoria, con la misma
// semántica que el adaptador PostgreSQL. Se usa en tests y con STORE_DRIVER=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ ledger.TxRunner = (*Store)(nil)

type state struct {
	products     map[string]entity.Product
	transactions []entity.Transaction // orden de inserción
}

func (st *state) clone() *state {
	c := &state{
		products:     make(map[string]entity.Product, len(st.products)),
		transactions: make([]entity.Transaction, len(st.transactions)),
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	copy(c.transactions, st.transactions)
	return c
}

// view da acceso al estado; fuera de una transacción toma el lock del store.
type view func(fn func(st *state) error) error

// Store almacén en memoria. Run aplica los cambios solo si fn termina sin error.
type Store struct {
	mu  sync.Mutex
	st  *state
	now func() time.Time
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		st:  &state{products: make(map[string]entity.Product)},
		now: time.Now,
	}
}

// SetClock reemplaza el reloj usado para CreatedAt/UpdatedAt (tests).
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) locked(fn func(st *state) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.st)
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo {
	return &ProductRepo{view: s.locked, now: s.clock}
}

// Transactions repositorio de transacciones fuera de transacción.
func (s *Store) Transactions() *TransactionRepo {
	return &TransactionRepo{view: s.locked, now: s.clock}
}

func (s *Store) clock() time.Time {
	return s.now().UTC()
}

// Run ejecuta fn sobre una copia del estado y la confirma si no hay error.
// El lock se mantiene durante toda la unidad, por lo que las unidades se serializan.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.TransactionRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	staged := s.st.clone()
	v := func(f func(st *state) error) error { return f(staged) }
	now := s.now
	clock := func() time.Time { return now().UTC() }

	if err := fn(&ProductRepo{view: v, now: clock}, &TransactionRepo{view: v, now: clock}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = staged
	return nil
}
