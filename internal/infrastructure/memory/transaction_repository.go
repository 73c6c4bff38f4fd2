package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación en memoria de TransactionRepository (append-only).
type TransactionRepo struct {
	view view
	now  func() time.Time
}

// Create agrega la transacción asignando ID y CreatedAt.
func (r *TransactionRepo) Create(_ context.Context, tx *entity.Transaction) error {
	if !entity.ValidKind(tx.Kind) {
		return fmt.Errorf("tipo de transacción inválido: %q", tx.Kind)
	}
	return r.view(func(st *state) error {
		if _, ok := st.products[tx.ProductID]; !ok {
			return fmt.Errorf("producto inexistente: %s", tx.ProductID)
		}
		if tx.ID == "" {
			tx.ID = uuid.New().String()
		}
		tx.CreatedAt = r.now()
		stored := *tx
		stored.Product = nil
		st.transactions = append(st.transactions, stored)
		return nil
	})
}

// GetWithProduct obtiene la transacción junto con el estado actual del producto.
func (r *TransactionRepo) GetWithProduct(_ context.Context, id string) (*entity.Transaction, error) {
	var out *entity.Transaction
	err := r.view(func(st *state) error {
		for _, t := range st.transactions {
			if t.ID != id {
				continue
			}
			t := t
			if p, ok := st.products[t.ProductID]; ok {
				t.Product = &p
			}
			out = &t
			return nil
		}
		return nil
	})
	return out, err
}

// ListByProduct lista las transacciones de un producto, más recientes primero.
func (r *TransactionRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Transaction, error) {
	var list []*entity.Transaction
	err := r.view(func(st *state) error {
		for i := len(st.transactions) - 1; i >= 0; i-- {
			if st.transactions[i].ProductID == productID {
				t := st.transactions[i]
				list = append(list, &t)
			}
		}
		return nil
	})
	return list, err
}
