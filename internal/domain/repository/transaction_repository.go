package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// TransactionRepository define el puerto de persistencia para transacciones del ledger.
// Las transacciones son append-only: no hay Update ni Delete.
type TransactionRepository interface {
	// Create persiste la transacción; el store asigna ID (si está vacío) y CreatedAt.
	Create(ctx context.Context, tx *entity.Transaction) error
	// GetWithProduct obtiene la transacción con el snapshot del producto; (nil, nil) si no existe.
	GetWithProduct(ctx context.Context, id string) (*entity.Transaction, error)
	// ListByProduct lista las transacciones de un producto, más recientes primero.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error)
}
