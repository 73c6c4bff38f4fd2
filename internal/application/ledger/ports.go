package ledger

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una unidad atómica del store, pasando repositorios atados a ella.
// Si fn devuelve error no queda persistido ningún cambio.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.TransactionRepository,
	) error) error
}

// EventPublisher publica transacciones ya confirmadas (Kafka u otro bus).
type EventPublisher interface {
	PublishTransaction(ctx context.Context, tx *entity.Transaction) error
}

// IdempotencyStore asocia una Idempotency-Key con el ID de la transacción que produjo.
// Lookup devuelve "" si la clave no existe.
type IdempotencyStore interface {
	Lookup(ctx context.Context, key string) (string, error)
	Remember(ctx context.Context, key, transactionID string) error
}
