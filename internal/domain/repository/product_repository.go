package repository

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetActiveByID filtra por active = true.
	GetActiveByID(ctx context.Context, id string) (*entity.Product, error)
	// GetActiveForUpdate como GetActiveByID, bloqueando la fila hasta el fin de la transacción.
	GetActiveForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update aplica el patch y devuelve el producto resultante; (nil, nil) si no existe.
	Update(ctx context.Context, id string, patch entity.ProductPatch) (*entity.Product, error)
	// Deactivate pasa a inactivo solo si estaba activo; (nil, nil) si no existe o ya estaba inactivo.
	Deactivate(ctx context.Context, id string) (*entity.Product, error)
	ListActive(ctx context.Context) ([]*entity.Product, error)
}
