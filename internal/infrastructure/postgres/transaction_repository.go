package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del puerto TransactionRepository sobre PostgreSQL (append-only).
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta la transacción; created_at lo asigna la base de datos.
func (r *TransactionRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO transactions (id, kind, product_id, unit_price, quantity, total)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		tx.ID, tx.Kind, tx.ProductID, tx.UnitPrice, tx.Quantity, tx.Total,
	).Scan(&tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// GetWithProduct obtiene la transacción con el estado actual de su producto.
func (r *TransactionRepo) GetWithProduct(ctx context.Context, id string) (*entity.Transaction, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT t.id, t.kind, t.product_id, t.unit_price, t.quantity, t.total, t.created_at,
		       p.id, p.name, p.description, p.quantity, p.purchase_cost, p.sale_price, p.active, p.created_at, p.updated_at
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		WHERE t.id = $1`
	var t entity.Transaction
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Kind, &t.ProductID, &t.UnitPrice, &t.Quantity, &t.Total, &t.CreatedAt,
		&p.ID, &p.Name, &p.Description, &p.Quantity, &p.PurchaseCost, &p.SalePrice, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	t.Product = &p
	return &t, nil
}

// ListByProduct lista las transacciones del producto, la más reciente primero.
func (r *TransactionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Transaction, error) {
	if !validID(productID) {
		return nil, nil
	}
	query := `
		SELECT id, kind, product_id, unit_price, quantity, total, created_at
		FROM transactions
		WHERE product_id = $1
		ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.Kind, &t.ProductID, &t.UnitPrice, &t.Quantity, &t.Total, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
