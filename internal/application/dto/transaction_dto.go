package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// PurchaseRequest entrada de una compra.
type PurchaseRequest struct {
	UnitCost decimal.Decimal `json:"unit_cost" validate:"required,gt=0"`
	Quantity int64           `json:"quantity" validate:"required,gt=0"`
}

// SaleRequest entrada de una venta.
type SaleRequest struct {
	Quantity int64 `json:"quantity" validate:"required,gt=0"`
}

// TransactionResponse salida de una transacción; Product es el snapshot leído con ella.
type TransactionResponse struct {
	ID        string           `json:"id"`
	Kind      string           `json:"kind"`
	ProductID string           `json:"product_id"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
	Quantity  int64            `json:"quantity"`
	Total     decimal.Decimal  `json:"total"`
	CreatedAt time.Time        `json:"created_at"`
	Product   *ProductResponse `json:"product,omitempty"`
}

// FromTransaction convierte la entidad a su representación de salida.
func FromTransaction(t *entity.Transaction) *TransactionResponse {
	if t == nil {
		return nil
	}
	return &TransactionResponse{
		ID:        t.ID,
		Kind:      t.Kind,
		ProductID: t.ProductID,
		UnitPrice: t.UnitPrice,
		Quantity:  t.Quantity,
		Total:     t.Total,
		CreatedAt: t.CreatedAt,
		Product:   FromProduct(t.Product),
	}
}
