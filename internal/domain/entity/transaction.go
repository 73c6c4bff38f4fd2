package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción del ledger.
const (
	TransactionKindPurchase = "PURCHASE" // compra (entrada)
	TransactionKindSale     = "SALE"     // venta (salida)
)

// Transaction registro de auditoría inmutable de una compra o venta.
// Total = UnitPrice * Quantity, congelado al momento de la operación.
type Transaction struct {
	ID        string
	Kind      string
	ProductID string
	UnitPrice decimal.Decimal
	Quantity  int64
	Total     decimal.Decimal
	CreatedAt time.Time // asignado por el store

	// Product snapshot del producto leído junto con la transacción (puede ser nil).
	Product *Product
}

// ValidKind indica si kind es un tipo de transacción conocido.
func ValidKind(kind string) bool {
	return kind == TransactionKindPurchase || kind == TransactionKindSale
}
