package inventory

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

// Política de precios por defecto: 50% de margen sobre el costo, redondeo a 2 decimales.
const (
	DefaultDecimals    int32 = 2
	maxPricingDecimals int32 = 8
)

var DefaultMargin = decimal.RequireFromString("0.5")

// PricingPolicy margen y redondeo aplicados al derivar el precio de venta de una compra.
type PricingPolicy struct {
	Margin   decimal.Decimal
	Decimals int32
}

// DefaultPricingPolicy devuelve la política 0.5 / 2 decimales.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{Margin: DefaultMargin, Decimals: DefaultDecimals}
}

// Validate verifica margen no negativo y decimales en 0..8.
func (p PricingPolicy) Validate() error {
	if p.Margin.IsNegative() {
		return fmt.Errorf("margen negativo: %s", p.Margin)
	}
	if p.Decimals < 0 || p.Decimals > maxPricingDecimals {
		return fmt.Errorf("decimales fuera de rango: %d", p.Decimals)
	}
	return nil
}

// Round redondea half-up (los importes son siempre no negativos).
func (p PricingPolicy) Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(p.Decimals)
}

// MarkedUp = unitCost * (1 + margin), sin redondear.
func (p PricingPolicy) MarkedUp(unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(decimal.NewFromInt(1).Add(p.Margin))
}

// CandidateSalePrice = round(unitCost * (1 + margin)).
func (p PricingPolicy) CandidateSalePrice(unitCost decimal.Decimal) decimal.Decimal {
	return p.Round(p.MarkedUp(unitCost))
}

// StockChange resultado de aplicar una compra o venta sobre un producto.
type StockChange struct {
	Quantity     int64
	PurchaseCost decimal.Decimal
	SalePrice    decimal.Decimal
	UnitPrice    decimal.Decimal // precio unitario registrado en la transacción
	Total        decimal.Decimal
	Repriced     bool // la compra subió el precio de venta
	Drained      bool // la venta dejó el stock en cero
}

// Patch traduce el cambio a una actualización parcial del producto.
func (c StockChange) Patch() entity.ProductPatch {
	qty := c.Quantity
	cost := c.PurchaseCost
	price := c.SalePrice
	return entity.ProductPatch{Quantity: &qty, PurchaseCost: &cost, SalePrice: &price}
}

// ApplyPurchase calcula el nuevo estado tras comprar quantity unidades a unitCost.
// El precio solo se reajusta si el costo con margen (sin redondear) supera el precio
// vigente; se guarda el valor redondeado. Rechaza cantidades que desbordan el stock.
func (p PricingPolicy) ApplyPurchase(product entity.Product, unitCost decimal.Decimal, quantity int64) (StockChange, error) {
	if !unitCost.IsPositive() || quantity <= 0 {
		return StockChange{}, domain.ErrInvalidInput
	}
	if product.Quantity < 0 || quantity > math.MaxInt64-product.Quantity {
		return StockChange{}, domain.ErrInvalidInput
	}
	change := StockChange{
		Quantity:     product.Quantity + quantity,
		PurchaseCost: product.PurchaseCost,
		SalePrice:    product.SalePrice,
		UnitPrice:    unitCost,
		Total:        unitCost.Mul(decimal.NewFromInt(quantity)),
	}
	if p.MarkedUp(unitCost).GreaterThan(product.SalePrice) {
		change.SalePrice = p.CandidateSalePrice(unitCost)
		change.PurchaseCost = unitCost
		change.Repriced = true
	}
	return change, nil
}

// ApplySale calcula el nuevo estado tras vender quantity unidades al precio vigente.
// Si el stock queda en cero se reinician costo y precio.
func ApplySale(product entity.Product, quantity int64) (StockChange, error) {
	if quantity <= 0 {
		return StockChange{}, domain.ErrInvalidInput
	}
	if quantity > product.Quantity {
		return StockChange{}, domain.ErrInsufficientStock
	}
	change := StockChange{
		Quantity:     product.Quantity - quantity,
		PurchaseCost: product.PurchaseCost,
		SalePrice:    product.SalePrice,
		UnitPrice:    product.SalePrice,
		Total:        product.SalePrice.Mul(decimal.NewFromInt(quantity)),
	}
	if change.Quantity == 0 {
		change.PurchaseCost = decimal.Zero
		change.SalePrice = decimal.Zero
		change.Drained = true
	}
	return change, nil
}
