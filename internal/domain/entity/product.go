package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del inventario con su stock y precios vigentes.
// Quantity == 0 implica PurchaseCost == 0 y SalePrice == 0 solo cuando una venta vacía el stock.
type Product struct {
	ID           string
	Name         string
	Description  string
	Quantity     int64
	PurchaseCost decimal.Decimal // costo de la última reposición que fijó precio
	SalePrice    decimal.Decimal // precio unitario ofrecido
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductPatch actualización parcial de un producto; los campos nil no se modifican.
type ProductPatch struct {
	Name         *string
	Description  *string
	Quantity     *int64
	PurchaseCost *decimal.Decimal
	SalePrice    *decimal.Decimal
	Active       *bool
}

// IsEmpty indica si el patch no cambia ningún campo.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Quantity == nil &&
		p.PurchaseCost == nil && p.SalePrice == nil && p.Active == nil
}

// Apply aplica el patch sobre una copia del producto.
func (p ProductPatch) Apply(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
	if p.PurchaseCost != nil {
		product.PurchaseCost = *p.PurchaseCost
	}
	if p.SalePrice != nil {
		product.SalePrice = *p.SalePrice
	}
	if p.Active != nil {
		product.Active = *p.Active
	}
	return product
}
