package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	view view
	now  func() time.Time
}

// Create agrega un producto. Asigna ID si viene vacío.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.view(func(st *state) error {
		if product.ID == "" {
			product.ID = uuid.New().String()
		}
		if _, exists := st.products[product.ID]; exists {
			return domain.ErrDuplicate
		}
		now := r.now()
		if product.CreatedAt.IsZero() {
			product.CreatedAt = now
		}
		product.UpdatedAt = now
		st.products[product.ID] = *product
		return nil
	})
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.view(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetActiveByID obtiene un producto activo por ID.
func (r *ProductRepo) GetActiveByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil || !p.Active {
		return nil, err
	}
	return p, nil
}

// GetActiveForUpdate equivale a GetActiveByID: el store ya serializa las unidades atómicas.
func (r *ProductRepo) GetActiveForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetActiveByID(ctx, id)
}

// Update aplica el patch sobre el producto.
func (r *ProductRepo) Update(_ context.Context, id string, patch entity.ProductPatch) (*entity.Product, error) {
	var out *entity.Product
	err := r.view(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return nil
		}
		p = patch.Apply(p)
		p.UpdatedAt = r.now()
		st.products[id] = p
		out = &p
		return nil
	})
	return out, err
}

// Deactivate marca inactivo si el producto existe y está activo.
func (r *ProductRepo) Deactivate(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.view(func(st *state) error {
		p, ok := st.products[id]
		if !ok || !p.Active {
			return nil
		}
		p.Active = false
		p.UpdatedAt = r.now()
		st.products[id] = p
		out = &p
		return nil
	})
	return out, err
}

// ListActive lista los productos activos por fecha de creación.
func (r *ProductRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.view(func(st *state) error {
		for _, p := range st.products {
			if p.Active {
				p := p
				list = append(list, &p)
			}
		}
		return nil
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	return list, err
}
