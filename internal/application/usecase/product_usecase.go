package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ProductUseCase operaciones de catálogo. Stock y precios se mueven por el ledger;
// aquí solo se crean, consultan, editan y desactivan productos.
type ProductUseCase struct {
	repo   repository.ProductRepository
	txRepo repository.TransactionRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRepo repository.TransactionRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRepo: txRepo}
}

// Create crea un producto activo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.Quantity < 0 || in.PurchaseCost.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product := &entity.Product{
		Name:         in.Name,
		Description:  in.Description,
		Quantity:     in.Quantity,
		PurchaseCost: in.PurchaseCost,
		SalePrice:    in.SalePrice,
		Active:       true,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, storageErr("create product", err)
	}
	return dto.FromProduct(product), nil
}

// GetByID obtiene un producto (activo o no) con su historial de transacciones.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr("get product", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	history, err := uc.txRepo.ListByProduct(ctx, id)
	if err != nil {
		return nil, storageErr("list transactions", err)
	}
	out := &dto.ProductDetailResponse{
		ProductResponse: *dto.FromProduct(product),
		Transactions:    make([]dto.TransactionResponse, 0, len(history)),
	}
	for _, t := range history {
		out.Transactions = append(out.Transactions, *dto.FromTransaction(t))
	}
	return out, nil
}

// ListActive lista los productos activos.
func (uc *ProductUseCase) ListActive(ctx context.Context) (*dto.ProductListResponse, error) {
	list, err := uc.repo.ListActive(ctx)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *dto.FromProduct(p))
	}
	return &dto.ProductListResponse{Items: items, Total: len(items)}, nil
}

// Update edita campos del producto. No reaplica la regla de stock cero sobre los precios.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Name != nil && *in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if isNegative(in.PurchaseCost) || isNegative(in.SalePrice) {
		return nil, domain.ErrInvalidInput
	}
	patch := entity.ProductPatch{
		Name:         in.Name,
		Description:  in.Description,
		Quantity:     in.Quantity,
		PurchaseCost: in.PurchaseCost,
		SalePrice:    in.SalePrice,
	}
	if patch.IsEmpty() {
		product, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, storageErr("get product", err)
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		return dto.FromProduct(product), nil
	}
	product, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, storageErr("update product", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromProduct(product), nil
}

// Deactivate marca el producto como inactivo. Falla con ErrNotFound si no existe
// o si ya estaba inactivo; entre llamadas concurrentes solo una tiene éxito.
func (uc *ProductUseCase) Deactivate(ctx context.Context, id string) (*dto.ProductResponse, error) {
	updated, err := uc.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, storageErr("deactivate product", err)
	}
	if updated == nil {
		return nil, domain.ErrNotFound
	}
	return dto.FromProduct(updated), nil
}

func isNegative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}

func storageErr(op string, err error) error {
	if domain.IsKnown(err) {
		return err
	}
	return domain.StorageFailure(op, err)
}
