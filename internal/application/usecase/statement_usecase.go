package usecase

import (
	"context"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// StatementRenderer genera el extracto (kardex) de un producto en algún formato binario.
type StatementRenderer interface {
	RenderStatement(ctx context.Context, product *entity.Product, history []*entity.Transaction) ([]byte, error)
}

// StatementUseCase arma el extracto de movimientos de un producto.
type StatementUseCase struct {
	repo     repository.ProductRepository
	txRepo   repository.TransactionRepository
	renderer StatementRenderer
}

// NewStatementUseCase construye el caso de uso.
func NewStatementUseCase(repo repository.ProductRepository, txRepo repository.TransactionRepository, renderer StatementRenderer) *StatementUseCase {
	return &StatementUseCase{repo: repo, txRepo: txRepo, renderer: renderer}
}

// Generate devuelve el documento del producto id (activo o no).
func (uc *StatementUseCase) Generate(ctx context.Context, id string) ([]byte, error) {
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
	doc, err := uc.renderer.RenderStatement(ctx, product, history)
	if err != nil {
		return nil, storageErr("render statement", err)
	}
	return doc, nil
}
