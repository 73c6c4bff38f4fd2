package ledger

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// LedgerUseCase registra compras y ventas de forma transaccional: lee el producto,
// calcula el nuevo estado, persiste la transacción y el producto en una sola unidad atómica.
// Las operaciones sobre un mismo producto se serializan dentro del proceso.
type LedgerUseCase struct {
	txRunner    TxRunner
	policy      inventory.PricingPolicy
	locks       *keyedMutex
	publisher   EventPublisher
	idempotency IdempotencyStore
	log         zerolog.Logger
}

// Option configura dependencias opcionales del ledger.
type Option func(*LedgerUseCase)

// WithPublisher publica cada transacción confirmada.
func WithPublisher(p EventPublisher) Option {
	return func(uc *LedgerUseCase) { uc.publisher = p }
}

// WithIdempotency habilita reintentos seguros por Idempotency-Key. Reutilizar una clave
// con otra cantidad o costo devuelve ErrDuplicate.
func WithIdempotency(s IdempotencyStore) Option {
	return func(uc *LedgerUseCase) { uc.idempotency = s }
}

// WithLogger asigna el logger del ledger.
func WithLogger(l zerolog.Logger) Option {
	return func(uc *LedgerUseCase) { uc.log = l }
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, policy inventory.PricingPolicy, opts ...Option) *LedgerUseCase {
	uc := &LedgerUseCase{
		txRunner: txRunner,
		policy:   policy,
		locks:    newKeyedMutex(),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// PurchaseInput entrada de una compra (reposición).
type PurchaseInput struct {
	ProductID      string
	UnitCost       decimal.Decimal
	Quantity       int64
	IdempotencyKey string
}

// SaleInput entrada de una venta.
type SaleInput struct {
	ProductID      string
	Quantity       int64
	IdempotencyKey string
}

// Purchase suma stock al producto y, si el precio candidato (costo + margen) supera
// el precio vigente, actualiza precio de venta y costo de compra.
func (uc *LedgerUseCase) Purchase(ctx context.Context, in PurchaseInput) (*entity.Transaction, error) {
	if in.ProductID == "" || in.Quantity <= 0 || !in.UnitCost.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	return uc.record(ctx, in.ProductID, in.IdempotencyKey, entity.TransactionKindPurchase,
		func(p entity.Product) (inventory.StockChange, error) {
			return uc.policy.ApplyPurchase(p, in.UnitCost, in.Quantity)
		}, in.Quantity,
		func(tx *entity.Transaction) bool { return tx.UnitPrice.Equal(in.UnitCost) })
}

// Sell descuenta stock al precio vigente. Rechaza con ErrInsufficientStock si no alcanza;
// cuando el stock llega a cero reinicia costo y precio.
func (uc *LedgerUseCase) Sell(ctx context.Context, in SaleInput) (*entity.Transaction, error) {
	if in.ProductID == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	return uc.record(ctx, in.ProductID, in.IdempotencyKey, entity.TransactionKindSale,
		func(p entity.Product) (inventory.StockChange, error) {
			return inventory.ApplySale(p, in.Quantity)
		}, in.Quantity, nil)
}

// GetTransaction obtiene una transacción con el snapshot actual del producto.
func (uc *LedgerUseCase) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Transaction
	err := uc.txRunner.Run(ctx, func(_ repository.ProductRepository, txRepo repository.TransactionRepository) error {
		tx, err := txRepo.GetWithProduct(ctx, id)
		if err != nil {
			return domain.StorageFailure("get transaction", err)
		}
		if tx == nil {
			return domain.ErrNotFound
		}
		out = tx
		return nil
	})
	if err != nil {
		return nil, asLedgerError(err)
	}
	return out, nil
}

// record aplica compute sobre el producto activo y persiste transacción + producto atómicamente.
// sameInput compara los campos propios de la operación al reutilizar una clave de idempotencia
// (tipo, producto y cantidad ya se comparan siempre).
func (uc *LedgerUseCase) record(
	ctx context.Context,
	productID, idemKey, kind string,
	compute func(entity.Product) (inventory.StockChange, error),
	quantity int64,
	sameInput func(*entity.Transaction) bool,
) (*entity.Transaction, error) {
	unlock := uc.locks.Lock(productID)
	defer unlock()

	idemKey = scopedKey(kind, productID, idemKey)
	replay, err := uc.replay(ctx, idemKey)
	if err != nil {
		return nil, err
	}
	if replay != nil {
		if replay.Kind != kind || replay.ProductID != productID || replay.Quantity != quantity ||
			(sameInput != nil && !sameInput(replay)) {
			return nil, domain.ErrDuplicate
		}
		return replay, nil
	}

	var out *entity.Transaction
	err = uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, txRepo repository.TransactionRepository) error {
		product, err := productRepo.GetActiveForUpdate(ctx, productID)
		if err != nil {
			return domain.StorageFailure("get product", err)
		}
		if product == nil {
			return domain.ErrNotFound
		}
		change, err := compute(*product)
		if err != nil {
			return err
		}

		tx := &entity.Transaction{
			Kind:      kind,
			ProductID: productID,
			UnitPrice: change.UnitPrice,
			Quantity:  quantity,
			Total:     change.Total,
		}
		if err := txRepo.Create(ctx, tx); err != nil {
			return domain.StorageFailure("create transaction", err)
		}
		updated, err := productRepo.Update(ctx, productID, change.Patch())
		if err != nil {
			return domain.StorageFailure("update product", err)
		}
		if updated == nil {
			return domain.StorageFailure("update product: sin filas", nil)
		}
		saved, err := txRepo.GetWithProduct(ctx, tx.ID)
		if err != nil {
			return domain.StorageFailure("get transaction", err)
		}
		if saved == nil {
			return domain.StorageFailure("get transaction: sin resultado", nil)
		}
		out = saved
		return nil
	})
	if err != nil {
		return nil, asLedgerError(err)
	}

	uc.log.Debug().
		Str("tx_id", out.ID).
		Str("product_id", productID).
		Str("kind", kind).
		Int64("quantity", quantity).
		Str("total", out.Total.String()).
		Msg("transacción registrada")

	uc.afterCommit(ctx, idemKey, out)
	return out, nil
}

// replay devuelve la transacción ya registrada bajo idemKey, si existe.
func (uc *LedgerUseCase) replay(ctx context.Context, idemKey string) (*entity.Transaction, error) {
	if idemKey == "" || uc.idempotency == nil {
		return nil, nil
	}
	txID, err := uc.idempotency.Lookup(ctx, idemKey)
	if err != nil {
		return nil, domain.StorageFailure("idempotency lookup", err)
	}
	if txID == "" {
		return nil, nil
	}
	return uc.GetTransaction(ctx, txID)
}

// afterCommit efectos posteriores al commit; sus fallos se registran y no revierten nada.
func (uc *LedgerUseCase) afterCommit(ctx context.Context, idemKey string, tx *entity.Transaction) {
	if idemKey != "" && uc.idempotency != nil {
		if err := uc.idempotency.Remember(ctx, idemKey, tx.ID); err != nil {
			uc.log.Warn().Err(err).Str("tx_id", tx.ID).Msg("no se pudo guardar la clave de idempotencia")
		}
	}
	if uc.publisher != nil {
		if err := uc.publisher.PublishTransaction(ctx, tx); err != nil {
			uc.log.Warn().Err(err).Str("tx_id", tx.ID).Msg("no se pudo publicar la transacción")
		}
	}
}

// scopedKey limita la clave de idempotencia al tipo de operación y al producto.
func scopedKey(kind, productID, key string) string {
	if key == "" {
		return ""
	}
	return kind + ":" + productID + ":" + key
}

// asLedgerError deja pasar los errores de dominio y clasifica el resto como fallo de almacenamiento.
func asLedgerError(err error) error {
	if err == nil || domain.IsKnown(err) {
		return err
	}
	return domain.StorageFailure("unidad atómica", err)
}
