package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
)

// HeaderIdempotencyKey permite reintentar una compra o venta sin duplicarla.
// Reenviar la misma clave con otra cantidad o costo responde 409 DUPLICATE.
const HeaderIdempotencyKey = "Idempotency-Key"

// LedgerHandler maneja compras, ventas y consulta de transacciones.
type LedgerHandler struct {
	uc  *ledger.LedgerUseCase
	log zerolog.Logger
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase, log zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{uc: uc, log: log}
}

// Purchase godoc
// @Summary      Registrar compra (reposición)
// @Description  Con Idempotency-Key repetida y misma carga devuelve la transacción original; con otra carga responde 409.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id               path    string               true   "ID del producto"
// @Param        Idempotency-Key  header  string               false  "Clave de idempotencia"
// @Param        body             body    dto.PurchaseRequest  true   "unit_cost, quantity"
// @Success      201  {object}  dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/purchases [post]
func (h *LedgerHandler) Purchase(c *fiber.Ctx) error {
	var in dto.PurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	tx, err := h.uc.Purchase(c.UserContext(), ledger.PurchaseInput{
		ProductID:      c.Params("id"),
		UnitCost:       in.UnitCost,
		Quantity:       in.Quantity,
		IdempotencyKey: c.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransaction(tx))
}

// Sell godoc
// @Summary      Registrar venta
// @Description  Con Idempotency-Key repetida y misma carga devuelve la transacción original; con otra carga responde 409.
// @Tags         ledger
// @Accept       json
// @Produce      json
// @Param        id               path    string           true   "ID del producto"
// @Param        Idempotency-Key  header  string           false  "Clave de idempotencia"
// @Param        body             body    dto.SaleRequest  true   "quantity"
// @Success      201  {object}  dto.TransactionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/products/{id}/sales [post]
func (h *LedgerHandler) Sell(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	tx, err := h.uc.Sell(c.UserContext(), ledger.SaleInput{
		ProductID:      c.Params("id"),
		Quantity:       in.Quantity,
		IdempotencyKey: c.Get(HeaderIdempotencyKey),
	})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FromTransaction(tx))
}

// GetTransaction godoc
// @Summary      Obtener transacción con el estado actual del producto
// @Tags         ledger
// @Produce      json
// @Param        id   path  string  true  "ID de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [get]
func (h *LedgerHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.uc.GetTransaction(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.FromTransaction(tx))
}
