package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	StatementUC *usecase.StatementUseCase
	LedgerUC    *ledger.LedgerUseCase
	RateLimiter *RateLimiter // nil deshabilita el límite
	Log         zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StatementUC, deps.Log)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Deactivate)
	products.Get("/:id/statement.pdf", productHandler.Statement)

	// Ledger (con límite por cliente)
	ledgerHandler := NewLedgerHandler(deps.LedgerUC, deps.Log)
	limit := RateLimit(deps.RateLimiter)
	products.Post("/:id/purchases", limit, ledgerHandler.Purchase)
	products.Post("/:id/sales", limit, ledgerHandler.Sell)
	api.Get("/transactions/:id", ledgerHandler.GetTransaction)
}
