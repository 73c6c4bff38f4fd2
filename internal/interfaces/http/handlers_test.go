package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/ledger"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/inventory"
	"github.com/jhoicas/inventario-ledger/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/inventario-ledger/internal/interfaces/http"
)

type fakeRenderer struct{}

func (fakeRenderer) RenderStatement(_ context.Context, p *entity.Product, h []*entity.Transaction) ([]byte, error) {
	return []byte("%PDF-fake " + p.Name), nil
}

func buildTestApp(t *testing.T, limiter *apphttp.RateLimiter) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   usecase.NewProductUseCase(store.Products(), store.Transactions()),
		StatementUC: usecase.NewStatementUseCase(store.Products(), store.Transactions(), fakeRenderer{}),
		LedgerUC:    ledger.NewLedgerUseCase(store, inventory.DefaultPricingPolicy()),
		RateLimiter: limiter,
		Log:         zerolog.Nop(),
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProduct(t *testing.T, app *fiber.App, name string) dto.ProductResponse {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"name": name})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func TestHealth(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProducts_CrearYListar(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "Cuaderno")
	assert.True(t, p.Active)
	assert.Equal(t, int64(0), p.Quantity)

	resp := doJSON(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.ProductListResponse](t, resp)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, p.ID, list.Items[0].ID)
}

func TestProducts_CrearSinNombre(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]any{"description": "x"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProducts_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte("{no-json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INVALID_BODY", body.Code)
}

func TestProducts_ActualizarYDesactivar(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "Lápiz")

	resp := doJSON(t, app, http.MethodPatch, "/api/products/"+p.ID, map[string]any{"name": "Lápiz HB"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Lápiz HB", decode[dto.ProductResponse](t, resp).Name)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+p.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, decode[dto.ProductResponse](t, resp).Active)

	resp = doJSON(t, app, http.MethodDelete, "/api/products/"+p.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// get-by-id sigue devolviendo el producto inactivo
	resp = doJSON(t, app, http.MethodGet, "/api/products/"+p.ID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProducts_NoEncontrado(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodGet, "/api/products/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLedger_CompraVentaYHistorial(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "Cuaderno")

	resp := doJSON(t, app, http.MethodPost, "/api/products/"+p.ID+"/purchases", map[string]any{"unit_cost": "10", "quantity": 4})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	buy := decode[dto.TransactionResponse](t, resp)
	assert.Equal(t, entity.TransactionKindPurchase, buy.Kind)
	assert.True(t, buy.Total.Equal(decimal.NewFromInt(40)))
	require.NotNil(t, buy.Product)
	assert.Equal(t, int64(4), buy.Product.Quantity)
	assert.True(t, buy.Product.SalePrice.Equal(decimal.NewFromInt(15)))

	resp = doJSON(t, app, http.MethodPost, "/api/products/"+p.ID+"/sales", map[string]any{"quantity": 3})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	sale := decode[dto.TransactionResponse](t, resp)
	assert.True(t, sale.UnitPrice.Equal(decimal.NewFromInt(15)))
	assert.True(t, sale.Total.Equal(decimal.NewFromInt(45)))
	assert.Equal(t, int64(1), sale.Product.Quantity)

	resp = doJSON(t, app, http.MethodGet, "/api/transactions/"+sale.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, sale.ID, decode[dto.TransactionResponse](t, resp).ID)

	resp = doJSON(t, app, http.MethodGet, "/api/products/"+p.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	detail := decode[dto.ProductDetailResponse](t, resp)
	require.Len(t, detail.Transactions, 2)
	assert.Equal(t, sale.ID, detail.Transactions[0].ID)
}

func TestLedger_StockInsuficiente(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "Borrador")

	resp := doJSON(t, app, http.MethodPost, "/api/products/"+p.ID+"/sales", map[string]any{"quantity": 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLedger_EntradaInvalida(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "Regla")

	resp := doJSON(t, app, http.MethodPost, "/api/products/"+p.ID+"/purchases", map[string]any{"unit_cost": "0", "quantity": 1})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/products/"+p.ID+"/sales", map[string]any{"quantity": 0})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLedger_ProductoInexistente(t *testing.T) {
	app := buildTestApp(t, nil)
	resp := doJSON(t, app, http.MethodPost, "/api/products/no-existe/purchases", map[string]any{"unit_cost": "1", "quantity": 1})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/transactions/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProducts_Extracto(t *testing.T) {
	app := buildTestApp(t, nil)
	p := createProduct(t, app, "Cuaderno")

	resp := doJSON(t, app, http.MethodGet, "/api/products/"+p.ID+"/statement.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = doJSON(t, app, http.MethodGet, "/api/products/no-existe/statement.pdf", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestLedger_RateLimit(t *testing.T) {
	app := buildTestApp(t, apphttp.NewRateLimiter(0.001, 2, time.Minute))
	p := createProduct(t, app, "Cuaderno")
	path := "/api/products/" + p.ID + "/purchases"
	body := map[string]any{"unit_cost": "1", "quantity": 1}

	assert.Equal(t, fiber.StatusCreated, doJSON(t, app, http.MethodPost, path, body).StatusCode)
	assert.Equal(t, fiber.StatusCreated, doJSON(t, app, http.MethodPost, path, body).StatusCode)
	resp := doJSON(t, app, http.MethodPost, path, body)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "RATE_LIMITED", decode[dto.ErrorResponse](t, resp).Code)

	// las rutas de catálogo no se limitan
	assert.Equal(t, fiber.StatusOK, doJSON(t, app, http.MethodGet, "/api/products", nil).StatusCode)
}
