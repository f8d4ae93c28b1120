package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	app     *fiber.App
	db      *gorm.DB
	client  *model.Client
	product *model.Product
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&model.Product{}, &model.Supplier{}, &model.Client{},
		&model.Purchase{}, &model.PurchaseItem{},
		&model.Sale{}, &model.SaleItem{},
		&model.Order{}, &model.OrderItem{},
		&model.AuditEvent{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	productRepo := repository.NewProductRepo(db)
	clientRepo := repository.NewClientRepo(db)
	auditor := service.NewAuditor(repository.NewAuditRepo(db), nil)

	saleService := service.NewSaleService(repository.NewSaleRepo(db), productRepo, clientRepo, db, auditor)
	orderService := service.NewOrderService(repository.NewOrderRepo(db), productRepo, clientRepo, db, auditor)

	saleHandler := NewSaleHandler(saleService)
	orderHandler := NewOrderHandler(orderService)

	app := fiber.New()
	app.Post("/sales", saleHandler.Create)
	app.Get("/sales/:id", saleHandler.Get)
	app.Post("/orders", orderHandler.Create)
	app.Get("/orders/:id", orderHandler.Get)
	app.Put("/orders/:id", orderHandler.UpdateStatus)

	client := &model.Client{Name: "Acme", Status: model.ClientActive}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	product := &model.Product{SKU: "SKU-1", Name: "Widget", Stock: 5, PurchasePrice: 80, SalePrice: 120}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	return &testEnv{app: app, db: db, client: client, product: product}
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request %s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var decoded map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("decode body %q: %v", raw, err)
		}
	}
	return resp, decoded
}

func TestCreateSaleEndpoint(t *testing.T) {
	env := setupTestApp(t)

	body := fmt.Sprintf(`{"client_id":%q,"items":[{"product_id":%q,"quantity":2}]}`,
		env.client.ID, env.product.ID)
	resp, got := doJSON(t, env.app, http.MethodPost, "/sales", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%v", resp.StatusCode, got)
	}
	if got["total"] != float64(240) {
		t.Fatalf("expected total 240 got %v", got["total"])
	}
}

func TestCreateSaleInsufficientStockMapsTo400(t *testing.T) {
	env := setupTestApp(t)

	body := fmt.Sprintf(`{"client_id":%q,"items":[{"product_id":%q,"quantity":99}]}`,
		env.client.ID, env.product.ID)
	resp, got := doJSON(t, env.app, http.MethodPost, "/sales", body)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%v", resp.StatusCode, got)
	}
	msg, _ := got["error"].(string)
	if !strings.Contains(msg, "Widget") {
		t.Fatalf("error should name the product, got %q", msg)
	}
}

func TestGetMissingOrderMapsTo404(t *testing.T) {
	env := setupTestApp(t)

	resp, got := doJSON(t, env.app, http.MethodGet, "/orders/999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 got %d body=%v", resp.StatusCode, got)
	}
}

func TestOrderTerminalTransitionMapsTo400(t *testing.T) {
	env := setupTestApp(t)

	body := fmt.Sprintf(`{"client_id":%q,"items":[{"product_id":%q,"quantity":1}]}`,
		env.client.ID, env.product.ID)
	resp, created := doJSON(t, env.app, http.MethodPost, "/orders", body)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201 got %d body=%v", resp.StatusCode, created)
	}
	orderID := int(created["id"].(float64))

	resp, _ = doJSON(t, env.app, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), `{"status":"paid"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on payment got %d", resp.StatusCode)
	}

	resp, got := doJSON(t, env.app, http.MethodPut, fmt.Sprintf("/orders/%d", orderID), `{"status":"cancelled"}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body=%v", resp.StatusCode, got)
	}
	msg, _ := got["error"].(string)
	if !strings.Contains(msg, "paid") || !strings.Contains(msg, "cancelled") {
		t.Fatalf("error should name both states, got %q", msg)
	}
}

func TestInvalidIDMapsTo400(t *testing.T) {
	env := setupTestApp(t)

	resp, _ := doJSON(t, env.app, http.MethodGet, "/sales/not-a-number", "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.StatusCode)
	}
}
