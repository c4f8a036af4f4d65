package handlers_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"pedidos/internal/config"
	"pedidos/internal/http/handlers"
)

func testApp(t *testing.T) (*fiber.App, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	schema := `
	CREATE TABLE products(id TEXT PRIMARY KEY, name TEXT NOT NULL, price NUMERIC NOT NULL,
	  units_per_pack INTEGER, created_at TEXT DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')), updated_at TEXT);
	CREATE TABLE customers(id TEXT PRIMARY KEY, name TEXT NOT NULL, phone TEXT, address TEXT,
	  created_at TEXT DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')), updated_at TEXT);
	CREATE TABLE orders(id TEXT PRIMARY KEY, customer_id TEXT NOT NULL,
	  status TEXT NOT NULL DEFAULT 'pending',
	  created_at TEXT DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')));
	CREATE TABLE order_items(order_id TEXT NOT NULL, product_id TEXT NOT NULL,
	  sale_mode TEXT NOT NULL, qty INTEGER NOT NULL, unit_price NUMERIC NOT NULL,
	  PRIMARY KEY(order_id, product_id));

	INSERT INTO products(id,name,price,units_per_pack) VALUES
	  ('p-soda','Soda 350ml',1000,6);
	INSERT INTO customers(id,name,phone,address) VALUES
	  ('c-tienda','Tienda La 15','3101234567','Cra 15 #23-41');
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatal(err)
	}

	app := fiber.New()
	app.Use(requestid.New())

	// Webhook left unconfigured: sends are skipped, notified stays false.
	deps := handlers.NewDeps(db, config.Config{})

	app.Get("/products", deps.ProductHandler.List)
	app.Get("/products/:id", deps.ProductHandler.Get)
	app.Post("/products", deps.ProductHandler.Create)
	app.Put("/products/:id", deps.ProductHandler.Update)
	app.Delete("/products/:id", deps.ProductHandler.Delete)
	app.Post("/products/import", deps.ProductHandler.Import)
	app.Get("/customers", deps.CustomerHandler.List)
	app.Post("/customers", deps.CustomerHandler.Create)
	app.Get("/orders/history", deps.OrderHandler.History)
	app.Get("/orders", deps.OrderHandler.List)
	app.Get("/orders/:id", deps.OrderHandler.Get)
	app.Post("/orders", deps.OrderHandler.Create)
	app.Put("/orders/:id", deps.OrderHandler.Update)

	return app, db
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("bad json response %q: %v", raw, err)
		}
	}
	return resp.StatusCode, out
}

func TestProductCreate_Validation(t *testing.T) {
	app, _ := testApp(t)

	status, body := doJSON(t, app, "POST", "/products", `{"name":"","price":100}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("want 400, got %d (%v)", status, body)
	}

	status, body = doJSON(t, app, "POST", "/products", `{"name":"Thing"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("missing price should 400, got %d (%v)", status, body)
	}

	status, body = doJSON(t, app, "POST", "/products", `{"name":"Soda 350ml","price":900}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("duplicate name should 400, got %d (%v)", status, body)
	}

	long := strings.Repeat("x", 120)
	status, body = doJSON(t, app, "POST", "/products", `{"name":"`+long+`","price":100}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("overlong name should 400, got %d (%v)", status, body)
	}
}

func TestProductCRUD(t *testing.T) {
	app, _ := testApp(t)

	status, body := doJSON(t, app, "POST", "/products", `{"name":"Rice 500g","price":2500,"unitsPerPack":24}`)
	if status != fiber.StatusCreated {
		t.Fatalf("want 201, got %d (%v)", status, body)
	}
	id, _ := body["id"].(string)
	if id == "" {
		t.Fatalf("response should carry the new id: %v", body)
	}

	status, body = doJSON(t, app, "GET", "/products?search=rice", "")
	if status != fiber.StatusOK {
		t.Fatalf("want 200, got %d", status)
	}
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("want total 1, got %v", body["total"])
	}

	status, _ = doJSON(t, app, "PUT", "/products/"+id, `{"name":"Rice 500g","price":2600,"unitsPerPack":24}`)
	if status != fiber.StatusOK {
		t.Fatalf("update want 200, got %d", status)
	}

	status, _ = doJSON(t, app, "DELETE", "/products/"+id, "")
	if status != fiber.StatusOK {
		t.Fatalf("delete want 200, got %d", status)
	}
	status, _ = doJSON(t, app, "GET", "/products/"+id, "")
	if status != fiber.StatusNotFound {
		t.Fatalf("deleted product should 404, got %d", status)
	}
}

func TestOrderEndpoints(t *testing.T) {
	app, _ := testApp(t)

	status, body := doJSON(t, app, "POST", "/orders",
		`{"customerId":"c-tienda","items":[{"productId":"p-soda","saleMode":"pack","qty":2}]}`)
	if status != fiber.StatusCreated {
		t.Fatalf("want 201, got %d (%v)", status, body)
	}
	if notified, _ := body["notified"].(bool); notified {
		t.Fatal("unconfigured webhook must report notified=false")
	}
	order, _ := body["order"].(map[string]any)
	if order == nil {
		t.Fatalf("response should embed the order: %v", body)
	}
	// pack of 6 at 1000 each, two packs
	if total, _ := order["total"].(float64); total != 12000 {
		t.Fatalf("want total 12000, got %v", order["total"])
	}
	oid, _ := order["id"].(string)

	status, body = doJSON(t, app, "PUT", "/orders/"+oid,
		`{"status":"in-process","items":[{"productId":"p-soda","saleMode":"pack","qty":3}]}`)
	if status != fiber.StatusOK {
		t.Fatalf("edit want 200, got %d (%v)", status, body)
	}

	status, body = doJSON(t, app, "GET", "/orders?status=in-process", "")
	if status != fiber.StatusOK {
		t.Fatalf("list want 200, got %d", status)
	}
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("want 1 in-process order, got %v", body["total"])
	}

	status, body = doJSON(t, app, "GET", "/orders/history?phone=3101234567", "")
	if status != fiber.StatusOK {
		t.Fatalf("history want 200, got %d (%v)", status, body)
	}

	status, _ = doJSON(t, app, "GET", "/orders?status=shipped", "")
	if status != fiber.StatusBadRequest {
		t.Fatalf("bad status filter should 400, got %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/orders",
		`{"customerId":"c-tienda","items":[{"productId":"p-soda","saleMode":"dozen","qty":1}]}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("bad sale mode should 400, got %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/orders",
		`{"customerId":"c-tienda","items":[`+
			`{"productId":"p-soda","saleMode":"unit","qty":1},`+
			`{"productId":"p-soda","saleMode":"unit","qty":2}]}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("repeated product should 400, got %d", status)
	}
}

func TestCustomerEndpoints(t *testing.T) {
	app, _ := testApp(t)

	status, body := doJSON(t, app, "POST", "/customers",
		`{"name":"Granero JM","phone":"3209876543","address":"Cll 8 #4-12"}`)
	if status != fiber.StatusCreated {
		t.Fatalf("want 201, got %d (%v)", status, body)
	}

	status, body = doJSON(t, app, "GET", "/customers?search=granero", "")
	if status != fiber.StatusOK {
		t.Fatalf("want 200, got %d", status)
	}
	if total, _ := body["total"].(float64); total != 1 {
		t.Fatalf("want total 1, got %v", body["total"])
	}

	status, _ = doJSON(t, app, "POST", "/customers", `{"name":""}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("missing name should 400, got %d", status)
	}

	status, _ = doJSON(t, app, "POST", "/customers", `{"name":"`+strings.Repeat("x", 120)+`"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("overlong name should 400, got %d", status)
	}
}

func TestProductImport_ReportsRowErrors(t *testing.T) {
	app, _ := testApp(t)

	status, body := doJSON(t, app, "POST", "/products/import",
		`{"products":[{"name":"Lentils","price":2000},{"name":"Soda 350ml","price":900}]}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("duplicate row should flip to 400, got %d (%v)", status, body)
	}
	if inserted, _ := body["inserted"].(float64); inserted != 1 {
		t.Fatalf("valid rows before the failure stay inserted, got %v", body["inserted"])
	}
}
