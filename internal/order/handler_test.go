package order

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type fakeNotifier struct {
	mu      sync.Mutex
	shipped []Order
}

func (f *fakeNotifier) OrderShipped(ord Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shipped = append(f.shipped, ord)
}

func allowAll(c *fiber.Ctx) error {
	return c.Next()
}

func setupApp(seed []Order) (*fiber.App, *InMemoryRepository, *fakeNotifier) {
	repo := NewInMemoryRepository()
	for _, o := range seed {
		repo.Create(o)
	}
	notifier := &fakeNotifier{}
	h := NewHandler(NewService(repo, notifier))

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	h.RegisterAdminRoutes(app, allowAll)
	return app, repo, notifier
}

func TestPublicOrder_ExactMatch(t *testing.T) {
	app, _, _ := setupApp([]Order{{
		ID:        "pedido-1234",
		Customer:  Customer{Nome: "Ana", Email: "ana@example.com", Endereco: "Rua A"},
		Items:     []Item{{Nome: "Camiseta", Preco: 79.9, Quantidade: 2, Tamanho: "M", Cor: "preta"}},
		Total:     159.8,
		Status:    StatusAwaitingPayment,
		CreatedAt: "2025-06-01T10:00:00Z",
	}})

	req := httptest.NewRequest("GET", "/api/public/orders/pedido-1234", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body map[string]any
	json.NewDecoder(res.Body).Decode(&body)
	if body["_id"] != "pedido-1234" {
		t.Errorf("unexpected _id %v", body["_id"])
	}
	cliente, _ := body["cliente"].(map[string]any)
	if cliente["nome"] != "Ana" {
		t.Errorf("unexpected cliente %v", body["cliente"])
	}
	// sanitized view never exposes the address or email
	if _, ok := cliente["email"]; ok {
		t.Error("public view leaked customer email")
	}
	itens, _ := body["itens"].([]any)
	if len(itens) != 1 {
		t.Fatalf("expected 1 item, got %v", body["itens"])
	}
	item := itens[0].(map[string]any)
	if item["qty"] != float64(2) || item["size"] != "M" || item["color"] != "preta" {
		t.Errorf("unexpected item shape %v", item)
	}
}

func TestPublicOrder_SuffixMatchPicksMostRecent(t *testing.T) {
	app, _, _ := setupApp([]Order{
		{ID: "aaaa-77ff", Status: StatusAwaitingPayment, CreatedAt: "2025-06-01T10:00:00Z"},
		{ID: "bbbb-77ff", Status: StatusApproved, CreatedAt: "2025-06-02T10:00:00Z"},
	})

	req := httptest.NewRequest("GET", "/api/public/orders/77FF", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body map[string]any
	json.NewDecoder(res.Body).Decode(&body)
	if body["_id"] != "bbbb-77ff" {
		t.Errorf("expected most recent match bbbb-77ff, got %v", body["_id"])
	}
}

func TestPublicOrder_NotFound(t *testing.T) {
	app, _, _ := setupApp(nil)

	req := httptest.NewRequest("GET", "/api/public/orders/nope", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", res.StatusCode)
	}
}

func TestUpdateStatus_ShippedSetsTrackingAndNotifiesOnce(t *testing.T) {
	app, repo, notifier := setupApp([]Order{{
		ID:        "pedido-1",
		Customer:  Customer{Nome: "Ana", Email: "ana@example.com"},
		Status:    StatusApproved,
		CreatedAt: "2025-06-01T10:00:00Z",
	}})

	b, _ := json.Marshal(map[string]string{"status": StatusShipped, "trackingCode": "BR123456789"})
	req := httptest.NewRequest("PUT", "/api/orders/pedido-1/status", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	ord, _ := repo.GetByID("pedido-1")
	if ord.Status != StatusShipped {
		t.Errorf("expected status %q, got %q", StatusShipped, ord.Status)
	}
	if ord.TrackingCode != "BR123456789" {
		t.Errorf("tracking code not persisted: %q", ord.TrackingCode)
	}
	if len(notifier.shipped) != 1 {
		t.Errorf("expected exactly 1 shipment notification, got %d", len(notifier.shipped))
	}
}

func TestUpdateStatus_OtherStatusKeepsTrackingCode(t *testing.T) {
	app, repo, notifier := setupApp([]Order{{
		ID:           "pedido-2",
		Status:       StatusShipped,
		TrackingCode: "BR999",
		CreatedAt:    "2025-06-01T10:00:00Z",
	}})

	b, _ := json.Marshal(map[string]string{"status": StatusApproved})
	req := httptest.NewRequest("PUT", "/api/orders/pedido-2/status", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	ord, _ := repo.GetByID("pedido-2")
	if ord.TrackingCode != "BR999" {
		t.Errorf("tracking code should be untouched, got %q", ord.TrackingCode)
	}
	if len(notifier.shipped) != 0 {
		t.Errorf("no shipment notification expected, got %d", len(notifier.shipped))
	}
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	app, _, _ := setupApp([]Order{{ID: "pedido-3", Status: StatusAwaitingPayment}})

	b, _ := json.Marshal(map[string]string{"status": "Teleportado"})
	req := httptest.NewRequest("PUT", "/api/orders/pedido-3/status", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestListOrders_NewestFirst(t *testing.T) {
	app, _, _ := setupApp([]Order{
		{ID: "old", CreatedAt: "2025-06-01T10:00:00Z", Status: StatusAwaitingPayment},
		{ID: "new", CreatedAt: "2025-06-03T10:00:00Z", Status: StatusAwaitingPayment},
		{ID: "mid", CreatedAt: "2025-06-02T10:00:00Z", Status: StatusAwaitingPayment},
	})

	req := httptest.NewRequest("GET", "/api/orders", nil)
	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var orders []Order
	json.NewDecoder(res.Body).Decode(&orders)
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].ID != "new" || orders[2].ID != "old" {
		t.Errorf("orders not newest first: %v, %v, %v", orders[0].ID, orders[1].ID, orders[2].ID)
	}
}
