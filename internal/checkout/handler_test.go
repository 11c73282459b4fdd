package checkout

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/kauanfelipempp/serverfc/internal/order"
)

var errGatewayDown = errors.New("gateway down")

func setupApp() (*fiber.App, *fakeGateway) {
	repo := order.NewInMemoryRepository()
	gw := &fakeGateway{}
	svc := NewService(repo, gw, &fakeNotifier{}, URLs{})
	h := NewHandler(svc)

	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app, gw
}

func TestCheckoutEndpoint_Success(t *testing.T) {
	app, _ := setupApp()

	b, _ := json.Marshal(validRequest())
	req := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}

	var body map[string]any
	json.NewDecoder(res.Body).Decode(&body)
	if body["success"] != true {
		t.Errorf("expected success=true, got %v", body["success"])
	}
	if body["url"] != "https://mp.example/init/pref-1" {
		t.Errorf("unexpected url %v", body["url"])
	}
}

func TestCheckoutEndpoint_EmptyCart(t *testing.T) {
	app, _ := setupApp()

	payload := validRequest()
	payload.Items = nil
	b, _ := json.Marshal(payload)

	req := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestCheckoutEndpoint_GatewayDown(t *testing.T) {
	app, gw := setupApp()
	gw.err = errGatewayDown

	b, _ := json.Marshal(validRequest())
	req := httptest.NewRequest("POST", "/api/checkout", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", res.StatusCode)
	}
}
