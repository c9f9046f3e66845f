package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	cartsvc "github.com/chainfeed/storefront-backend/internal/cart"
	"github.com/chainfeed/storefront-backend/pkg/config"
	"github.com/chainfeed/storefront-backend/pkg/logger"
	"github.com/chainfeed/storefront-backend/pkg/metrics"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "dev", Port: "0", LogLevel: "error"},
		Checkout: config.CheckoutConfig{
			BaseURL:             "https://checkout.chainfeed.store/cart",
			RefCode:             "chainfeed",
			StandardDiscount:    "HODL5",
			HighTierDiscount:    "WHALE15",
			QualifyingLineTotal: "500",
			ReturnPath:          "/order-complete",
			PublicOrigin:        "https://chainfeed.media",
		},
		Storage: config.StorageConfig{Backend: config.StorageBackendMemory},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled, Output: io.Discard})

	registry := prometheus.NewRegistry()
	svc, err := cartsvc.NewService(cartsvc.ServiceParams{
		Storage:  cartsvc.NewMemoryStorage(),
		Settings: cartsvc.SettingsFromConfig(cfg.Checkout),
		Logger:   logg,
		Metrics:  metrics.NewCartMetrics(registry),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	return NewRouter(cfg, logg, nil, svc, registry)
}

type cartEnvelope struct {
	Data struct {
		Items []struct {
			ID       string `json:"id"`
			Quantity int    `json:"quantity"`
		} `json:"items"`
		ItemCount int `json:"itemCount"`
	} `json:"data"`
}

func doJSON(t *testing.T, router http.Handler, method, path, session, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != "" {
		req.Header.Set("X-Cart-Session", session)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCartLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	// No session header: one is minted and echoed back.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "",
		`{"id":"x","name":"Genesis Drop","price":"10","externalVariantId":"v1","inStock":true,"quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	session := rec.Header().Get("X-Cart-Session")
	if session == "" {
		t.Fatal("expected a minted session header")
	}

	var cart cartEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding add response: %v", err)
	}
	if cart.Data.ItemCount != 2 {
		t.Fatalf("expected item count 2, got %d", cart.Data.ItemCount)
	}

	// The same session sees the same cart.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200, got %d", rec.Code)
	}
	cart = cartEnvelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding fetch response: %v", err)
	}
	if len(cart.Data.Items) != 1 || cart.Data.Items[0].ID != "x" || cart.Data.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart: %+v", cart.Data)
	}

	// Overwrite the quantity.
	rec = doJSON(t, router, http.MethodPatch, "/api/v1/cart/items/x", session, `{"quantity":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("set quantity: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	cart = cartEnvelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding patch response: %v", err)
	}
	if cart.Data.ItemCount != 5 {
		t.Fatalf("expected item count 5, got %d", cart.Data.ItemCount)
	}

	// Checkout URL reflects the variant segment and the standard tier.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart/checkout-url", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("checkout-url: expected 200, got %d", rec.Code)
	}
	var checkout struct {
		Data struct {
			CheckoutURL string `json:"checkoutUrl"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &checkout); err != nil {
		t.Fatalf("decoding checkout response: %v", err)
	}
	if !strings.Contains(checkout.Data.CheckoutURL, "/v1:5?") {
		t.Fatalf("expected v1:5 segment, got %q", checkout.Data.CheckoutURL)
	}
	if !strings.Contains(checkout.Data.CheckoutURL, "discount=HODL5") {
		t.Fatalf("expected standard discount, got %q", checkout.Data.CheckoutURL)
	}

	// Remove the line, then clear the already-empty cart.
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/cart/items/x", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("remove: expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, router, http.MethodDelete, "/api/v1/cart", session, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("clear: expected 200, got %d", rec.Code)
	}
	cart = cartEnvelope{}
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding clear response: %v", err)
	}
	if cart.Data.ItemCount != 0 || len(cart.Data.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", cart.Data)
	}
}

func TestCartSessionsAreIsolated(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "session-a",
		`{"id":"x","price":"10","externalVariantId":"v1","quantity":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("add: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodGet, "/api/v1/cart", "session-b", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch: expected 200, got %d", rec.Code)
	}
	var cart cartEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &cart); err != nil {
		t.Fatalf("decoding fetch response: %v", err)
	}
	if len(cart.Data.Items) != 0 {
		t.Fatalf("session-b must not see session-a's cart: %+v", cart.Data)
	}
}

func TestAddItemValidationErrors(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing id", `{"price":"10","quantity":1}`},
		{"missing quantity", `{"id":"x","price":"10"}`},
		{"zero quantity", `{"id":"x","price":"10","quantity":0}`},
		{"malformed json", `{"id":`},
		{"unknown field", `{"id":"x","quantity":1,"bogus":true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/api/v1/cart/items", "session-v", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
			var envelope struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("decoding error response: %v", err)
			}
			if envelope.Error.Code != "VALIDATION_ERROR" {
				t.Fatalf("expected VALIDATION_ERROR, got %q", envelope.Error.Code)
			}
		})
	}
}

func TestEmptyCartCheckoutURLIsEmpty(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/cart/checkout-url", "session-empty", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var checkout struct {
		Data struct {
			CheckoutURL string `json:"checkoutUrl"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &checkout); err != nil {
		t.Fatalf("decoding checkout response: %v", err)
	}
	if checkout.Data.CheckoutURL != "" {
		t.Fatalf("expected empty url, got %q", checkout.Data.CheckoutURL)
	}
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health/live", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
