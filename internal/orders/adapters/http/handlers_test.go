package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	idemmemory "github.com/dvukoje/ordersvc/internal/idempotency/memory"
	"github.com/dvukoje/ordersvc/internal/orders/adapters/memory"
	"github.com/dvukoje/ordersvc/internal/orders/app"
	"github.com/dvukoje/ordersvc/internal/orders/domain"
	"github.com/dvukoje/ordersvc/internal/orders/metrics"
	"github.com/dvukoje/ordersvc/internal/orders/ports"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

type mockInventory struct {
	reduceFunc func(ctx context.Context, productID, quantity int64) error
	calls      int
}

func (m *mockInventory) ReduceQuantity(ctx context.Context, productID, quantity int64) error {
	m.calls++
	if m.reduceFunc != nil {
		return m.reduceFunc(ctx, productID, quantity)
	}
	return nil
}

type mockPayments struct {
	doPaymentFunc func(ctx context.Context, req ports.PaymentRequest) ports.PaymentResult
	calls         int
}

func (m *mockPayments) DoPayment(ctx context.Context, req ports.PaymentRequest) ports.PaymentResult {
	m.calls++
	if m.doPaymentFunc != nil {
		return m.doPaymentFunc(ctx, req)
	}
	return ports.PaymentSucceeded()
}

type mockEventBus struct{}

func (m *mockEventBus) PublishOrderPlaced(context.Context, int64) error {
	return nil
}

func (m *mockEventBus) PublishPaymentFailed(context.Context, int64, string) error {
	return nil
}

type mockDetailsFetcher struct {
	productFunc func(ctx context.Context, productID int64) (ports.ProductDetails, error)
	paymentFunc func(ctx context.Context, orderID int64) (ports.PaymentDetails, error)
}

func (m *mockDetailsFetcher) FetchProductDetails(ctx context.Context, productID int64) (ports.ProductDetails, error) {
	if m.productFunc != nil {
		return m.productFunc(ctx, productID)
	}
	return ports.ProductDetails{ProductID: productID}, nil
}

func (m *mockDetailsFetcher) FetchPaymentDetails(ctx context.Context, orderID int64) (ports.PaymentDetails, error) {
	if m.paymentFunc != nil {
		return m.paymentFunc(ctx, orderID)
	}
	return ports.PaymentDetails{OrderID: orderID}, nil
}

type testEnv struct {
	repo      *memory.Repository
	inventory *mockInventory
	payments  *mockPayments
	server    *httptest.Server
}

func setupTestServer(t *testing.T, inventory *mockInventory, payments *mockPayments, details *mockDetailsFetcher) *testEnv {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	m, err := metrics.NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("NewMetrics() failed: %v", err)
	}

	if inventory == nil {
		inventory = &mockInventory{}
	}
	if payments == nil {
		payments = &mockPayments{}
	}
	if details == nil {
		details = &mockDetailsFetcher{}
	}

	repo := memory.NewRepository()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := app.NewService(repo, inventory, payments, &mockEventBus{}, details, idemmemory.NewStore(), logger, m)

	mux := http.NewServeMux()
	NewHandler(service).Register(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{repo: repo, inventory: inventory, payments: payments, server: server}
}

func postOrder(t *testing.T, env *testEnv, idemKey string, body string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, env.server.URL+"/v1/orders", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if idemKey != "" {
		req.Header.Set("Idempotency-Key", idemKey)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return payload
}

const validOrderBody = `{"product_id":1,"quantity":2,"amount_cents":2500,"payment_mode":"CASH"}`

func TestPlaceOrderEndpoint(t *testing.T) {
	t.Run("places order and returns 201 with order id", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		resp := postOrder(t, env, "key-1", validOrderBody)

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.StatusCode)
		}

		payload := decodeBody(t, resp)
		id, ok := payload["order_id"].(float64)
		if !ok || id <= 0 {
			t.Fatalf("expected positive order_id, got %v", payload["order_id"])
		}

		order, err := env.repo.FindByID(context.Background(), int64(id))
		if err != nil {
			t.Fatalf("expected order to be persisted: %v", err)
		}
		if order.Status != domain.StatusPlaced {
			t.Errorf("expected status %s, got %s", domain.StatusPlaced, order.Status)
		}
	})

	t.Run("returns 400 when idempotency key is missing", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		resp := postOrder(t, env, "", validOrderBody)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", resp.StatusCode)
		}
		resp.Body.Close()
		if env.inventory.calls != 0 {
			t.Errorf("expected no workflow invocation, got %d inventory calls", env.inventory.calls)
		}
	})

	t.Run("replays stored response without re-running the workflow", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		first := postOrder(t, env, "key-replay", validOrderBody)
		firstBody := decodeBody(t, first)

		second := postOrder(t, env, "key-replay", validOrderBody)
		secondBody := decodeBody(t, second)

		if second.StatusCode != http.StatusCreated {
			t.Errorf("expected replayed status 201, got %d", second.StatusCode)
		}
		if firstBody["order_id"] != secondBody["order_id"] {
			t.Errorf("expected same order_id, got %v and %v", firstBody["order_id"], secondBody["order_id"])
		}
		if env.inventory.calls != 1 {
			t.Errorf("expected 1 inventory call, got %d", env.inventory.calls)
		}
		if env.payments.calls != 1 {
			t.Errorf("expected 1 payment call, got %d", env.payments.calls)
		}
	})

	t.Run("returns 400 on invalid JSON", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		resp := postOrder(t, env, "key-2", "{not-json")

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	})

	t.Run("returns 400 with field errors on invalid payload", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		resp := postOrder(t, env, "key-3", `{"product_id":0,"quantity":2,"amount_cents":100,"payment_mode":"BARTER"}`)

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", resp.StatusCode)
		}

		payload := decodeBody(t, resp)
		fields, ok := payload["fields"].(map[string]any)
		if !ok {
			t.Fatalf("expected fields map, got %v", payload["fields"])
		}
		if _, ok := fields["ProductID"]; !ok {
			t.Error("expected ProductID validation error")
		}
		if _, ok := fields["PaymentMode"]; !ok {
			t.Error("expected PaymentMode validation error")
		}
		if env.inventory.calls != 0 {
			t.Errorf("expected no workflow invocation, got %d inventory calls", env.inventory.calls)
		}
	})

	t.Run("returns 201 when payment fails and order is marked accordingly", func(t *testing.T) {
		payments := &mockPayments{
			doPaymentFunc: func(context.Context, ports.PaymentRequest) ports.PaymentResult {
				return ports.PaymentFailed("card declined")
			},
		}
		env := setupTestServer(t, nil, payments, nil)

		resp := postOrder(t, env, "key-4", validOrderBody)

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("expected status 201, got %d", resp.StatusCode)
		}

		payload := decodeBody(t, resp)
		id := int64(payload["order_id"].(float64))

		order, err := env.repo.FindByID(context.Background(), id)
		if err != nil {
			t.Fatalf("expected order to be persisted: %v", err)
		}
		if order.Status != domain.StatusPaymentFailed {
			t.Errorf("expected status %s, got %s", domain.StatusPaymentFailed, order.Status)
		}
	})

	t.Run("returns 502 when inventory reservation fails", func(t *testing.T) {
		inventory := &mockInventory{
			reduceFunc: func(context.Context, int64, int64) error {
				return errors.New("insufficient stock")
			},
		}
		env := setupTestServer(t, inventory, nil, nil)

		resp := postOrder(t, env, "key-5", validOrderBody)

		if resp.StatusCode != http.StatusBadGateway {
			t.Errorf("expected status 502, got %d", resp.StatusCode)
		}
		resp.Body.Close()
		if env.payments.calls != 0 {
			t.Errorf("expected no payment call, got %d", env.payments.calls)
		}
	})

	t.Run("returns 405 on unsupported method", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		resp, err := http.Get(env.server.URL + "/v1/orders")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusMethodNotAllowed {
			t.Errorf("expected status 405, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	})
}

func TestGetOrderDetailsEndpoint(t *testing.T) {
	t.Run("returns 200 with assembled details", func(t *testing.T) {
		details := &mockDetailsFetcher{
			productFunc: func(_ context.Context, productID int64) (ports.ProductDetails, error) {
				return ports.ProductDetails{ProductID: productID, ProductName: "widget", PriceCents: 1250}, nil
			},
		}
		env := setupTestServer(t, nil, nil, details)

		created := postOrder(t, env, "key-get", validOrderBody)
		id := int64(decodeBody(t, created)["order_id"].(float64))

		resp, err := http.Get(env.server.URL + "/v1/orders/" + strconv.FormatInt(id, 10))
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected status 200, got %d", resp.StatusCode)
		}

		payload := decodeBody(t, resp)
		order, ok := payload["order"].(map[string]any)
		if !ok {
			t.Fatalf("expected order object, got %v", payload["order"])
		}
		if got := order["status"]; got != string(domain.StatusPlaced) {
			t.Errorf("expected status %s, got %v", domain.StatusPlaced, got)
		}
		product, ok := order["product_details"].(map[string]any)
		if !ok {
			t.Fatalf("expected product_details object, got %v", order["product_details"])
		}
		if product["product_name"] != "widget" {
			t.Errorf("expected product name widget, got %v", product["product_name"])
		}
	})

	t.Run("returns 404 with NOT_FOUND code for unknown order", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		resp, err := http.Get(env.server.URL + "/v1/orders/9999")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusNotFound {
			t.Fatalf("expected status 404, got %d", resp.StatusCode)
		}

		payload := decodeBody(t, resp)
		if payload["code"] != "NOT_FOUND" {
			t.Errorf("expected code NOT_FOUND, got %v", payload["code"])
		}
	})

	t.Run("returns 400 for a non-numeric order id", func(t *testing.T) {
		env := setupTestServer(t, nil, nil, nil)

		resp, err := http.Get(env.server.URL + "/v1/orders/abc")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", resp.StatusCode)
		}
		resp.Body.Close()
	})
}
