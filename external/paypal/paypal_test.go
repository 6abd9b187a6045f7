package paypal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewClient(t *testing.T) {
	if _, err := NewClient("", "secret", "sandbox"); err == nil {
		t.Error("missing client id should be rejected")
	}
	if _, err := NewClient("id", "", "sandbox"); err == nil {
		t.Error("missing client secret should be rejected")
	}

	c, err := NewClient("id", "secret", "sandbox")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if c.baseURL != sandboxBaseURL {
		t.Errorf("sandbox base URL = %q", c.baseURL)
	}

	live, _ := NewClient("id", "secret", "live")
	if live.baseURL != liveBaseURL {
		t.Errorf("live base URL = %q", live.baseURL)
	}
}

// newTestClient points a client at a local test server standing in for the
// PayPal API.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient("test-id", "test-secret", "sandbox")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	c.baseURL = srv.URL
	return c, srv
}

func TestCreateOrder(t *testing.T) {
	ctx := context.Background()

	var tokenCalls, orderCalls int
	var gotBody createOrderRequest
	var gotAuth string

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		tokenCalls++
		user, pass, ok := r.BasicAuth()
		if !ok || user != "test-id" || pass != "test-secret" {
			t.Errorf("unexpected basic auth: %q/%q", user, pass)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-123",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
		orderCalls++
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding order request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"ORDER-1","status":"CREATED"}`))
	})

	c, _ := newTestClient(t, mux)

	order, err := c.CreateOrder(ctx, decimal.RequireFromString("25"), "USD", "Donation from Jane")
	if err != nil {
		t.Fatalf("CreateOrder returned error: %v", err)
	}
	if order.ID != "ORDER-1" || order.Status != "CREATED" {
		t.Errorf("order = %+v", order)
	}
	if len(order.Raw) == 0 {
		t.Error("raw payload should be preserved")
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("authorization = %q", gotAuth)
	}
	if gotBody.Intent != "CAPTURE" {
		t.Errorf("intent = %q, want CAPTURE", gotBody.Intent)
	}
	if len(gotBody.PurchaseUnits) != 1 {
		t.Fatalf("purchase units = %d, want 1", len(gotBody.PurchaseUnits))
	}
	pu := gotBody.PurchaseUnits[0]
	if pu.Amount.Value != "25.00" || pu.Amount.CurrencyCode != "USD" {
		t.Errorf("amount = %+v, want 25.00 USD", pu.Amount)
	}
	if pu.Description != "Donation from Jane" {
		t.Errorf("description = %q", pu.Description)
	}

	// A second call reuses the cached token.
	if _, err := c.CreateOrder(ctx, decimal.RequireFromString("10"), "USD", ""); err != nil {
		t.Fatalf("second CreateOrder returned error: %v", err)
	}
	if tokenCalls != 1 {
		t.Errorf("token fetches = %d, want 1", tokenCalls)
	}
	if orderCalls != 2 {
		t.Errorf("order calls = %d, want 2", orderCalls)
	}
}

func TestCaptureOrder(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
	})
	mux.HandleFunc("/v2/checkout/orders/ORDER-1/capture", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": "ORDER-1",
			"status": "COMPLETED",
			"purchase_units": [{
				"payments": {
					"captures": [{
						"id": "CAP-1",
						"status": "COMPLETED",
						"amount": {"value": "25.00", "currency_code": "USD"}
					}]
				}
			}]
		}`))
	})

	c, _ := newTestClient(t, mux)

	capture, err := c.CaptureOrder(ctx, "ORDER-1")
	if err != nil {
		t.Fatalf("CaptureOrder returned error: %v", err)
	}
	if capture.Status != OrderCompleted {
		t.Errorf("status = %q, want COMPLETED", capture.Status)
	}
	amt := capture.FirstCaptureAmount()
	if amt == nil {
		t.Fatal("expected a capture amount")
	}
	if amt.Value != "25.00" || amt.CurrencyCode != "USD" {
		t.Errorf("amount = %+v", amt)
	}
	if len(capture.Raw) == 0 {
		t.Error("raw payload should be preserved")
	}
}

func TestPostErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("token failure", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_client"}`, http.StatusUnauthorized)
		})
		c, _ := newTestClient(t, mux)

		_, err := c.CreateOrder(ctx, decimal.RequireFromString("25"), "USD", "")
		if err == nil || !strings.Contains(err.Error(), "token") {
			t.Errorf("err = %v, want token failure", err)
		}
	})

	t.Run("non-2xx order response", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]any{"access_token": "tok", "expires_in": 3600})
		})
		mux.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"name":"UNPROCESSABLE_ENTITY"}`, http.StatusUnprocessableEntity)
		})
		c, _ := newTestClient(t, mux)

		if _, err := c.CreateOrder(ctx, decimal.RequireFromString("25"), "USD", ""); err == nil {
			t.Error("expected error for non-2xx response")
		}
	})
}

func TestFirstCaptureAmount(t *testing.T) {
	cases := []struct {
		name string
		r    CaptureResult
		want *Amount
	}{
		{"no purchase units", CaptureResult{}, nil},
		{"nil payments", CaptureResult{PurchaseUnits: []PurchaseUnit{{}}}, nil},
		{"no captures", CaptureResult{PurchaseUnits: []PurchaseUnit{{Payments: &Payments{}}}}, nil},
		{
			"present",
			CaptureResult{PurchaseUnits: []PurchaseUnit{{Payments: &Payments{Captures: []Capture{{Amount: &Amount{Value: "5.00", CurrencyCode: "USD"}}}}}}},
			&Amount{Value: "5.00", CurrencyCode: "USD"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.FirstCaptureAmount()
			if (got == nil) != (tc.want == nil) {
				t.Fatalf("got %+v, want %+v", got, tc.want)
			}
			if got != nil && *got != *tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}
