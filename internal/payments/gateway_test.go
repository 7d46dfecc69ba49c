package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func signedWith(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	gw := NewHTTPGateway("https://example.test", "key_id", "key_secret")
	if gw == nil {
		t.Fatal("expected configured gateway")
	}

	sig := signedWith("key_secret", "order_1", "pay_1")
	if !gw.VerifySignature("order_1", "pay_1", sig) {
		t.Error("valid signature rejected")
	}
	if gw.VerifySignature("order_1", "pay_2", sig) {
		t.Error("signature accepted for the wrong payment")
	}
	if gw.VerifySignature("order_1", "pay_1", "deadbeef") {
		t.Error("bogus signature accepted")
	}
	if gw.VerifySignature("order_1", "pay_1", "") {
		t.Error("empty signature accepted")
	}
}

func TestNewHTTPGatewayWithoutCredentials(t *testing.T) {
	if gw := NewHTTPGateway("https://example.test", "", "secret"); gw != nil {
		t.Error("expected nil gateway without key id")
	}
	if gw := NewHTTPGateway("https://example.test", "key", "  "); gw != nil {
		t.Error("expected nil gateway without key secret")
	}
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "key_id" || pass != "key_secret" {
			t.Error("missing basic auth")
		}
		var req createOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Amount != 4950 || req.Currency != "INR" {
			t.Errorf("unexpected order payload %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Order{
			ID:       "order_test_1",
			Amount:   req.Amount,
			Currency: req.Currency,
			Receipt:  req.Receipt,
			Status:   "created",
		})
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "key_id", "key_secret")
	order, err := gw.CreateOrder(context.Background(), 4950, "INR", "crs_1_a@b.c")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "order_test_1" {
		t.Errorf("order id = %q", order.ID)
	}
	if order.Amount != 4950 {
		t.Errorf("amount = %d", order.Amount)
	}
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"auth"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	gw := NewHTTPGateway(srv.URL, "key_id", "bad_secret")
	if _, err := gw.CreateOrder(context.Background(), 100, "INR", "r1"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}
