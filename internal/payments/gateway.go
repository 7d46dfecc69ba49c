package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Gateway is the payment collaborator: one call to open an order, one
// check to confirm a completed payment. The rest of the provider's API is
// opaque to this service.
type Gateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type HTTPGateway struct {
	client    *resty.Client
	keySecret string
}

// NewHTTPGateway returns nil when credentials are absent so callers can
// degrade to a visible "not configured" state.
func NewHTTPGateway(baseURL, keyID, keySecret string) *HTTPGateway {
	if strings.TrimSpace(keyID) == "" || strings.TrimSpace(keySecret) == "" {
		return nil
	}
	client := resty.New().
		SetBaseURL(baseURL).
		SetBasicAuth(keyID, keySecret).
		SetTimeout(10 * time.Second)
	return &HTTPGateway{
		client:    client,
		keySecret: keySecret,
	}
}

type createOrderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

func (g *HTTPGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error) {
	var order Order
	resp, err := g.client.R().
		SetContext(ctx).
		SetBody(createOrderRequest{Amount: amount, Currency: currency, Receipt: receipt}).
		SetResult(&order).
		Post("/orders")
	if err != nil {
		return Order{}, err
	}
	if resp.IsError() {
		return Order{}, fmt.Errorf("gateway order failed: %s", resp.Status())
	}
	return order, nil
}

// VerifySignature checks the gateway's HMAC-SHA256 over "orderID|paymentID"
// keyed with the API secret.
func (g *HTTPGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
