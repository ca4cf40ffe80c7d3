package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Gateway is the payment-gateway seam the order pipeline depends on.
type Gateway interface {
	// CreateOrder registers an order with the gateway and returns the
	// gateway's order id. Amount is in minor currency units (paise).
	CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]any) (string, error)

	// VerifySignature reports whether the checkout callback signature is
	// authentic. It is the sole authority for marking a payment completed.
	VerifySignature(orderID, paymentID, signature string) bool
}

// RazorpayGateway implements Gateway against the Razorpay Orders API.
type RazorpayGateway struct {
	client *razorpay.Client
	secret []byte
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
		secret: []byte(keySecret),
	}
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, amount int64, currency, receipt string, notes map[string]any) (string, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("razorpay order create: response missing id")
	}
	return id, nil
}

func (g *RazorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(g.secret, orderID, paymentID, signature)
}

// VerifySignature checks the Razorpay checkout callback signature:
// hex(HMAC-SHA256(orderID + "|" + paymentID, keySecret)).
func VerifySignature(secret []byte, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
