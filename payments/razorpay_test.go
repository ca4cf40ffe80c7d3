package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret []byte, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignatureAccepts(t *testing.T) {
	secret := []byte("test_key_secret")
	sig := sign(secret, "order_abc123", "pay_def456")
	assert.True(t, VerifySignature(secret, "order_abc123", "pay_def456", sig))
}

func TestVerifySignatureRejects(t *testing.T) {
	secret := []byte("test_key_secret")
	sig := sign(secret, "order_abc123", "pay_def456")

	assert.False(t, VerifySignature(secret, "order_abc123", "pay_other", sig))
	assert.False(t, VerifySignature(secret, "order_other", "pay_def456", sig))
	assert.False(t, VerifySignature([]byte("wrong_secret"), "order_abc123", "pay_def456", sig))
	assert.False(t, VerifySignature(secret, "order_abc123", "pay_def456", ""))
}
