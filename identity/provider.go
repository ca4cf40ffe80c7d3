package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrVerificationFailed means the provider rejected the identity token.
var ErrVerificationFailed = errors.New("identity token verification failed")

// Provider delegates OTP delivery and verification to the external
// identity service. The OTP itself never reaches this process; clients
// complete the challenge with the provider and hand back an identity
// token, which VerifyToken exchanges for the canonical phone number.
type Provider interface {
	RequestOTP(ctx context.Context, phone string) (requestID string, err error)
	VerifyToken(ctx context.Context, token string) (phone string, err error)
}

// HTTPProvider talks to the provider's REST API.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *HTTPProvider) RequestOTP(ctx context.Context, phone string) (string, error) {
	var resp struct {
		RequestID string `json:"requestId"`
	}
	if err := p.post(ctx, "/otp/send", map[string]string{"phone": phone}, &resp); err != nil {
		return "", err
	}
	return resp.RequestID, nil
}

func (p *HTTPProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	var resp struct {
		Verified bool   `json:"verified"`
		Phone    string `json:"phone"`
	}
	if err := p.post(ctx, "/token/verify", map[string]string{"token": token}, &resp); err != nil {
		return "", err
	}
	if !resp.Verified || resp.Phone == "" {
		return "", ErrVerificationFailed
	}
	return resp.Phone, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	res, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden {
		return ErrVerificationFailed
	}
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("identity provider %s: status %d", path, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(out)
}
