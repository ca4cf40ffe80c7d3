package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"divyakart/database"
	"divyakart/identity"
	"divyakart/middleware"
	"divyakart/models"
	"divyakart/services"
	"divyakart/store"
)

var authTestSecret = []byte("controller-test-secret")

type fakeProvider struct {
	phones map[string]string
}

func (p *fakeProvider) RequestOTP(ctx context.Context, phone string) (string, error) {
	return "req-1", nil
}

func (p *fakeProvider) VerifyToken(ctx context.Context, token string) (string, error) {
	phone, ok := p.phones[token]
	if !ok {
		return "", identity.ErrVerificationFailed
	}
	return phone, nil
}

func newAuthFixture(t *testing.T) (*gin.Engine, store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	log := zaptest.NewLogger(t)
	users := services.NewUserService(st, log)
	provider := &fakeProvider{phones: map[string]string{"good-token": "+919876543210"}}
	ac := NewAuthController(provider, users, st, authTestSecret, log)

	r := gin.New()
	r.POST("/auth/otp/request", ac.RequestOTP)
	r.POST("/auth/otp/verify", ac.VerifyOTP)
	r.POST("/auth/admin/login", ac.AdminLogin)
	r.POST("/auth/logout", middleware.Auth(authTestSecret, st), ac.Logout)
	r.GET("/protected", middleware.Auth(authTestSecret, st), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, st
}

func TestVerifyOTPCreatesUserAndSession(t *testing.T) {
	r, st := newAuthFixture(t)

	w := postJSON(t, r, "/auth/otp/verify", gin.H{"token": "good-token"})
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	var session string
	for _, c := range cookies {
		if c.Name == middleware.SessionCookie {
			session = c.Value
		}
	}
	require.NotEmpty(t, session)

	claims, err := middleware.ParseToken(authTestSecret, session)
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", claims.PhoneNumber)

	var user models.User
	require.NoError(t, st.GetByID(context.Background(), database.Users, "+919876543210", &user))
	assert.Equal(t, "customer", user.Role)
}

func TestVerifyOTPRejectsBadToken(t *testing.T) {
	r, _ := newAuthFixture(t)

	w := postJSON(t, r, "/auth/otp/verify", gin.H{"token": "bad-token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func authedRequest(t *testing.T, method, path, token string) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req, httptest.NewRecorder()
}

func TestLogoutRevokesSession(t *testing.T) {
	r, _ := newAuthFixture(t)

	token, err := middleware.GenerateToken(authTestSecret, "+919876543210", "+919876543210", "customer")
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req, w2 := authedRequest(t, http.MethodPost, "/auth/logout", token)
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)

	req, w3 := authedRequest(t, http.MethodGet, "/protected", token)
	r.ServeHTTP(w3, req)
	assert.Equal(t, http.StatusUnauthorized, w3.Code)
}

func TestAdminLogin(t *testing.T) {
	r, st := newAuthFixture(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.DefaultCost)
	require.NoError(t, err)
	_, err = st.Create(context.Background(), database.Users, models.User{
		ID:       "+911111111111",
		Phone:    "+911111111111",
		Email:    "ops@example.com",
		Role:     "admin",
		Password: string(hash),
	}, store.WithID("+911111111111"))
	require.NoError(t, err)

	w := postJSON(t, r, "/auth/admin/login", gin.H{"email": "ops@example.com", "password": "s3cret"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, r, "/auth/admin/login", gin.H{"email": "ops@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
