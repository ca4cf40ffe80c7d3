package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"divyakart/database"
	"divyakart/store"
)

var testSecret = []byte("test-signing-secret")

func newAuthRouter(st store.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(testSecret, st), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"phone": c.GetString("phoneNumber")})
	})
	r.GET("/admin", Auth(testSecret, st), AdminOnly(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthAcceptsCookie(t *testing.T) {
	st := store.NewMemoryStore()
	r := newAuthRouter(st)

	token, err := GenerateToken(testSecret, "+919876543210", "+919876543210", "customer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "+919876543210")
}

func TestAuthAcceptsBearerFallback(t *testing.T) {
	st := store.NewMemoryStore()
	r := newAuthRouter(st)

	token, err := GenerateToken(testSecret, "+919876543210", "+919876543210", "customer")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejectsMissingAndForgedTokens(t *testing.T) {
	st := store.NewMemoryStore()
	r := newAuthRouter(st)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	forged, err := GenerateToken([]byte("other-secret"), "+919876543210", "+919876543210", "customer")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsRevokedToken(t *testing.T) {
	st := store.NewMemoryStore()
	r := newAuthRouter(st)

	token, err := GenerateToken(testSecret, "+919876543210", "+919876543210", "customer")
	require.NoError(t, err)
	_, err = st.Create(context.Background(), database.RevokedTokens, map[string]any{"token": token})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOnlyGatesByRole(t *testing.T) {
	st := store.NewMemoryStore()
	r := newAuthRouter(st)

	customer, err := GenerateToken(testSecret, "+919876543210", "+919876543210", "customer")
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+customer)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	admin, err := GenerateToken(testSecret, "+911111111111", "+911111111111", "admin")
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
