package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"divyakart/database"
	"divyakart/store"
)

// SessionCookie is the HTTP-only cookie carrying the session token. The
// token is also accepted as a bearer header for clients that cannot rely
// on cookies.
const SessionCookie = "auth-token"

// SessionTTL is the session lifetime, matching the cookie max-age.
const SessionTTL = 7 * 24 * time.Hour

// Claims is the signed session payload. The phone number is the
// canonical subject.
type Claims struct {
	PhoneNumber string `json:"phoneNumber"`
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a session token for the given identity.
func GenerateToken(secret []byte, phone, userID, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		PhoneNumber: phone,
		UserID:      userID,
		Role:        role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ParseToken verifies a session token against the canonical secret.
func ParseToken(secret []byte, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrSignatureInvalid
	}
	return claims, nil
}

// SetSessionCookie installs the HTTP-only session cookie.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(SessionTTL.Seconds()), "/", "", false, true)
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

func revoked(ctx context.Context, st store.Store, token string) bool {
	var entries []struct {
		Token string `bson:"token"`
	}
	err := st.Find(ctx, database.RevokedTokens, store.Query{Field: "token", Value: token, Limit: 1}, &entries)
	return err == nil && len(entries) > 0
}

// Auth verifies the session token and sets the subject on the context.
func Auth(secret []byte, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "authentication required"})
			return
		}
		if revoked(c.Request.Context(), st, token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "session revoked"})
			return
		}
		claims, err := ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid or expired session"})
			return
		}
		c.Set("phoneNumber", claims.PhoneNumber)
		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("sessionToken", token)
		c.Next()
	}
}

// OptionalAuth sets the subject when a valid session is present but never
// rejects; checkout allows guests.
func OptionalAuth(secret []byte, st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" || revoked(c.Request.Context(), st, token) {
			c.Next()
			return
		}
		if claims, err := ParseToken(secret, token); err == nil {
			c.Set("phoneNumber", claims.PhoneNumber)
			c.Set("userId", claims.UserID)
			c.Set("role", claims.Role)
		}
		c.Next()
	}
}

// AdminOnly gates admin routes on the role claim.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != "admin" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "error": "admin access required"})
			return
		}
		c.Next()
	}
}
