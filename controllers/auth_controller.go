package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"divyakart/database"
	"divyakart/identity"
	"divyakart/middleware"
	"divyakart/services"
	"divyakart/store"
)

type AuthController struct {
	provider identity.Provider
	users    *services.UserService
	store    store.Store
	secret   []byte
	log      *zap.Logger
}

func NewAuthController(provider identity.Provider, users *services.UserService, st store.Store, secret []byte, log *zap.Logger) *AuthController {
	return &AuthController{provider: provider, users: users, store: st, secret: secret, log: log}
}

// RequestOTP forwards the phone number to the identity provider; the OTP
// never passes through this service.
func (a *AuthController) RequestOTP(c *gin.Context) {
	var input struct {
		Phone string `json:"phone" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "phone is required")
		return
	}

	requestID, err := a.provider.RequestOTP(c.Request.Context(), input.Phone)
	if err != nil {
		a.log.Error("otp request failed", zap.String("phone", input.Phone), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "failed to send OTP")
		return
	}
	respondOK(c, gin.H{"requestId": requestID})
}

// VerifyOTP exchanges the provider's identity token for an internal
// session: an HTTP-only cookie plus the token in the body as a fallback.
func (a *AuthController) VerifyOTP(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "token is required")
		return
	}

	phone, err := a.provider.VerifyToken(c.Request.Context(), input.Token)
	if err != nil {
		if errors.Is(err, identity.ErrVerificationFailed) {
			respondError(c, http.StatusUnauthorized, "identity verification failed")
			return
		}
		a.log.Error("identity provider error", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "identity provider unavailable")
		return
	}

	user, err := a.users.EnsureUser(c.Request.Context(), phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := middleware.GenerateToken(a.secret, phone, user.ID, user.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue session")
		return
	}
	middleware.SetSessionCookie(c, token)
	respondOK(c, gin.H{
		"token":           token,
		"user":            user,
		"profileComplete": user.ProfileComplete(),
	})
}

// AdminLogin authenticates dashboard users by email and password.
func (a *AuthController) AdminLogin(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "email and password are required")
		return
	}

	admin, err := a.users.AuthenticateAdmin(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	token, err := middleware.GenerateToken(a.secret, admin.Phone, admin.ID, admin.Role)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "failed to issue session")
		return
	}
	middleware.SetSessionCookie(c, token)
	respondOK(c, gin.H{"token": token, "user": admin})
}

// Logout revokes the current session token.
func (a *AuthController) Logout(c *gin.Context) {
	token := c.GetString("sessionToken")
	if token != "" {
		_, err := a.store.Create(c.Request.Context(), database.RevokedTokens, map[string]any{
			"token":     token,
			"revokedAt": time.Now(),
		})
		if err != nil {
			respondError(c, http.StatusInternalServerError, "failed to revoke session")
			return
		}
	}
	middleware.SetSessionCookie(c, "")
	respondOK(c, gin.H{"message": "logged out"})
}
