package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"divyakart/services"
)

// All endpoints answer with a {success, data|error} envelope.

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": data})
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

// respondServiceError maps domain errors onto HTTP statuses; anything
// unrecognized becomes a 500 with the underlying message attached for
// diagnostics.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrProductNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrBannerNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotOrderOwner):
		respondError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrRetryNotAllowed),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrSignatureInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, err.Error())
	}
}
