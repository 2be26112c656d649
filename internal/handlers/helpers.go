package handlers

import (
	"errors"
	"net/http"

	"perfume-shop-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps service-level failures onto HTTP statuses. Store
// failures are retryable and reported as 503 so operators retry the same
// action instead of treating it as fatal.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrUnknownType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCreds):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrPageUnknown),
		errors.Is(err, service.ErrLayoutNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUploadTimeout), errors.Is(err, service.ErrUploadFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable, retry the operation"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
