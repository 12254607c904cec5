// File: /controllers/errors.go
package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sees-api/services"
)

// respondServiceError is the single mapping from workflow errors to HTTP
// statuses. Unknown errors become opaque 500s; the cause is logged, not
// leaked.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEventNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrNotRegistered):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrAlreadyRegistered),
		errors.Is(err, services.ErrCapacityFull),
		errors.Is(err, services.ErrAlreadyPromoted):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrPaymentRequired):
		c.JSON(http.StatusPaymentRequired, gin.H{"message": err.Error()})
	case errors.Is(err, services.ErrEventInPast),
		errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		fmt.Printf("Unhandled service error: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An unexpected error occurred"})
	}
}
