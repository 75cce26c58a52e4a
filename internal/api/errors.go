package api

import (
	"errors"   // Error classification
	"net/http" // HTTP status codes

	"expense_sharing/internal/service" // Domain error taxonomy

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// respondError maps a domain error to its HTTP status code and message body.
// The service layer knows nothing about HTTP; this is the only place the
// taxonomy turns into status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()}) // Referenced entity absent
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Malformed or inconsistent input
	case errors.Is(err, service.ErrInvalidState):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()}) // Operation not permitted in current state
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"}) // Credential failure
	default:
		// Unclassified errors surface as a generic 500 without leaking internals
		logrus.WithField("error", err.Error()).Error("Internal server error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
