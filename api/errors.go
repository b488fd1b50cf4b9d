package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/airreserve/internal/domain"
	"github.com/gin-gonic/gin"
)

// Header names for the already-verified caller identity. Credential checks
// happen upstream; handlers only consume the result.
const (
	HeaderCallerID   = "X-Caller-Id"
	HeaderCallerRole = "X-Caller-Role"

	RoleAdmin = "ADMIN"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidClass),
		errors.Is(err, domain.ErrInvalidFare):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientCapacity),
		errors.Is(err, domain.ErrFlightCancelled),
		errors.Is(err, domain.ErrBookingNotCancellable),
		errors.Is(err, domain.ErrLocatorExhausted):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func abortWith(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

func requireAdmin(c *gin.Context) bool {
	if c.GetHeader(HeaderCallerRole) != RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin role required"})
		return false
	}
	return true
}

func callerID(c *gin.Context) (string, bool) {
	id := c.GetHeader(HeaderCallerID)
	if id == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "caller identity missing"})
		return "", false
	}
	return id, true
}
