package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/foodgram/backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// respondError maps the service error taxonomy to HTTP statuses. Unknown
// errors become opaque 500s; the message is never leaked.
func respondError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermission):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// currentUserID extracts the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// optionalUserID returns a nil pointer for anonymous requests.
func optionalUserID(c *gin.Context) *uuid.UUID {
	if id, ok := currentUserID(c); ok {
		return &id
	}
	return nil
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func queryBool(c *gin.Context, key string) bool {
	switch c.Query(key) {
	case "1", "true", "True":
		return true
	}
	return false
}
