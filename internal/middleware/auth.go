package middleware

import (
	"net/http"
	"strings"

	"github.com/foodgram/backend/internal/service"
	"github.com/gin-gonic/gin"
)

// TokenValidator is an interface for validating JWT tokens
type TokenValidator interface {
	ValidateToken(token string) (*service.TokenClaims, error)
}

// AuthMiddleware creates a middleware that requires a valid bearer token
// and stores the authenticated user id in the gin context.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := bearerClaims(c, validator)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware stores the user id when a valid token is present
// and lets anonymous requests through. Read endpoints use it to compute the
// per-user booleans (is_favorited, is_in_shopping_cart, is_subscribed).
func OptionalAuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := bearerClaims(c, validator); ok {
			c.Set("user_id", claims.UserID)
		}
		c.Next()
	}
}

func bearerClaims(c *gin.Context, validator TokenValidator) (*service.TokenClaims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := validator.ValidateToken(parts[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}
