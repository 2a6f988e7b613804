package auth

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rsydfhmy03/SEA-Catering/internal/api"
)

const principalKey = "principal"

// AuthMiddleware resolves the bearer token into a Principal.
func AuthMiddleware(issuer *TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			api.Unauthorized(c, "Unauthorized. Please login.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(strings.TrimSpace(parts[0]), "Bearer") {
			api.Unauthorized(c, "Invalid authorization header format")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			api.Unauthorized(c, "Token is empty")
			return
		}

		principal, err := issuer.ValidateAccessToken(tokenString)
		if err != nil {
			switch {
			case errors.Is(err, ErrTokenExpired):
				api.Unauthorized(c, "Token expired")
			case errors.Is(err, ErrInvalidTokenType):
				api.Unauthorized(c, "Access token required")
			default:
				api.Unauthorized(c, "Invalid or malformed token")
			}
			return
		}

		SetPrincipal(c, principal)
		c.Next()
	}
}

func RequireRole(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			api.Unauthorized(c, "Unauthorized. Please login.")
			return
		}

		if principal.Role != requiredRole {
			api.Forbidden(c, "Insufficient permissions")
			return
		}

		c.Next()
	}
}

func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(principalKey, p)
}

func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}

	p, ok := v.(Principal)
	if !ok || p.UserID == "" {
		return Principal{}, false
	}

	return p, true
}

func GetUserID(c *gin.Context) (string, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return "", false
	}
	return p.UserID, true
}

// GetUserUUID returns the caller's id parsed as a UUID.
func GetUserUUID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return uuid.Nil, false
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}
