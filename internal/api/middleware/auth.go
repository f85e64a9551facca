package middleware

import (
	"errors"
	"net/http"
	"strings"

	"investeasy/internal/api/models"
	"investeasy/internal/identity"

	"github.com/gin-gonic/gin"
)

const claimsKey = "auth.claims"

// Authenticator verifies bearer tokens. *identity.Service implements it.
type Authenticator interface {
	Authenticate(token string) (identity.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller's claims on the context.
func RequireAuth(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError("UNAUTHORIZED", "missing bearer token"))
			return
		}

		claims, err := auth.Authenticate(strings.TrimSpace(token))
		if err != nil {
			code := "INVALID_TOKEN"
			if errors.Is(err, identity.ErrTokenExpired) {
				code = "TOKEN_EXPIRED"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, models.NewError(code, "invalid or expired token"))
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequireAuth.
func ClaimsFrom(c *gin.Context) (identity.Claims, bool) {
	v, ok := c.Get(claimsKey)
	if !ok {
		return identity.Claims{}, false
	}
	claims, ok := v.(identity.Claims)
	return claims, ok
}
