package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"travelnest/internal/domain"
	"travelnest/internal/domain/models"
	"travelnest/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	adminIDKey       = "admin_id"
	adminUsernameKey = "admin_username"
)

type TokenValidator interface {
	Validate(token string) (*services.AdminClaims, error)
}

type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (models.Admin, error)
}

// AdminAuth gates admin routes. It accepts "Bearer <jwt>" issued by the login
// endpoint, or HTTP Basic credentials checked against the admins table.
func AdminAuth(tokens TokenValidator, creds CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			abortUnauthorized(c, "MISSING_AUTH_HEADER", "Authorization header is required")
			return
		}

		scheme, value, _ := strings.Cut(header, " ")
		value = strings.TrimSpace(value)

		switch strings.ToLower(scheme) {
		case "bearer":
			if value == "" {
				abortUnauthorized(c, "INVALID_AUTH_FORMAT", "Authorization header format must be Bearer {token}")
				return
			}
			claims, err := tokens.Validate(value)
			if err != nil {
				if errors.Is(err, services.ErrTokenExpired) {
					abortUnauthorized(c, "TOKEN_EXPIRED", "token has expired")
					return
				}
				abortUnauthorized(c, "INVALID_TOKEN", "invalid token")
				return
			}
			c.Set(adminIDKey, claims.AdminID)
			c.Set(adminUsernameKey, claims.Username)

		case "basic":
			username, password, ok := c.Request.BasicAuth()
			if !ok {
				abortUnauthorized(c, "INVALID_AUTH_FORMAT", "malformed basic credentials")
				return
			}
			admin, err := creds.VerifyCredentials(c.Request.Context(), username, password)
			if err != nil {
				if domain.IsUnauthorized(err) {
					abortUnauthorized(c, "INVALID_CREDENTIALS", "Invalid admin credentials")
					return
				}
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":      "failed to verify credentials",
					"code":       "internal_error",
					"request_id": GetRequestID(c),
				})
				return
			}
			c.Set(adminIDKey, admin.ID)
			c.Set(adminUsernameKey, admin.Username)

		default:
			abortUnauthorized(c, "INVALID_AUTH_FORMAT", "Authorization header format must be Bearer {token}")
			return
		}

		c.Next()
	}
}

// GetAdminID returns the authenticated admin id, if any.
func GetAdminID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(adminIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", `Basic realm="travelnest-admin"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      message,
		"code":       code,
		"request_id": GetRequestID(c),
	})
}
