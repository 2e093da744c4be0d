package middleware

import (
	"context"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/taskhive/internal/constants"
	apierrors "github.com/yukikurage/taskhive/internal/errors"
	"github.com/yukikurage/taskhive/internal/models"
)

// TokenVerifier resolves a bearer token to a user ID
type TokenVerifier interface {
	Verify(token string) (uint64, error)
}

// UserLookup loads the user a credential refers to
type UserLookup interface {
	GetUser(ctx context.Context, id uint64) (*models.User, error)
}

// RequireAuth authenticates the request with a bearer token, falling back to
// the cookie session set at login. The resolved user must still exist.
func RequireAuth(tokens TokenVerifier, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var userID uint64

		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			id, err := tokens.Verify(strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")))
			if err != nil {
				rejectUnauthorized(c, "Not authorized, token failed")
				return
			}
			userID = id
		} else {
			id, ok := sessionUserID(sessions.Default(c).Get(constants.ContextKeyUserID))
			if !ok {
				rejectUnauthorized(c, "Not authorized, no token")
				return
			}
			userID = id
		}

		if _, err := users.GetUser(c.Request.Context(), userID); err != nil {
			rejectUnauthorized(c, "Not authorized, user not found")
			return
		}

		// Store user ID in context for easy access in handlers
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

func rejectUnauthorized(c *gin.Context, message string) {
	apierrors.Unauthorized(c, message)
	c.Abort()
}

func sessionUserID(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, v > 0
	case uint:
		return uint64(v), v > 0
	case int:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	case int64:
		if v <= 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}

	v, ok := userID.(uint64)
	return v, ok
}
