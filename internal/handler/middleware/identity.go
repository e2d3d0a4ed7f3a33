package middleware

import (
	"errors"
	"net/http"

	"bookswap/internal/handler/httperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserIDHeader carries the caller's identity. The API gateway in front of
// this service authenticates the session and injects the header.
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

type IdentityMiddleware struct{}

func NewIdentityMiddleware() *IdentityMiddleware {
	return &IdentityMiddleware{}
}

func (m *IdentityMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(UserIDHeader)
		if raw == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				errors.New("missing user header"), "User identity required", nil)
			return
		}

		userID, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized,
				err, "Invalid user identity", nil)
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
