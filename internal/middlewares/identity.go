package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"crowdfund/internal/responses"
)

// userIDKey is the gin context key holding the caller's identity.
const userIDKey = "userId"

// Identity reads the X-User-ID header set by the upstream authentication
// gateway. The header is optional; handlers that need it use RequireIdentity.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader("X-User-ID"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(userIDKey, id)
			}
		}
		c.Next()
	}
}

// RequireIdentity rejects requests without a valid X-User-ID header.
func RequireIdentity(c *gin.Context) {
	if _, exists := c.Get(userIDKey); !exists {
		responses.Fail(c, http.StatusUnauthorized, nil, "Unauthorized")
		c.Abort()
		return
	}
	c.Next()
}

// CurrentUserID returns the caller's ID, or uuid.Nil for anonymous requests.
func CurrentUserID(c *gin.Context) uuid.UUID {
	if v, exists := c.Get(userIDKey); exists {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
