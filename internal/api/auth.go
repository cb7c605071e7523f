package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/newsdesk-api/internal/models"
	"github.com/newsdesk-api/internal/service"
	"github.com/rs/zerolog"
)

// identityKey is the gin context key holding the resolved identity
const identityKey = "identity"

// authMiddleware resolves the session token and stores the identity in
// the request context. Requests without a valid session are rejected.
func authMiddleware(auth service.AuthService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := sessionToken(c)

		identity, err := auth.Resolve(c.Request.Context(), token)
		if err != nil {
			writeError(c, log, err)
			c.Abort()
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// sessionToken extracts the session token from the X-Session-Token
// header, falling back to a bearer Authorization header.
func sessionToken(c *gin.Context) string {
	if token := c.GetHeader("X-Session-Token"); token != "" {
		return token
	}
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// identityFrom returns the identity resolved by the auth middleware
func identityFrom(c *gin.Context) *models.Identity {
	value, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	identity, _ := value.(*models.Identity)
	return identity
}
