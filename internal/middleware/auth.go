package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zaqqye/evaluasi_backend/internal/models"
)

const (
	// IdentityKey is the gin context key holding the caller's models.Identity.
	IdentityKey  = "identity"
	SessionIDKey = "session_id"
)

// SessionResolver maps a bearer token to the live session id and identity.
type SessionResolver interface {
	ResolveSession(token string) (string, models.Identity, error)
}

func AuthMiddleware(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization header"})
			return
		}

		sessionID, identity, err := sessions.ResolveSession(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Set(SessionIDKey, sessionID)
		c.Next()
	}
}

// bearerToken reads the Authorization header, falling back to the token
// query parameter for websocket upgrades where browsers cannot set headers.
func bearerToken(c *gin.Context) (string, bool) {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		if !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return "", false
		}
		tok := strings.TrimSpace(auth[len("Bearer "):])
		return tok, tok != ""
	}
	if tok := c.Query("token"); tok != "" {
		return tok, true
	}
	return "", false
}

func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := map[models.Role]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		identity, ok := CurrentIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}

func CurrentIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return models.Identity{}, false
	}
	identity, ok := v.(models.Identity)
	return identity, ok
}

func CurrentSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
