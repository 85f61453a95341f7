package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/kyool-companion/internal/adapters/api"
	"github.com/comitanigiacomo/kyool-companion/internal/adapters/identity"
)

const (
	authorizationHeader = "Authorization"
	ContextUserIDKey    = "userID"
	ContextTokenKey     = "idToken"
)

// SessionMiddleware resolves the current user from the bearer ID token. A
// request without a header falls back to defaultToken and otherwise proceeds
// anonymously. A header that cannot be read is rejected.
func SessionMiddleware(reader *identity.Reader, defaultToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := defaultToken
		fromHeader := false

		if authHeader := c.GetHeader(authorizationHeader); authHeader != "" {
			tok, ok := identity.BearerToken(authHeader)
			if !ok {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
				return
			}
			raw = tok
			fromHeader = true
		}

		if raw == "" {
			c.Next()
			return
		}

		session, err := reader.Read(raw)
		if err != nil {
			if fromHeader {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
				return
			}
			log.Warn().Err(err).Msg("configured id token is unusable, continuing signed out")
			c.Next()
			return
		}

		c.Set(ContextUserIDKey, session.UserID)
		c.Set(ContextTokenKey, session.Token)
		c.Request = c.Request.WithContext(api.WithBearer(c.Request.Context(), session.Token))

		c.Next()
	}
}

// RequireUser rejects anonymous requests.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetUserID(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) (string, bool) {
	id, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	idStr, ok := id.(string)
	return idStr, ok && idStr != ""
}
