package middleware

import (
	"net/http"
	"strings"

	"biteaffair/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	SessionHeader = "X-Session-Token"
	sessionKey    = "sessionID"
)

// SessionMiddleware resolves the storefront session of a request. A missing,
// expired or forged token starts a fresh anonymous session whose token is
// echoed in the X-Session-Token response header.
func SessionMiddleware(tokens *auth.SessionTokens) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(SessionHeader)
		if token == "" {
			token = bearerToken(c.GetHeader("Authorization"))
		}

		if token != "" {
			if sessionID, err := tokens.ValidateToken(token); err == nil {
				c.Set(sessionKey, sessionID)
				c.Next()
				return
			}
			log.WithField("path", c.FullPath()).Debug("session token rejected, starting a new session")
		}

		sessionID := uuid.New().String()
		fresh, err := tokens.GenerateToken(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not start session"})
			return
		}

		c.Header(SessionHeader, fresh)
		c.Set(sessionKey, sessionID)
		c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
