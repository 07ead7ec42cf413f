package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

const sessionIDKey = "session_id"

// Session resolves the shopper's session from the session cookie, the
// session header or a bearer token. A missing or invalid token starts a new
// session, which is returned in both the cookie and the header.
func Session(cfg *config.Config, sessions *auth.SessionManager, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := sessionToken(c, cfg); token != "" {
			sessionID, err := sessions.Validate(token)
			if err == nil {
				c.Set(sessionIDKey, sessionID)
				c.Next()
				return
			}
			logger.WithError(err).Debug("Discarding invalid session token")
		}

		sessionID, token, err := sessions.NewSession()
		if err != nil {
			logger.WithError(err).Error("Failed to issue session token")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to start session",
			})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.Session.CookieName, token, int(sessions.TTL().Seconds()), "/", "", cfg.Session.Secure, true)
		c.Header(cfg.Session.HeaderName, token)

		c.Set(sessionIDKey, sessionID)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cfg *config.Config) string {
	if cookie, err := c.Cookie(cfg.Session.CookieName); err == nil && cookie != "" {
		return cookie
	}
	if header := c.GetHeader(cfg.Session.HeaderName); header != "" {
		return header
	}
	return auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
}

// GetSessionID returns the session id set by Session
func GetSessionID(c *gin.Context) (string, bool) {
	sessionID := c.GetString(sessionIDKey)
	return sessionID, sessionID != ""
}
