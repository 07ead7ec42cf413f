package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/interfaces/http/middleware"
)

// requireSession returns the request's session id or answers 401
func requireSession(c *gin.Context) (string, bool) {
	sessionID, exists := middleware.GetSessionID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Session required",
		})
		return "", false
	}
	return sessionID, true
}
