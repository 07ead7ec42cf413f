// internal/interfaces/http/handlers/analytics.go
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
)

// AnalyticsHandler handles analytics endpoints
type AnalyticsHandler struct {
	analyticsService *analytics.Service
	logger           *logrus.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.Service, logger *logrus.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetDashboard handles GET /analytics/dashboard?year=
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	year := time.Now().UTC().Year()
	if yearStr := c.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil || y < 1970 || y > 9999 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid year",
			})
			return
		}
		year = y
	}

	dashboard, err := h.analyticsService.GetDashboard(c.Request.Context(), year)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve dashboard statistics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard statistics retrieved successfully",
		"data":    dashboard,
	})
}
