package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/comparison"
)

// ComparisonHandler handles product comparison endpoints
type ComparisonHandler struct {
	comparisonService *comparison.Service
	logger            *logrus.Logger
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(comparisonService *comparison.Service, logger *logrus.Logger) *ComparisonHandler {
	return &ComparisonHandler{
		comparisonService: comparisonService,
		logger:            logger,
	}
}

// GetComparison handles GET /comparison
func (h *ComparisonHandler) GetComparison(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	view, err := h.comparisonService.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load comparison")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve comparison",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comparison retrieved successfully",
		"data":    view,
	})
}

// ToggleComparison handles POST /comparison/items/:id/toggle
func (h *ComparisonHandler) ToggleComparison(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	view, err := h.comparisonService.Toggle(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		if errors.Is(err, comparison.ErrNotComparable) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": err.Error(),
			})
			return
		}
		h.logger.WithError(err).Error("Failed to toggle comparison")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to update comparison",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comparison updated successfully",
		"data":    view,
	})
}

// ClearComparison handles DELETE /comparison
func (h *ComparisonHandler) ClearComparison(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	view, err := h.comparisonService.Clear(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to clear comparison")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear comparison",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comparison cleared successfully",
		"data":    view,
	})
}
