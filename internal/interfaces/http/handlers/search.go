package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/search"
)

// SearchHandler handles product search endpoints
type SearchHandler struct {
	searchService *search.Service
	logger        *logrus.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService *search.Service, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search handles GET /search?q=. A search failure is logged and answered
// with an empty result; a search overtaken by a newer one gets 409.
func (h *SearchHandler) Search(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	query := c.Query("q")

	result, err := h.searchService.Search(c.Request.Context(), sessionID, query)
	if err != nil {
		if errors.Is(err, search.ErrSuperseded) {
			c.JSON(http.StatusConflict, gin.H{
				"error": err.Error(),
			})
			return
		}
		h.logger.WithError(err).WithField("query", query).Error("Search failed")
		result = search.Result{Query: query, Products: []product.Product{}}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Search completed successfully",
		"data":    result,
	})
}

// GetLatest handles GET /search/latest
func (h *SearchHandler) GetLatest(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Latest search retrieved successfully",
		"data":    h.searchService.Latest(sessionID),
	})
}
