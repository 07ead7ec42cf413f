// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	logger          *logrus.Logger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service, logger *logrus.Logger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	resp, err := h.wishlistService.GetWishlist(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load wishlist")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    resp,
	})
}

// GetWishlistCount handles GET /wishlist/count
func (h *WishlistHandler) GetWishlistCount(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	count, err := h.wishlistService.Count(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to count wishlist")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve wishlist count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist count retrieved successfully",
		"data":    gin.H{"count": count},
	})
}

// AddToWishlist handles POST /wishlist/items
func (h *WishlistHandler) AddToWishlist(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req wishlist.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	resp, err := h.wishlistService.AddItem(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		h.writeError(c, err, "Failed to add item to wishlist")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Item added to wishlist successfully",
		"data":    resp,
	})
}

// ToggleWishlistItem handles POST /wishlist/items/:id/toggle
func (h *WishlistHandler) ToggleWishlistItem(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	resp, err := h.wishlistService.ToggleItem(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to update wishlist")
		return
	}

	message := "Item removed from wishlist"
	if resp.InWishlist {
		message = "Item added to wishlist"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"data":    resp,
	})
}

// RemoveFromWishlist handles DELETE /wishlist/items/:id
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	resp, err := h.wishlistService.RemoveItem(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		h.writeError(c, err, "Failed to remove item from wishlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist successfully",
		"data":    resp,
	})
}

func (h *WishlistHandler) writeError(c *gin.Context, err error, message string) {
	if errors.Is(err, product.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	h.logger.WithError(err).Error(message)
	c.JSON(http.StatusInternalServerError, gin.H{"error": message})
}
