// internal/interfaces/http/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService *product.Service
	logger         *logrus.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *product.Service, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// GetProducts handles GET /products. A catalog failure is logged and
// answered with an empty list.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.productService.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch products")
		products = []product.Product{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		if !errors.Is(err, product.ErrProductNotFound) {
			h.logger.WithError(err).WithField("product_id", id).Error("Failed to fetch product")
		}
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    detail,
	})
}

// GetCategories handles GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.Categories(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to fetch categories")
		categories = []product.Category{}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Categories retrieved successfully",
		"data":    categories,
	})
}
