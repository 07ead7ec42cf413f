// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/pkg/navigation"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
)

// OrderHandler handles checkout and order confirmation endpoints
type OrderHandler struct {
	checkoutService     *checkout.Service
	confirmationService *order.ConfirmationService
	pdfService          *pdf.Service
	logger              *logrus.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(checkoutService *checkout.Service, confirmationService *order.ConfirmationService, pdfService *pdf.Service, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		checkoutService:     checkoutService,
		confirmationService: confirmationService,
		pdfService:          pdfService,
		logger:              logger,
	}
}

// PlaceOrder handles POST /checkout
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	var req checkout.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	snapshot, err := h.checkoutService.PlaceOrder(c.Request.Context(), sessionID, &req)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Cart is empty",
			})
			return
		}
		h.logger.WithError(err).Error("Checkout failed")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to place order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    snapshot,
	})
}

// GetConfirmation handles GET /orders/confirmation. Without an order the
// shopper is sent home.
func (h *OrderHandler) GetConfirmation(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	confirmation, ok := h.loadConfirmation(c, sessionID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order confirmation retrieved successfully",
		"data":    confirmation,
	})
}

// ContinueShopping handles POST /orders/confirmation/continue
func (h *OrderHandler) ContinueShopping(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	redirect, err := h.confirmationService.ContinueShopping(c.Request.Context(), sessionID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to clear cart after order")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to continue shopping",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared",
		"data":    gin.H{"redirect": redirect},
	})
}

// DownloadInvoice handles GET /orders/confirmation/invoice
func (h *OrderHandler) DownloadInvoice(c *gin.Context) {
	sessionID, ok := requireSession(c)
	if !ok {
		return
	}

	confirmation, ok := h.loadConfirmation(c, sessionID)
	if !ok {
		return
	}

	buf, err := h.pdfService.GenerateInvoice(confirmation)
	if err != nil {
		if errors.Is(err, pdf.ErrDisabled) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Invoice download is not available",
			})
			return
		}
		h.logger.WithError(err).Error("Failed to generate invoice")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	name := "invoice.pdf"
	if confirmation.OrderNumber != "" {
		name = fmt.Sprintf("invoice-%s.pdf", confirmation.OrderNumber)
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func (h *OrderHandler) loadConfirmation(c *gin.Context, sessionID string) (*order.Confirmation, bool) {
	confirmation, err := h.confirmationService.Load(c.Request.Context(), sessionID)
	if err != nil {
		if !errors.Is(err, order.ErrNoOrder) {
			h.logger.WithError(err).Error("Failed to load order confirmation")
		}
		c.Redirect(http.StatusSeeOther, navigation.Home)
		return nil, false
	}
	return confirmation, true
}
