// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/domain/analytics"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/comparison"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/product"
	"github.com/your-org/storefront-backend/internal/domain/search"
	"github.com/your-org/storefront-backend/internal/domain/wishlist"
	"github.com/your-org/storefront-backend/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
)

// Services holds the domain services behind the API
type Services struct {
	Products     *product.Service
	Cart         *cart.Service
	Wishlist     *wishlist.Service
	Comparison   *comparison.Service
	Search       *search.Service
	Checkout     *checkout.Service
	Confirmation *order.ConfirmationService
	PDF          *pdf.Service
	Analytics    *analytics.Service
}

// SetupProductRoutes sets up catalog related routes
func SetupProductRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	productHandler := handlers.NewProductHandler(svc.Products, logger)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	rg.GET("/categories", productHandler.GetCategories)
}

// SetupSearchRoutes sets up product search routes
func SetupSearchRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	searchHandler := handlers.NewSearchHandler(svc.Search, logger)

	searchGroup := rg.Group("/search")
	{
		searchGroup.GET("", searchHandler.Search)
		searchGroup.GET("/latest", searchHandler.GetLatest)
	}
}

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	cartHandler := handlers.NewCartHandler(svc.Cart, logger)

	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.GET("/count", cartHandler.GetCartCount)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
	}
}

// SetupWishlistRoutes sets up wishlist related routes
func SetupWishlistRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	wishlistHandler := handlers.NewWishlistHandler(svc.Wishlist, logger)

	wishlistGroup := rg.Group("/wishlist")
	{
		wishlistGroup.GET("", wishlistHandler.GetWishlist)
		wishlistGroup.GET("/count", wishlistHandler.GetWishlistCount)
		wishlistGroup.POST("/items", wishlistHandler.AddToWishlist)
		wishlistGroup.POST("/items/:id/toggle", wishlistHandler.ToggleWishlistItem)
		wishlistGroup.DELETE("/items/:id", wishlistHandler.RemoveFromWishlist)
	}
}

// SetupComparisonRoutes sets up product comparison routes
func SetupComparisonRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	comparisonHandler := handlers.NewComparisonHandler(svc.Comparison, logger)

	comparisonGroup := rg.Group("/comparison")
	{
		comparisonGroup.GET("", comparisonHandler.GetComparison)
		comparisonGroup.POST("/items/:id/toggle", comparisonHandler.ToggleComparison)
		comparisonGroup.DELETE("", comparisonHandler.ClearComparison)
	}
}

// SetupOrderRoutes sets up checkout and order confirmation routes
func SetupOrderRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	orderHandler := handlers.NewOrderHandler(svc.Checkout, svc.Confirmation, svc.PDF, logger)

	rg.POST("/checkout", orderHandler.PlaceOrder)

	confirmation := rg.Group("/orders/confirmation")
	{
		confirmation.GET("", orderHandler.GetConfirmation)
		confirmation.POST("/continue", orderHandler.ContinueShopping)
		confirmation.GET("/invoice", orderHandler.DownloadInvoice)
	}
}

// SetupAnalyticsRoutes sets up dashboard routes
func SetupAnalyticsRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics, logger)

	analyticsGroup := rg.Group("/analytics")
	{
		analyticsGroup.GET("/dashboard", analyticsHandler.GetDashboard)
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, svc *Services, logger *logrus.Logger) {
	SetupProductRoutes(rg, svc, logger)
	SetupSearchRoutes(rg, svc, logger)
	SetupCartRoutes(rg, svc, logger)
	SetupWishlistRoutes(rg, svc, logger)
	SetupComparisonRoutes(rg, svc, logger)
	SetupOrderRoutes(rg, svc, logger)
	SetupAnalyticsRoutes(rg, svc, logger)
}
