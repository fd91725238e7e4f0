package routes

import (
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/controllers"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardRoutes sets up the seller-facing dashboard routes. Every
// route under /dashboard requires the seller identity header.
func RegisterDashboardRoutes(
	r *gin.Engine,
	ic *controllers.ImportController,
	sc *controllers.SuggestionController,
	oc *controllers.OrderController,
	cc *controllers.CatalogController,
	pc *controllers.ProfileController,
) {
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.SellerContext())

	// Import lifecycle
	dashboard.GET("/imports", ic.ListImports)
	dashboard.POST("/imports", ic.UploadPriceList)
	dashboard.GET("/imports/staged/:id", ic.GetStaged)
	dashboard.POST("/imports/staged/:id/retry", ic.RetryStaged)
	dashboard.DELETE("/imports/staged/:id", ic.DiscardStaged)
	dashboard.POST("/imports/:id/reparse", ic.Reparse)
	dashboard.DELETE("/imports/:id", ic.DeleteImport)

	// Suggestion review
	dashboard.GET("/suggestions", sc.ListSuggestions)
	dashboard.POST("/suggestions/:id/accept", sc.AcceptSuggestion)
	dashboard.POST("/suggestions/:id/reject", sc.RejectSuggestion)

	// Orders
	dashboard.GET("/orders", oc.ListOrders)

	// Catalog
	dashboard.GET("/catalog/items", cc.ListItems)
	dashboard.DELETE("/catalog/items/:id", cc.DeleteItem)
	dashboard.POST("/catalog/items/bulk", cc.BulkItems)
	dashboard.GET("/catalog/candidates", cc.ListCandidates)
	dashboard.POST("/catalog/candidates/bulk", cc.BulkCandidates)

	// Profile
	dashboard.GET("/profile", pc.GetProfile)
	dashboard.PUT("/profile", pc.UpdateProfile)
	dashboard.POST("/profile/avatar", pc.UploadAvatar)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "seller-dashboard"})
	})
}
