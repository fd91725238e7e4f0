package controllers

import (
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
)

// CatalogController handles HTTP requests for the seller's published items
// and their pending offer candidates.
type CatalogController struct {
	catalogService services.CatalogService
	validator      *RequestValidator
}

// NewCatalogController creates a new CatalogController.
func NewCatalogController(catalogService services.CatalogService, validator *RequestValidator) *CatalogController {
	return &CatalogController{catalogService: catalogService, validator: validator}
}

// ListItems handles GET /dashboard/catalog/items.
func (cc *CatalogController) ListItems(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := cc.validator.ParsePage(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, svcErr := cc.catalogService.Items(ctx.Request.Context(), sellerID, ctx.Query("search"), page)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// DeleteItem handles DELETE /dashboard/catalog/items/:id. The confirmation
// is enforced server-side the same way as batch deletion.
func (cc *CatalogController) DeleteItem(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if ctx.Query("confirm") != "true" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Deleting an item removes it from your storefront. Pass confirm=true to proceed."})
		return
	}

	if svcErr := cc.catalogService.DeleteItem(ctx.Request.Context(), sellerID, ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// BulkItems handles POST /dashboard/catalog/items/bulk.
func (cc *CatalogController) BulkItems(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BulkActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := cc.catalogService.BulkItems(ctx.Request.Context(), sellerID, req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}

// ListCandidates handles GET /dashboard/catalog/candidates.
func (cc *CatalogController) ListCandidates(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := cc.validator.ParsePage(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, svcErr := cc.catalogService.Candidates(ctx.Request.Context(), sellerID, ctx.Query("import_id"), page)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// BulkCandidates handles POST /dashboard/catalog/candidates/bulk.
func (cc *CatalogController) BulkCandidates(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.BulkActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	result, svcErr := cc.catalogService.BulkCandidates(ctx.Request.Context(), sellerID, req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
