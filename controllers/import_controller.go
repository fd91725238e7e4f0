package controllers

import (
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
)

// ImportController handles HTTP requests for the price-list import lifecycle.
type ImportController struct {
	importService services.ImportService
	validator     *RequestValidator
}

// NewImportController creates a new ImportController.
func NewImportController(importService services.ImportService, validator *RequestValidator) *ImportController {
	return &ImportController{importService: importService, validator: validator}
}

// ListImports handles GET /dashboard/imports.
func (ic *ImportController) ListImports(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := ic.validator.ParsePage(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, svcErr := ic.importService.List(ctx.Request.Context(), sellerID, page, ctx.Query("expanded"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// UploadPriceList handles POST /dashboard/imports. Files that fail the
// extension allow-list are rejected before anything is staged or forwarded.
func (ic *ImportController) UploadPriceList(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	description, file, err := ic.validator.ParseUploadRequest(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	view, svcErr := ic.importService.Upload(ctx.Request.Context(), sellerID, file.Filename, description, src)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, view)
}

// RetryStaged handles POST /dashboard/imports/staged/:id/retry.
func (ic *ImportController) RetryStaged(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := ic.importService.RetryStaged(ctx.Request.Context(), sellerID, ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusCreated, view)
}

// GetStaged handles GET /dashboard/imports/staged/:id.
func (ic *ImportController) GetStaged(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := ic.importService.GetStaged(ctx.Request.Context(), sellerID, ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// DiscardStaged handles DELETE /dashboard/imports/staged/:id.
func (ic *ImportController) DiscardStaged(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if svcErr := ic.importService.DiscardStaged(ctx.Request.Context(), sellerID, ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Staged upload discarded"})
}

// Reparse handles POST /dashboard/imports/:id/reparse.
func (ic *ImportController) Reparse(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if svcErr := ic.importService.Reparse(ctx.Request.Context(), sellerID, ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Reparse started"})
}

// DeleteImport handles DELETE /dashboard/imports/:id. Deleting cascades to
// the batch's offer candidates, so the confirmation is enforced server-side:
// without confirm=true nothing is forwarded.
func (ic *ImportController) DeleteImport(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if ctx.Query("confirm") != "true" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Deleting an import also removes its offer candidates. Pass confirm=true to proceed."})
		return
	}

	if svcErr := ic.importService.Delete(ctx.Request.Context(), sellerID, ctx.Param("id")); svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Import deleted"})
}
