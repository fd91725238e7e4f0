package controllers

import (
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
)

// SuggestionController handles HTTP requests for the AI suggestion review.
type SuggestionController struct {
	suggestionService services.SuggestionService
	validator         *RequestValidator
}

// NewSuggestionController creates a new SuggestionController.
func NewSuggestionController(suggestionService services.SuggestionService, validator *RequestValidator) *SuggestionController {
	return &SuggestionController{suggestionService: suggestionService, validator: validator}
}

// ListSuggestions handles GET /dashboard/suggestions.
func (sc *SuggestionController) ListSuggestions(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := sc.validator.ParsePage(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, svcErr := sc.suggestionService.List(ctx.Request.Context(), sellerID, ctx.Query("status"), page)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// AcceptSuggestion handles POST /dashboard/suggestions/:id/accept.
func (sc *SuggestionController) AcceptSuggestion(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := sc.suggestionService.Accept(ctx.Request.Context(), sellerID, ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

// RejectSuggestion handles POST /dashboard/suggestions/:id/reject.
func (sc *SuggestionController) RejectSuggestion(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	view, svcErr := sc.suggestionService.Reject(ctx.Request.Context(), sellerID, ctx.Param("id"))
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}
