package controllers

import (
	"fmt"
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
)

// ProfileController handles HTTP requests for the seller's account card.
type ProfileController struct {
	profileService services.ProfileService
	validator      *RequestValidator
}

// NewProfileController creates a new ProfileController.
func NewProfileController(profileService services.ProfileService, validator *RequestValidator) *ProfileController {
	return &ProfileController{profileService: profileService, validator: validator}
}

// GetProfile handles GET /dashboard/profile.
func (pc *ProfileController) GetProfile(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, svcErr := pc.profileService.Get(ctx.Request.Context(), sellerID)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile handles PUT /dashboard/profile.
func (pc *ProfileController) UpdateProfile(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	profile, svcErr := pc.profileService.Update(ctx.Request.Context(), sellerID, req)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UploadAvatar handles POST /dashboard/profile/avatar.
func (pc *ProfileController) UploadAvatar(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "An image file is required"})
		return
	}

	if !pc.validator.IsValidAvatarFile(file) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported image format for %s. Allowed: jpg, jpeg, png, webp", file.Filename)})
		return
	}

	if err := pc.validator.ValidateFileSize(file); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	src, err := file.Open()
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer src.Close()

	profile, svcErr := pc.profileService.UploadAvatar(ctx.Request.Context(), sellerID, file.Filename, src)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": profile})
}
