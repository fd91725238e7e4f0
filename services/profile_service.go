package services

import (
	"context"
	"io"
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/cache"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"go.uber.org/zap"
)

// ProfileService manages the seller's own account card.
type ProfileService interface {
	Get(ctx context.Context, sellerID string) (*models.SupplierProfile, *ServiceError)
	Update(ctx context.Context, sellerID string, req models.UpdateProfileRequest) (*models.SupplierProfile, *ServiceError)
	UploadAvatar(ctx context.Context, sellerID, filename string, file io.Reader) (*models.SupplierProfile, *ServiceError)
}

type profileServiceImpl struct {
	marketplace *clients.MarketplaceClient
	cache       *cache.Store
	logger      *zap.Logger
}

// NewProfileService creates a new ProfileService.
func NewProfileService(marketplace *clients.MarketplaceClient, cacheStore *cache.Store, logger *zap.Logger) ProfileService {
	return &profileServiceImpl{
		marketplace: marketplace,
		cache:       cacheStore,
		logger:      logger,
	}
}

// Get returns the seller's profile, served from cache when possible.
func (s *profileServiceImpl) Get(ctx context.Context, sellerID string) (*models.SupplierProfile, *ServiceError) {
	var profile models.SupplierProfile
	if s.cache.Get(ctx, cache.TagProfile, sellerID, &profile) {
		return &profile, nil
	}

	fetched, err := s.marketplace.GetProfile(ctx, sellerID)
	if err != nil {
		if clients.IsNotFound(err) {
			return nil, &ServiceError{StatusCode: http.StatusNotFound, Message: "Profile not found"}
		}
		s.logger.Error("Failed to fetch profile",
			zap.String("supplier_id", sellerID), zap.Error(err))
		return nil, upstreamError(err, "Failed to load profile")
	}

	s.cache.SetAsync(cache.TagProfile, sellerID, fetched)
	return fetched, nil
}

// Update replaces the editable profile fields.
func (s *profileServiceImpl) Update(ctx context.Context, sellerID string, req models.UpdateProfileRequest) (*models.SupplierProfile, *ServiceError) {
	updated, err := s.marketplace.UpdateProfile(ctx, sellerID, req)
	if err != nil {
		s.logger.Error("Failed to update profile",
			zap.String("supplier_id", sellerID), zap.Error(err))
		return nil, upstreamError(err, "Failed to update profile")
	}

	s.cache.Invalidate(ctx, cache.TagProfile)
	s.logger.Info("Profile updated", zap.String("supplier_id", sellerID))
	return updated, nil
}

// UploadAvatar forwards a new profile image.
func (s *profileServiceImpl) UploadAvatar(ctx context.Context, sellerID, filename string, file io.Reader) (*models.SupplierProfile, *ServiceError) {
	updated, err := s.marketplace.UploadAvatar(ctx, sellerID, filename, file)
	if err != nil {
		s.logger.Error("Failed to upload avatar",
			zap.String("supplier_id", sellerID), zap.String("filename", filename), zap.Error(err))
		return nil, upstreamError(err, "Failed to upload avatar")
	}

	s.cache.Invalidate(ctx, cache.TagProfile)
	s.logger.Info("Avatar updated", zap.String("supplier_id", sellerID))
	return updated, nil
}
