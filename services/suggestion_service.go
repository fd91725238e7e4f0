package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/cache"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/format"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"go.uber.org/zap"
)

// SuggestionService defines the AI-suggestion review operations.
type SuggestionService interface {
	List(ctx context.Context, sellerID, status string, page int) (*SuggestionListView, *ServiceError)
	Accept(ctx context.Context, sellerID, suggestionID string) (*DecisionResultView, *ServiceError)
	Reject(ctx context.Context, sellerID, suggestionID string) (*DecisionResultView, *ServiceError)
}

type suggestionServiceImpl struct {
	marketplace *clients.MarketplaceClient
	cache       *cache.Store
	locker      DecisionLocker
	logger      *zap.Logger
}

// NewSuggestionService creates a new SuggestionService.
func NewSuggestionService(marketplace *clients.MarketplaceClient, cacheStore *cache.Store, locker DecisionLocker, logger *zap.Logger) SuggestionService {
	return &suggestionServiceImpl{
		marketplace: marketplace,
		cache:       cacheStore,
		locker:      locker,
		logger:      logger,
	}
}

type suggestionListPage struct {
	Items []models.AISuggestion `json:"items"`
	Total int                   `json:"total"`
}

// List returns one page of suggestions for review. The status filter
// defaults to needs_review.
func (s *suggestionServiceImpl) List(ctx context.Context, sellerID, status string, page int) (*SuggestionListView, *ServiceError) {
	if status == "" {
		status = string(models.AppliedStatusNeedsReview)
	}
	if page < 1 {
		page = 1
	}

	var listPage suggestionListPage
	cacheKey := fmt.Sprintf("%s:%s:p%d", sellerID, status, page)
	if !s.cache.Get(ctx, cache.TagAISuggestions, cacheKey, &listPage) {
		items, total, err := s.marketplace.ListSuggestions(ctx, sellerID, status, page, SuggestionPageSize)
		if err != nil {
			s.logger.Error("Failed to list suggestions",
				zap.String("supplier_id", sellerID), zap.String("status", status), zap.Error(err))
			return nil, upstreamError(err, "Failed to load suggestions")
		}
		listPage = suggestionListPage{Items: items, Total: total}
		s.cache.SetAsync(cache.TagAISuggestions, cacheKey, listPage)
	}

	view := &SuggestionListView{
		Rows:       make([]SuggestionRowView, 0, len(listPage.Items)),
		Status:     status,
		Pagination: newPaginationView(page, SuggestionPageSize, listPage.Total),
	}
	if listPage.Total == 0 {
		view.EmptyState = "Nothing to review"
	}
	for _, item := range listPage.Items {
		view.Rows = append(view.Rows, newSuggestionRowView(item))
	}
	return view, nil
}

// Accept applies a suggestion to its target entity. Acceptance mutates
// catalog data, so the catalog regions are invalidated along with the
// suggestion list.
func (s *suggestionServiceImpl) Accept(ctx context.Context, sellerID, suggestionID string) (*DecisionResultView, *ServiceError) {
	return s.decide(ctx, sellerID, suggestionID, true)
}

// Reject marks a suggestion rejected. No catalog data changes, so only the
// suggestion list is invalidated.
func (s *suggestionServiceImpl) Reject(ctx context.Context, sellerID, suggestionID string) (*DecisionResultView, *ServiceError) {
	return s.decide(ctx, sellerID, suggestionID, false)
}

// decide runs one accept/reject under the seller's decision lock. The lock
// is seller-wide, not per suggestion: the review view allows a single
// outstanding decision at a time.
func (s *suggestionServiceImpl) decide(ctx context.Context, sellerID, suggestionID string, accept bool) (*DecisionResultView, *ServiceError) {
	action := "reject"
	if accept {
		action = "accept"
	}

	release, err := s.locker.Lock(ctx, sellerID)
	if errors.Is(err, ErrDecisionInProgress) {
		return nil, &ServiceError{StatusCode: http.StatusConflict, Message: "A decision is already in progress"}
	} else if err != nil {
		s.logger.Error("Failed to obtain decision lock",
			zap.String("supplier_id", sellerID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to obtain decision lock"}
	}
	defer release()

	var updated *models.AISuggestion
	if accept {
		updated, err = s.marketplace.AcceptSuggestion(ctx, suggestionID)
	} else {
		updated, err = s.marketplace.RejectSuggestion(ctx, suggestionID)
	}
	if err != nil {
		s.logger.Error("Suggestion decision failed",
			zap.String("supplier_id", sellerID), zap.String("suggestion_id", suggestionID),
			zap.String("action", action), zap.Error(err))
		return nil, upstreamError(err, "Failed to "+action+" the suggestion")
	}

	if accept {
		s.cache.Invalidate(ctx, cache.TagAISuggestions, cache.TagSupplierItems, cache.TagOfferCandidates)
	} else {
		s.cache.Invalidate(ctx, cache.TagAISuggestions)
	}

	s.logger.Info("Suggestion decision applied",
		zap.String("supplier_id", sellerID), zap.String("suggestion_id", suggestionID),
		zap.String("action", action), zap.String("applied_status", string(updated.AppliedStatus)))

	message := "Suggestion rejected"
	if accept {
		message = "Suggestion applied"
	}
	return &DecisionResultView{
		ID:            updated.ID,
		AppliedStatus: updated.AppliedStatus,
		Badge:         format.SuggestionBadge(updated.AppliedStatus),
		Message:       message,
	}, nil
}
