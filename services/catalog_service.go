package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/cache"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"go.uber.org/zap"
)

// CatalogService covers the seller's published items and parsed offer
// candidates.
type CatalogService interface {
	Items(ctx context.Context, sellerID, search string, page int) (*ItemListView, *ServiceError)
	DeleteItem(ctx context.Context, sellerID, itemID string) *ServiceError
	BulkItems(ctx context.Context, sellerID string, req models.BulkActionRequest) (*models.BulkActionResult, *ServiceError)
	Candidates(ctx context.Context, sellerID, importID string, page int) (*CandidateListView, *ServiceError)
	BulkCandidates(ctx context.Context, sellerID string, req models.BulkActionRequest) (*models.BulkActionResult, *ServiceError)
}

type catalogServiceImpl struct {
	marketplace *clients.MarketplaceClient
	cache       *cache.Store
	logger      *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(marketplace *clients.MarketplaceClient, cacheStore *cache.Store, logger *zap.Logger) CatalogService {
	return &catalogServiceImpl{
		marketplace: marketplace,
		cache:       cacheStore,
		logger:      logger,
	}
}

type itemListPage struct {
	Items []models.SupplierItem `json:"items"`
	Total int                   `json:"total"`
}

type candidateListPage struct {
	Items []models.OfferCandidate `json:"items"`
	Total int                     `json:"total"`
}

// Items returns one page of the published catalog, optionally filtered by a
// search string.
func (s *catalogServiceImpl) Items(ctx context.Context, sellerID, search string, page int) (*ItemListView, *ServiceError) {
	if page < 1 {
		page = 1
	}

	var listPage itemListPage
	cacheKey := fmt.Sprintf("%s:q:%s:p%d", sellerID, search, page)
	if !s.cache.Get(ctx, cache.TagSupplierItems, cacheKey, &listPage) {
		items, total, err := s.marketplace.ListSupplierItems(ctx, sellerID, search, page, CatalogPageSize)
		if err != nil {
			s.logger.Error("Failed to list supplier items",
				zap.String("supplier_id", sellerID), zap.Error(err))
			return nil, upstreamError(err, "Failed to load catalog items")
		}
		listPage = itemListPage{Items: items, Total: total}
		s.cache.SetAsync(cache.TagSupplierItems, cacheKey, listPage)
	}

	view := &ItemListView{
		Rows:       make([]ItemRowView, 0, len(listPage.Items)),
		Pagination: newPaginationView(page, CatalogPageSize, listPage.Total),
	}
	if listPage.Total == 0 {
		view.EmptyState = "No catalog items yet"
	}
	for _, item := range listPage.Items {
		view.Rows = append(view.Rows, newItemRowView(item))
	}
	return view, nil
}

// DeleteItem removes one published item.
func (s *catalogServiceImpl) DeleteItem(ctx context.Context, sellerID, itemID string) *ServiceError {
	if err := s.marketplace.DeleteSupplierItem(ctx, itemID); err != nil {
		s.logger.Error("Failed to delete supplier item",
			zap.String("supplier_id", sellerID), zap.String("item_id", itemID), zap.Error(err))
		return upstreamError(err, "Failed to delete the item")
	}

	s.cache.Invalidate(ctx, cache.TagSupplierItems)
	s.logger.Info("Supplier item deleted",
		zap.String("supplier_id", sellerID), zap.String("item_id", itemID))
	return nil
}

// BulkItems applies delete/hide/show to a set of items.
func (s *catalogServiceImpl) BulkItems(ctx context.Context, sellerID string, req models.BulkActionRequest) (*models.BulkActionResult, *ServiceError) {
	switch req.Action {
	case models.ItemActionDelete, models.ItemActionHide, models.ItemActionShow:
	default:
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Unknown bulk action: " + req.Action}
	}

	result, err := s.marketplace.BulkSupplierItemAction(ctx, req)
	if err != nil {
		s.logger.Error("Bulk item action failed",
			zap.String("supplier_id", sellerID), zap.String("action", req.Action),
			zap.Int("ids", len(req.IDs)), zap.Error(err))
		return nil, upstreamError(err, "Failed to apply the bulk action")
	}

	s.cache.Invalidate(ctx, cache.TagSupplierItems)
	s.logger.Info("Bulk item action applied",
		zap.String("supplier_id", sellerID), zap.String("action", req.Action),
		zap.Int("affected", result.Affected))
	return result, nil
}

// Candidates returns one page of parsed rows, optionally scoped to a batch.
func (s *catalogServiceImpl) Candidates(ctx context.Context, sellerID, importID string, page int) (*CandidateListView, *ServiceError) {
	if page < 1 {
		page = 1
	}

	var listPage candidateListPage
	cacheKey := fmt.Sprintf("%s:b:%s:p%d", sellerID, importID, page)
	if !s.cache.Get(ctx, cache.TagOfferCandidates, cacheKey, &listPage) {
		items, total, err := s.marketplace.ListOfferCandidates(ctx, sellerID, importID, page, CatalogPageSize)
		if err != nil {
			s.logger.Error("Failed to list offer candidates",
				zap.String("supplier_id", sellerID), zap.Error(err))
			return nil, upstreamError(err, "Failed to load offer candidates")
		}
		listPage = candidateListPage{Items: items, Total: total}
		s.cache.SetAsync(cache.TagOfferCandidates, cacheKey, listPage)
	}

	view := &CandidateListView{
		Rows:       make([]CandidateRowView, 0, len(listPage.Items)),
		Pagination: newPaginationView(page, CatalogPageSize, listPage.Total),
	}
	if listPage.Total == 0 {
		view.EmptyState = "No offer candidates"
	}
	for _, cand := range listPage.Items {
		view.Rows = append(view.Rows, newCandidateRowView(cand))
	}
	return view, nil
}

// BulkCandidates applies publish/discard to a set of candidates. Publishing
// creates catalog items, so both regions are invalidated.
func (s *catalogServiceImpl) BulkCandidates(ctx context.Context, sellerID string, req models.BulkActionRequest) (*models.BulkActionResult, *ServiceError) {
	switch req.Action {
	case models.CandidateActionPublish, models.CandidateActionDiscard:
	default:
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "Unknown bulk action: " + req.Action}
	}

	result, err := s.marketplace.BulkOfferCandidateAction(ctx, req)
	if err != nil {
		s.logger.Error("Bulk candidate action failed",
			zap.String("supplier_id", sellerID), zap.String("action", req.Action),
			zap.Int("ids", len(req.IDs)), zap.Error(err))
		return nil, upstreamError(err, "Failed to apply the bulk action")
	}

	s.cache.Invalidate(ctx, cache.TagOfferCandidates, cache.TagSupplierItems)
	s.logger.Info("Bulk candidate action applied",
		zap.String("supplier_id", sellerID), zap.String("action", req.Action),
		zap.Int("affected", result.Affected))
	return result, nil
}
