package services

import (
	"context"
	"fmt"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/cache"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"go.uber.org/zap"
)

// OrderService exposes the read-only orders view.
type OrderService interface {
	List(ctx context.Context, sellerID, status string, page int) (*OrderListView, *ServiceError)
}

type orderServiceImpl struct {
	marketplace *clients.MarketplaceClient
	cache       *cache.Store
	logger      *zap.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(marketplace *clients.MarketplaceClient, cacheStore *cache.Store, logger *zap.Logger) OrderService {
	return &orderServiceImpl{
		marketplace: marketplace,
		cache:       cacheStore,
		logger:      logger,
	}
}

type orderListPage struct {
	Items []models.Order `json:"items"`
	Total int            `json:"total"`
}

// List returns one page of the seller's orders. The marketplace endpoint
// still speaks limit/offset, so the page number is converted here.
func (s *orderServiceImpl) List(ctx context.Context, sellerID, status string, page int) (*OrderListView, *ServiceError) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * OrderPageSize

	var listPage orderListPage
	cacheKey := fmt.Sprintf("%s:%s:p%d", sellerID, status, page)
	if !s.cache.Get(ctx, cache.TagOrders, cacheKey, &listPage) {
		items, total, err := s.marketplace.ListOrders(ctx, sellerID, status, OrderPageSize, offset)
		if err != nil {
			s.logger.Error("Failed to list orders",
				zap.String("supplier_id", sellerID), zap.String("status", status), zap.Error(err))
			return nil, upstreamError(err, "Failed to load orders")
		}
		listPage = orderListPage{Items: items, Total: total}
		s.cache.SetAsync(cache.TagOrders, cacheKey, listPage)
	}

	view := &OrderListView{
		Rows:       make([]OrderRowView, 0, len(listPage.Items)),
		Pagination: newPaginationView(page, OrderPageSize, listPage.Total),
	}
	if listPage.Total == 0 {
		view.EmptyState = "No orders yet"
	}
	for _, order := range listPage.Items {
		view.Rows = append(view.Rows, newOrderRowView(order))
	}
	return view, nil
}
