package clients

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
)

// The orders endpoint predates the page/per_page convention and still takes
// limit/offset with a bare {items, total} envelope.
type orderPage struct {
	Items []models.Order `json:"items"`
	Total int            `json:"total"`
}

// ListOrders fetches a window of the seller's orders. An empty status means
// no filter.
func (c *MarketplaceClient) ListOrders(ctx context.Context, supplierID, status string, limit, offset int) ([]models.Order, int, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	query.Set("limit", strconv.Itoa(limit))
	query.Set("offset", strconv.Itoa(offset))

	var out orderPage
	path := fmt.Sprintf("/admin/suppliers/%s/orders", url.PathEscape(supplierID))
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}
