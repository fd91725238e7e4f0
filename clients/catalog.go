package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
)

type supplierItemPage struct {
	Items   []models.SupplierItem `json:"items"`
	Total   int                   `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}

// ListSupplierItems fetches one page of the seller's published catalog.
func (c *MarketplaceClient) ListSupplierItems(ctx context.Context, supplierID, search string, page, perPage int) ([]models.SupplierItem, int, error) {
	query := url.Values{}
	query.Set("supplier_id", supplierID)
	if search != "" {
		query.Set("search", search)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var out supplierItemPage
	if err := c.getJSON(ctx, "/admin/supplier-items", query, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

// DeleteSupplierItem removes one catalog item.
func (c *MarketplaceClient) DeleteSupplierItem(ctx context.Context, id string) error {
	path := fmt.Sprintf("/admin/supplier-items/%s", url.PathEscape(id))
	return c.sendJSON(ctx, http.MethodDelete, path, nil, nil)
}

// BulkSupplierItemAction applies delete/hide/show to a set of items.
func (c *MarketplaceClient) BulkSupplierItemAction(ctx context.Context, req models.BulkActionRequest) (*models.BulkActionResult, error) {
	var out models.BulkActionResult
	if err := c.sendJSON(ctx, http.MethodPost, "/admin/supplier-items/bulk", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type candidatePage struct {
	Items   []models.OfferCandidate `json:"items"`
	Total   int                     `json:"total"`
	Page    int                     `json:"page"`
	PerPage int                     `json:"per_page"`
}

// ListOfferCandidates fetches parsed rows, optionally scoped to one batch.
func (c *MarketplaceClient) ListOfferCandidates(ctx context.Context, supplierID, importID string, page, perPage int) ([]models.OfferCandidate, int, error) {
	query := url.Values{}
	query.Set("supplier_id", supplierID)
	if importID != "" {
		query.Set("import_id", importID)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var out candidatePage
	if err := c.getJSON(ctx, "/admin/offer-candidates", query, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

// BulkOfferCandidateAction applies publish/discard to a set of candidates.
func (c *MarketplaceClient) BulkOfferCandidateAction(ctx context.Context, req models.BulkActionRequest) (*models.BulkActionResult, error) {
	var out models.BulkActionResult
	if err := c.sendJSON(ctx, http.MethodPost, "/admin/offer-candidates/bulk", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
