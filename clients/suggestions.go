package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
)

type suggestionPage struct {
	Items   []models.AISuggestion `json:"items"`
	Total   int                   `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}

// ListSuggestions fetches one page of AI suggestions scoped to a supplier.
// An empty status means no filter.
func (c *MarketplaceClient) ListSuggestions(ctx context.Context, supplierID, status string, page, perPage int) ([]models.AISuggestion, int, error) {
	query := url.Values{}
	query.Set("supplier_id", supplierID)
	if status != "" {
		query.Set("status", status)
	}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var out suggestionPage
	if err := c.getJSON(ctx, "/admin/ai/suggestions", query, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

// AcceptSuggestion asks the marketplace to apply a suggestion. The returned
// suggestion carries the server's applied_status, which is ground truth.
func (c *MarketplaceClient) AcceptSuggestion(ctx context.Context, id string) (*models.AISuggestion, error) {
	path := fmt.Sprintf("/admin/ai/suggestions/%s/accept", url.PathEscape(id))
	var out models.AISuggestion
	if err := c.sendJSON(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RejectSuggestion marks a suggestion rejected without touching its target.
func (c *MarketplaceClient) RejectSuggestion(ctx context.Context, id string) (*models.AISuggestion, error) {
	path := fmt.Sprintf("/admin/ai/suggestions/%s/reject", url.PathEscape(id))
	var out models.AISuggestion
	if err := c.sendJSON(ctx, http.MethodPatch, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
