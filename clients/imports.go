package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
)

type importPage struct {
	Items   []models.ImportBatch `json:"items"`
	Total   int                  `json:"total"`
	Page    int                  `json:"page"`
	PerPage int                  `json:"per_page"`
}

// ListImports fetches one page of the seller's import history.
func (c *MarketplaceClient) ListImports(ctx context.Context, supplierID string, page, perPage int) ([]models.ImportBatch, int, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	var out importPage
	path := fmt.Sprintf("/admin/suppliers/%s/imports", url.PathEscape(supplierID))
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}

// UploadPriceList sends a price-list file as multipart form data and returns
// the created batch.
func (c *MarketplaceClient) UploadPriceList(ctx context.Context, supplierID, filename, description string, file io.Reader) (*models.ImportBatch, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if description != "" {
		if err := writer.WriteField("description", description); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/admin/suppliers/%s/imports/csv", url.PathEscape(supplierID))
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var batch models.ImportBatch
	if err := c.doJSON(req, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}

// ReparseImport asks the marketplace to re-run parsing on a stored batch.
func (c *MarketplaceClient) ReparseImport(ctx context.Context, batchID string) error {
	path := fmt.Sprintf("/admin/imports/%s/reparse", url.PathEscape(batchID))
	return c.sendJSON(ctx, http.MethodPost, path, nil, nil)
}

// DeleteImport removes a batch; the marketplace also removes its derived
// offer candidates.
func (c *MarketplaceClient) DeleteImport(ctx context.Context, batchID string) error {
	path := fmt.Sprintf("/admin/imports/%s", url.PathEscape(batchID))
	return c.sendJSON(ctx, http.MethodDelete, path, nil, nil)
}

type parseEventPage struct {
	Items []models.ParseEvent `json:"items"`
	Total int                 `json:"total"`
}

// ListParseEvents fetches diagnostic events for one batch, filtered by
// severity. Total counts all matching events, not just the returned page.
func (c *MarketplaceClient) ListParseEvents(ctx context.Context, batchID, severity string, limit int) ([]models.ParseEvent, int, error) {
	query := url.Values{}
	if severity != "" {
		query.Set("severity", severity)
	}
	query.Set("limit", strconv.Itoa(limit))

	var out parseEventPage
	path := fmt.Sprintf("/admin/imports/%s/events", url.PathEscape(batchID))
	if err := c.getJSON(ctx, path, query, &out); err != nil {
		return nil, 0, err
	}
	return out.Items, out.Total, nil
}
