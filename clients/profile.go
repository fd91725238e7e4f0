package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
)

// GetProfile fetches the seller's account card.
func (c *MarketplaceClient) GetProfile(ctx context.Context, supplierID string) (*models.SupplierProfile, error) {
	var out models.SupplierProfile
	path := fmt.Sprintf("/admin/suppliers/%s/profile", url.PathEscape(supplierID))
	if err := c.getJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile replaces the editable profile fields.
func (c *MarketplaceClient) UpdateProfile(ctx context.Context, supplierID string, req models.UpdateProfileRequest) (*models.SupplierProfile, error) {
	var out models.SupplierProfile
	path := fmt.Sprintf("/admin/suppliers/%s/profile", url.PathEscape(supplierID))
	if err := c.sendJSON(ctx, http.MethodPut, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UploadAvatar sends a new profile image as multipart form data.
func (c *MarketplaceClient) UploadAvatar(ctx context.Context, supplierID, filename string, file io.Reader) (*models.SupplierProfile, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	path := fmt.Sprintf("/admin/suppliers/%s/avatar", url.PathEscape(supplierID))
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var out models.SupplierProfile
	if err := c.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
