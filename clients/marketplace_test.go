package clients_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/clients"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *clients.MarketplaceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return clients.NewMarketplaceClient(srv.URL, "test-token", 5*time.Second)
}

func TestListImportsQueryAndEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/admin/suppliers/sup-1/imports", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("per_page"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"items": [
				{"id": "b1", "status": "published", "raw_rows_count": 120,
				 "offer_candidates_count": 118, "parse_errors_count": 2,
				 "imported_at": "2026-08-01T10:00:00Z"}
			],
			"total": 11, "page": 2, "per_page": 10
		}`))
	})

	items, total, err := client.ListImports(context.Background(), "sup-1", 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 11, total)
	require.Len(t, items, 1)
	assert.Equal(t, models.ImportStatusPublished, items[0].Status)
	assert.Equal(t, 2, items[0].ParseErrorsCount)
}

func TestUploadPriceListMultipart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/suppliers/sup-1/imports/csv", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "spring price list", r.FormValue("description"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "prices.csv", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "b9", "status": "received", "imported_at": "2026-08-01T10:00:00Z"}`))
	})

	batch, err := client.UploadPriceList(context.Background(), "sup-1", "prices.csv",
		"spring price list", strings.NewReader("name;price\nrose;10\n"))
	require.NoError(t, err)
	assert.Equal(t, "b9", batch.ID)
	assert.Equal(t, models.ImportStatusReceived, batch.Status)
}

func TestAcceptSuggestionPatch(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/admin/ai/suggestions/abc/accept", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "abc", "applied_status": "manual_applied", "suggested_value": "Premium"}`))
	})

	updated, err := client.AcceptSuggestion(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, models.AppliedStatusManualApplied, updated.AppliedStatus)
}

func TestUpstreamErrorBecomesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error": "suggestion already resolved"}`))
	})

	_, err := client.AcceptSuggestion(context.Background(), "abc")
	require.Error(t, err)

	apiErr, ok := clients.AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "suggestion already resolved", apiErr.Message)
}

func TestListOrdersUsesLimitOffset(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/suppliers/sup-1/orders", r.URL.Path)
		assert.Equal(t, "20", r.URL.Query().Get("limit"))
		assert.Equal(t, "40", r.URL.Query().Get("offset"))
		assert.Equal(t, "confirmed", r.URL.Query().Get("status"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items": [{"id": "o1", "number": "A-100", "status": "confirmed",
			"total": "1250.50", "currency": "RUB", "created_at": "2026-08-01T10:00:00Z"}], "total": 41}`))
	})

	orders, total, err := client.ListOrders(context.Background(), "sup-1", "confirmed", 20, 40)
	require.NoError(t, err)
	assert.Equal(t, 41, total)
	require.Len(t, orders, 1)
	assert.Equal(t, "1250.5", orders[0].Total.String())
}

func TestDeleteImportNoBody(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.DeleteImport(context.Background(), "b1"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/admin/imports/b1", gotPath)
}

func TestIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no such profile"}`))
	})

	_, err := client.GetProfile(context.Background(), "sup-404")
	require.Error(t, err)
	assert.True(t, clients.IsNotFound(err))
}
