package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/controllers"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// --- Mock ImportService ---

type mockImportService struct {
	listFn    func(ctx context.Context, sellerID string, page int, expandedID string) (*services.ImportListView, *services.ServiceError)
	uploadFn  func(ctx context.Context, sellerID, filename, description string, file io.Reader) (*services.UploadResultView, *services.ServiceError)
	retryFn   func(ctx context.Context, sellerID, stagedID string) (*services.UploadResultView, *services.ServiceError)
	getFn     func(ctx context.Context, sellerID, stagedID string) (*services.StagedUploadView, *services.ServiceError)
	discardFn func(ctx context.Context, sellerID, stagedID string) *services.ServiceError
	reparseFn func(ctx context.Context, sellerID, batchID string) *services.ServiceError
	deleteFn  func(ctx context.Context, sellerID, batchID string) *services.ServiceError
}

func (m *mockImportService) List(ctx context.Context, sellerID string, page int, expandedID string) (*services.ImportListView, *services.ServiceError) {
	return m.listFn(ctx, sellerID, page, expandedID)
}
func (m *mockImportService) Upload(ctx context.Context, sellerID, filename, description string, file io.Reader) (*services.UploadResultView, *services.ServiceError) {
	return m.uploadFn(ctx, sellerID, filename, description, file)
}
func (m *mockImportService) RetryStaged(ctx context.Context, sellerID, stagedID string) (*services.UploadResultView, *services.ServiceError) {
	return m.retryFn(ctx, sellerID, stagedID)
}
func (m *mockImportService) GetStaged(ctx context.Context, sellerID, stagedID string) (*services.StagedUploadView, *services.ServiceError) {
	return m.getFn(ctx, sellerID, stagedID)
}
func (m *mockImportService) DiscardStaged(ctx context.Context, sellerID, stagedID string) *services.ServiceError {
	return m.discardFn(ctx, sellerID, stagedID)
}
func (m *mockImportService) Reparse(ctx context.Context, sellerID, batchID string) *services.ServiceError {
	return m.reparseFn(ctx, sellerID, batchID)
}
func (m *mockImportService) Delete(ctx context.Context, sellerID, batchID string) *services.ServiceError {
	return m.deleteFn(ctx, sellerID, batchID)
}

// --- Helpers ---

func setupImportRouter(svc services.ImportService) *gin.Engine {
	r := gin.New()
	ic := controllers.NewImportController(svc, controllers.NewRequestValidator())

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.SellerContext())
	dashboard.GET("/imports", ic.ListImports)
	dashboard.POST("/imports", ic.UploadPriceList)
	dashboard.GET("/imports/staged/:id", ic.GetStaged)
	dashboard.POST("/imports/staged/:id/retry", ic.RetryStaged)
	dashboard.DELETE("/imports/staged/:id", ic.DiscardStaged)
	dashboard.POST("/imports/:id/reparse", ic.Reparse)
	dashboard.DELETE("/imports/:id", ic.DeleteImport)
	return r
}

func multipartBody(t *testing.T, filename, description, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if description != "" {
		if err := w.WriteField("description", description); err != nil {
			t.Fatalf("write description field: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

// --- Tests ---

func TestController_ListImports_MissingSellerHeader(t *testing.T) {
	svc := &mockImportService{}
	r := setupImportRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/dashboard/imports", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestController_UploadPriceList_RejectsBadExtension(t *testing.T) {
	called := false
	svc := &mockImportService{
		uploadFn: func(_ context.Context, _, _, _ string, _ io.Reader) (*services.UploadResultView, *services.ServiceError) {
			called = true
			return nil, nil
		},
	}
	r := setupImportRouter(svc)

	body, contentType := multipartBody(t, "report.exe", "", "MZ")
	req, _ := http.NewRequest(http.MethodPost, "/dashboard/imports", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported file format")
	assert.False(t, called, "rejected files must not reach the service")
}

func TestController_UploadPriceList_Success(t *testing.T) {
	var gotSeller, gotFilename, gotDescription string
	svc := &mockImportService{
		uploadFn: func(_ context.Context, sellerID, filename, description string, _ io.Reader) (*services.UploadResultView, *services.ServiceError) {
			gotSeller = sellerID
			gotFilename = filename
			gotDescription = description
			return &services.UploadResultView{
				Message: "Price list uploaded",
				Batch:   &models.ImportBatch{ID: "b1", Status: models.ImportStatusReceived},
			}, nil
		},
	}
	r := setupImportRouter(svc)

	body, contentType := multipartBody(t, "spring.csv", "Spring price list", "name;price\nRose Freedom;95.00")
	req, _ := http.NewRequest(http.MethodPost, "/dashboard/imports", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "sup-1", gotSeller)
	assert.Equal(t, "spring.csv", gotFilename)
	assert.Equal(t, "Spring price list", gotDescription)
	assert.Contains(t, w.Body.String(), "Price list uploaded")
}

func TestController_UploadPriceList_FailureCarriesStagedID(t *testing.T) {
	svc := &mockImportService{
		uploadFn: func(_ context.Context, _, _, _ string, _ io.Reader) (*services.UploadResultView, *services.ServiceError) {
			return nil, &services.ServiceError{
				StatusCode: http.StatusBadGateway,
				Message:    "Upload failed. The file was kept so you can retry.",
				Details:    map[string]interface{}{"staged_id": "0b5c9e3a-aaaa-bbbb-cccc-0123456789ab"},
			}
		},
	}
	r := setupImportRouter(svc)

	body, contentType := multipartBody(t, "spring.csv", "", "name;price")
	req, _ := http.NewRequest(http.MethodPost, "/dashboard/imports", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var resp map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "0b5c9e3a-aaaa-bbbb-cccc-0123456789ab", resp["staged_id"])
	assert.NotEmpty(t, resp["error"])
}

func TestController_RetryStaged_Success(t *testing.T) {
	var gotStagedID string
	svc := &mockImportService{
		retryFn: func(_ context.Context, _, stagedID string) (*services.UploadResultView, *services.ServiceError) {
			gotStagedID = stagedID
			return &services.UploadResultView{Message: "Price list uploaded"}, nil
		},
	}
	r := setupImportRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/dashboard/imports/staged/0b5c9e3a/retry", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "0b5c9e3a", gotStagedID)
}

func TestController_DeleteImport_RequiresConfirm(t *testing.T) {
	called := false
	svc := &mockImportService{
		deleteFn: func(_ context.Context, _, _ string) *services.ServiceError {
			called = true
			return nil
		},
	}
	r := setupImportRouter(svc)

	req, _ := http.NewRequest(http.MethodDelete, "/dashboard/imports/b1", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "confirm=true")
	assert.False(t, called, "declined confirmation must not reach the service")
}

func TestController_DeleteImport_Confirmed(t *testing.T) {
	var gotBatchID string
	svc := &mockImportService{
		deleteFn: func(_ context.Context, _, batchID string) *services.ServiceError {
			gotBatchID = batchID
			return nil
		},
	}
	r := setupImportRouter(svc)

	req, _ := http.NewRequest(http.MethodDelete, "/dashboard/imports/b1?confirm=true", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b1", gotBatchID)
}

func TestController_ListImports_InvalidPage(t *testing.T) {
	called := false
	svc := &mockImportService{
		listFn: func(_ context.Context, _ string, _ int, _ string) (*services.ImportListView, *services.ServiceError) {
			called = true
			return nil, nil
		},
	}
	r := setupImportRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/dashboard/imports?page=zero", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called)
}
