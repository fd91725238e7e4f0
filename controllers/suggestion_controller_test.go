package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/controllers"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/format"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/models"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// --- Mock SuggestionService ---

type mockSuggestionService struct {
	listFn   func(ctx context.Context, sellerID, status string, page int) (*services.SuggestionListView, *services.ServiceError)
	acceptFn func(ctx context.Context, sellerID, suggestionID string) (*services.DecisionResultView, *services.ServiceError)
	rejectFn func(ctx context.Context, sellerID, suggestionID string) (*services.DecisionResultView, *services.ServiceError)
}

func (m *mockSuggestionService) List(ctx context.Context, sellerID, status string, page int) (*services.SuggestionListView, *services.ServiceError) {
	return m.listFn(ctx, sellerID, status, page)
}
func (m *mockSuggestionService) Accept(ctx context.Context, sellerID, suggestionID string) (*services.DecisionResultView, *services.ServiceError) {
	return m.acceptFn(ctx, sellerID, suggestionID)
}
func (m *mockSuggestionService) Reject(ctx context.Context, sellerID, suggestionID string) (*services.DecisionResultView, *services.ServiceError) {
	return m.rejectFn(ctx, sellerID, suggestionID)
}

func setupSuggestionRouter(svc services.SuggestionService) *gin.Engine {
	r := gin.New()
	sc := controllers.NewSuggestionController(svc, controllers.NewRequestValidator())

	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.SellerContext())
	dashboard.GET("/suggestions", sc.ListSuggestions)
	dashboard.POST("/suggestions/:id/accept", sc.AcceptSuggestion)
	dashboard.POST("/suggestions/:id/reject", sc.RejectSuggestion)
	return r
}

// --- Tests ---

func TestController_ListSuggestions_PassesFilter(t *testing.T) {
	var gotSeller, gotStatus string
	var gotPage int
	svc := &mockSuggestionService{
		listFn: func(_ context.Context, sellerID, status string, page int) (*services.SuggestionListView, *services.ServiceError) {
			gotSeller = sellerID
			gotStatus = status
			gotPage = page
			return &services.SuggestionListView{Status: status}, nil
		},
	}
	r := setupSuggestionRouter(svc)

	req, _ := http.NewRequest(http.MethodGet, "/dashboard/suggestions?status=rejected&page=2", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sup-1", gotSeller)
	assert.Equal(t, "rejected", gotStatus)
	assert.Equal(t, 2, gotPage)
}

func TestController_AcceptSuggestion_Success(t *testing.T) {
	svc := &mockSuggestionService{
		acceptFn: func(_ context.Context, _, suggestionID string) (*services.DecisionResultView, *services.ServiceError) {
			return &services.DecisionResultView{
				ID:            suggestionID,
				AppliedStatus: models.AppliedStatusManualApplied,
				Badge:         format.SuggestionBadge(models.AppliedStatusManualApplied),
				Message:       "Suggestion applied",
			}, nil
		},
	}
	r := setupSuggestionRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/dashboard/suggestions/sg-1/accept", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp services.DecisionResultView
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "sg-1", resp.ID)
	assert.Equal(t, models.AppliedStatusManualApplied, resp.AppliedStatus)
	assert.Equal(t, "Applied manually", resp.Badge.Label)
}

func TestController_AcceptSuggestion_Conflict(t *testing.T) {
	svc := &mockSuggestionService{
		acceptFn: func(_ context.Context, _, _ string) (*services.DecisionResultView, *services.ServiceError) {
			return nil, &services.ServiceError{StatusCode: http.StatusConflict, Message: "A decision is already in progress"}
		},
	}
	r := setupSuggestionRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/dashboard/suggestions/sg-1/accept", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "A decision is already in progress")
}

func TestController_RejectSuggestion_Success(t *testing.T) {
	var gotSuggestionID string
	svc := &mockSuggestionService{
		rejectFn: func(_ context.Context, _, suggestionID string) (*services.DecisionResultView, *services.ServiceError) {
			gotSuggestionID = suggestionID
			return &services.DecisionResultView{
				ID:            suggestionID,
				AppliedStatus: models.AppliedStatusRejected,
				Badge:         format.SuggestionBadge(models.AppliedStatusRejected),
				Message:       "Suggestion rejected",
			}, nil
		},
	}
	r := setupSuggestionRouter(svc)

	req, _ := http.NewRequest(http.MethodPost, "/dashboard/suggestions/sg-9/reject", nil)
	req.Header.Set("X-Seller-ID", "sup-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sg-9", gotSuggestionID)
	assert.Contains(t, w.Body.String(), "rejected")
}
