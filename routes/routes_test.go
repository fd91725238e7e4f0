package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/routes"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// Handlers are only invoked through the middleware chain, so registration
// itself and the routes that never reach a controller can run with nil
// controllers.
func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	r := gin.New()
	assert.NotPanics(t, func() {
		routes.RegisterDashboardRoutes(r, nil, nil, nil, nil, nil)
	})
	return r
}

func TestHealthEndpoint(t *testing.T) {
	r := newRouter(t)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "OK", "service": "seller-dashboard"}`, w.Body.String())
}

func TestDashboardRequiresSellerHeader(t *testing.T) {
	r := newRouter(t)

	paths := []string{
		"/dashboard/imports",
		"/dashboard/suggestions",
		"/dashboard/orders",
		"/dashboard/catalog/items",
		"/dashboard/profile",
	}
	for _, path := range paths {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "expected 401 for %s without seller header", path)
	}
}
