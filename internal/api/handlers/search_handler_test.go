// server/internal/api/handlers/search_handler_test.go
package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newSearchRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &SearchHandler{DB: nil, Logger: zap.NewNop()}

	router := gin.New()
	router.GET("/api/search/suggest", h.Suggest)
	router.GET("/api/search/cities", h.Cities)
	return router
}

func TestSearchEndpointsRejectBadInput(t *testing.T) {
	router := newSearchRouter()

	tests := []struct {
		name string
		url  string
	}{
		{"missing q", "/api/search/suggest"},
		{"one-character q", "/api/search/suggest?q=a"},
		{"whitespace q", "/api/search/suggest?q=%20%20"},
		{"cities without state", "/api/search/cities"},
		{"cities full state name", "/api/search/cities?state=Kansas"},
		{"cities one-letter state", "/api/search/cities?state=K"},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, tt.url, nil)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d; want 400", tt.name, w.Code)
		}
	}
}
