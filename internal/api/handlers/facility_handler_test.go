package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Validation failures must be rejected before any query runs; these handlers
// never touch their nil DB on the 400 paths.
func newValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &FacilityHandler{DB: nil, Logger: zap.NewNop()}

	router := gin.New()
	router.GET("/api/facilities", h.ListFacilities)
	router.GET("/api/facilities/nearby", h.NearbyFacilities)
	router.GET("/api/facilities/:id", h.GetFacility)
	return router
}

func TestFacilityEndpointsRejectBadInput(t *testing.T) {
	router := newValidationRouter()

	tests := []struct {
		name string
		url  string
	}{
		{"non-positive id", "/api/facilities/0"},
		{"non-numeric id", "/api/facilities/abc"},
		{"negative id", "/api/facilities/-4"},
		{"bad radius", "/api/facilities?lat=40.71&lng=-74.0&radius=9000"},
		{"lat without lng", "/api/facilities?lat=40.71"},
		{"nearby without coordinates", "/api/facilities/nearby"},
		{"nearby bad lat", "/api/facilities/nearby?lat=95&lng=-74"},
		{"nearby bad radius", "/api/facilities/nearby?lat=40.71&lng=-74&radius=-1"},
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
