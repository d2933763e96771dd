// server/internal/api/handlers/facility_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"railfreight-directory-server/internal/models"
)

type FacilityHandler struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// Pagination is the metadata block returned with every facility page.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int64 `json:"totalPages"`
}

// ListFacilities handles GET /api/facilities.
func (h *FacilityHandler) ListFacilities(c *gin.Context) {
	filters, err := parseFacilityFilters(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	var total int64
	countQuery, countArgs := filters.buildCountQuery()
	if err := h.DB.GetContext(ctx, &total, countQuery, countArgs...); err != nil {
		h.Logger.Error("facility count query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query facilities"})
		return
	}

	facilities := []models.Facility{}
	query, args := filters.buildQuery()
	if err := h.DB.SelectContext(ctx, &facilities, query, args...); err != nil {
		h.Logger.Error("facility list query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query facilities"})
		return
	}

	totalPages := (total + int64(filters.Limit) - 1) / int64(filters.Limit)
	c.JSON(http.StatusOK, gin.H{
		"data": facilities,
		"pagination": Pagination{
			Page:       filters.Page,
			Limit:      filters.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	})
}

// GetFacility handles GET /api/facilities/:id.
func (h *FacilityHandler) GetFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return
	}

	var facility models.Facility
	query := fmt.Sprintf(`
		SELECT %s
		FROM facilities f
		JOIN categories c ON c.id = f.category_id
		WHERE f.id = $1 AND f.is_active = TRUE`, facilitySelect)

	err = h.DB.GetContext(c.Request.Context(), &facility, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
			return
		}
		h.Logger.Error("facility lookup failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve facility"})
		return
	}

	c.JSON(http.StatusOK, facility)
}

// NearbyFacilities handles GET /api/facilities/nearby. Results are ordered by
// distance and each row carries distanceMiles.
func (h *FacilityHandler) NearbyFacilities(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lat must be a number between -90 and 90"})
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil || lng < -180 || lng > 180 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "lng must be a number between -180 and 180"})
		return
	}

	radius := defaultRadius
	if radiusStr := c.Query("radius"); radiusStr != "" {
		radius, err = strconv.ParseFloat(radiusStr, 64)
		if err != nil || radius <= 0 || radius > maxRadius {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("radius must be between 0 and %.0f miles", maxRadius)})
			return
		}
	}

	limit := defaultPageSize
	if limitStr := c.Query("limit"); limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit < 1 {
			limit = defaultPageSize
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}
	}

	facilities := []models.Facility{}
	query := fmt.Sprintf(`
		SELECT %s,
			ST_Distance(f.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography) / %f AS distance_miles
		FROM facilities f
		JOIN categories c ON c.id = f.category_id
		WHERE f.is_active = TRUE
			AND f.location IS NOT NULL
			AND ST_DWithin(f.location, ST_SetSRID(ST_MakePoint($1, $2), 4326)::geography, $3)
		ORDER BY distance_miles ASC
		LIMIT $4`, facilitySelect, milesToMeters)

	err = h.DB.SelectContext(c.Request.Context(), &facilities, query, lng, lat, radius*milesToMeters, limit)
	if err != nil {
		h.Logger.Error("nearby query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query facilities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": facilities})
}
