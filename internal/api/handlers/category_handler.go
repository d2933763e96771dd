// server/internal/api/handlers/category_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"railfreight-directory-server/internal/models"
)

type CategoryHandler struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// ListCategories handles GET /api/categories.
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories := []models.Category{}
	err := h.DB.SelectContext(c.Request.Context(), &categories, `
		SELECT cat.id, cat.slug, cat.name, cat.description, cat.sort_order,
			cat.is_active, cat.created_at,
			COUNT(f.id) FILTER (WHERE f.is_active) AS facility_count
		FROM categories cat
		LEFT JOIN facilities f ON f.category_id = cat.id
		WHERE cat.is_active = TRUE
		GROUP BY cat.id
		ORDER BY cat.sort_order ASC, cat.name ASC`)
	if err != nil {
		h.Logger.Error("category list query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// GetCategory handles GET /api/categories/:slug.
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	slug := c.Param("slug")

	var category models.Category
	err := h.DB.GetContext(c.Request.Context(), &category, `
		SELECT cat.id, cat.slug, cat.name, cat.description, cat.sort_order,
			cat.is_active, cat.created_at,
			COUNT(f.id) FILTER (WHERE f.is_active) AS facility_count
		FROM categories cat
		LEFT JOIN facilities f ON f.category_id = cat.id
		WHERE cat.slug = $1 AND cat.is_active = TRUE
		GROUP BY cat.id`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.Logger.Error("category lookup failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		return
	}

	c.JSON(http.StatusOK, category)
}

// CategoryStats handles GET /api/categories/:slug/stats with per-state and
// top-city breakdowns.
func (h *CategoryHandler) CategoryStats(c *gin.Context) {
	slug := c.Param("slug")
	ctx := c.Request.Context()

	var categoryID int64
	err := h.DB.GetContext(ctx, &categoryID,
		`SELECT id FROM categories WHERE slug = $1 AND is_active = TRUE`, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		h.Logger.Error("category lookup failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve category"})
		return
	}

	var total int64
	if err := h.DB.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM facilities WHERE category_id = $1 AND is_active = TRUE`, categoryID); err != nil {
		h.Logger.Error("category stats query failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	states := []models.StateCount{}
	if err := h.DB.SelectContext(ctx, &states, `
		SELECT state, COUNT(*) AS count
		FROM facilities
		WHERE category_id = $1 AND is_active = TRUE AND state <> ''
		GROUP BY state
		ORDER BY count DESC, state ASC`, categoryID); err != nil {
		h.Logger.Error("category state breakdown failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	cities := []models.CityCount{}
	if err := h.DB.SelectContext(ctx, &cities, `
		SELECT city, state, COUNT(*) AS count
		FROM facilities
		WHERE category_id = $1 AND is_active = TRUE AND city <> ''
		GROUP BY city, state
		ORDER BY count DESC, city ASC
		LIMIT 10`, categoryID); err != nil {
		h.Logger.Error("category city breakdown failed", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute stats"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"slug":      slug,
		"total":     total,
		"byState":   states,
		"topCities": cities,
	})
}
