// server/internal/api/handlers/search_handler.go
package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"railfreight-directory-server/internal/models"
)

type SearchHandler struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// Suggestion is one typeahead entry; Kind is "facility" or "category".
type Suggestion struct {
	Kind string `db:"kind" json:"kind"`
	Text string `db:"text" json:"text"`
	Slug string `db:"slug" json:"slug,omitempty"`
}

// Suggest handles GET /api/search/suggest with a 2-character minimum.
func (h *SearchHandler) Suggest(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q must be at least 2 characters"})
		return
	}

	suggestions := []Suggestion{}
	err := h.DB.SelectContext(c.Request.Context(), &suggestions, `
		SELECT 'category' AS kind, name AS text, slug
		FROM categories
		WHERE is_active = TRUE AND name ILIKE $1
		UNION ALL
		(SELECT DISTINCT 'facility' AS kind, name AS text, '' AS slug
		 FROM facilities
		 WHERE is_active = TRUE AND name ILIKE $1
		 ORDER BY text ASC
		 LIMIT 10)
		LIMIT 10`, "%"+q+"%")
	if err != nil {
		h.Logger.Error("suggest query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build suggestions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": suggestions})
}

// States handles GET /api/search/states.
func (h *SearchHandler) States(c *gin.Context) {
	states := []models.StateCount{}
	err := h.DB.SelectContext(c.Request.Context(), &states, `
		SELECT state, COUNT(*) AS count
		FROM facilities
		WHERE is_active = TRUE AND state <> ''
		GROUP BY state
		ORDER BY state ASC`)
	if err != nil {
		h.Logger.Error("states query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query states"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": states})
}

// Cities handles GET /api/search/cities; state is required.
func (h *SearchHandler) Cities(c *gin.Context) {
	state := strings.TrimSpace(c.Query("state"))
	if len(state) != 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state must be a 2-letter code"})
		return
	}

	cities := []models.CityCount{}
	err := h.DB.SelectContext(c.Request.Context(), &cities, `
		SELECT city, state, COUNT(*) AS count
		FROM facilities
		WHERE is_active = TRUE AND state = $1 AND city <> ''
		GROUP BY city, state
		ORDER BY city ASC`, strings.ToUpper(state))
	if err != nil {
		h.Logger.Error("cities query failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query cities"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": cities})
}

type logSearchRequest struct {
	Query       string          `json:"query"`
	Filters     json.RawMessage `json:"filters"`
	ResultCount int             `json:"resultCount"`
}

// LogSearch handles POST /api/search/log. Analytics writes are best-effort;
// the endpoint always answers 204.
func (h *SearchHandler) LogSearch(c *gin.Context) {
	var req logSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusNoContent)
		return
	}

	filters := req.Filters
	if len(filters) == 0 {
		filters = json.RawMessage(`{}`)
	}

	_, err := h.DB.ExecContext(c.Request.Context(), `
		INSERT INTO search_logs (id, query, filters, result_count, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New().String(), req.Query, filters, req.ResultCount,
		c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.Logger.Warn("search log insert failed", zap.Error(err))
	}

	c.Status(http.StatusNoContent)
}
