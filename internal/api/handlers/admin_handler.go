// server/internal/api/handlers/admin_handler.go
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AdminHandler struct {
	DB     *sqlx.DB
	Logger *zap.Logger
}

// updateFacilityRequest carries optional fields; only present fields are
// written.
type updateFacilityRequest struct {
	Name       *string          `json:"name"`
	Street     *string          `json:"street"`
	City       *string          `json:"city"`
	State      *string          `json:"state"`
	Zip        *string          `json:"zip"`
	Phone      *string          `json:"phone"`
	Email      *string          `json:"email"`
	Website    *string          `json:"website"`
	Latitude   *float64         `json:"latitude"`
	Longitude  *float64         `json:"longitude"`
	Attributes *json.RawMessage `json:"attributes"`
	IsActive   *bool            `json:"isActive"`
}

// UpdateFacility handles PUT /api/admin/facilities/:id.
func (h *AdminHandler) UpdateFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return
	}

	var req updateFacilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if (req.Latitude == nil) != (req.Longitude == nil) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "latitude and longitude must be provided together"})
		return
	}
	if req.State != nil {
		state := strings.ToUpper(strings.TrimSpace(*req.State))
		if len(state) != 2 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "state must be a 2-letter code"})
			return
		}
		req.State = &state
	}

	sets := []string{"updated_at = NOW()"}
	var args []any
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		set("name", *req.Name)
	}
	if req.Street != nil {
		set("street", *req.Street)
	}
	if req.City != nil {
		set("city", *req.City)
	}
	if req.State != nil {
		set("state", *req.State)
	}
	if req.Zip != nil {
		set("zip", *req.Zip)
	}
	if req.Phone != nil {
		set("phone", *req.Phone)
	}
	if req.Email != nil {
		set("email", *req.Email)
	}
	if req.Website != nil {
		set("website", *req.Website)
	}
	if req.Attributes != nil {
		set("attributes", []byte(*req.Attributes))
	}
	if req.IsActive != nil {
		set("is_active", *req.IsActive)
	}
	if req.Latitude != nil {
		set("latitude", *req.Latitude)
		set("longitude", *req.Longitude)
		args = append(args, *req.Longitude, *req.Latitude)
		sets = append(sets, fmt.Sprintf(
			"location = ST_SetSRID(ST_MakePoint($%d, $%d), 4326)::geography", len(args)-1, len(args)))
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE facilities SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := h.DB.ExecContext(c.Request.Context(), query, args...)
	if err != nil {
		h.Logger.Error("facility update failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update facility"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Facility updated successfully"})
}

// DeactivateFacility handles DELETE /api/admin/facilities/:id. Facilities are
// never hard-deleted.
func (h *AdminHandler) DeactivateFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(),
		`UPDATE facilities SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		h.Logger.Error("facility deactivate failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate facility"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Facility deactivated"})
}

// VerifyFacility handles POST /api/admin/facilities/:id/verify.
func (h *AdminHandler) VerifyFacility(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id must be a positive integer"})
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(),
		`UPDATE facilities SET is_verified = TRUE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		h.Logger.Error("facility verify failed", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify facility"})
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Facility not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Facility verified"})
}
