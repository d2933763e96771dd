// server/internal/api/handlers/auth_handler.go
package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"railfreight-directory-server/config"
	"railfreight-directory-server/internal/auth"
	"railfreight-directory-server/internal/models"
)

type AuthHandler struct {
	DB     *sqlx.DB
	Cfg    config.Config
	Logger *zap.Logger
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login and issues a JWT for the admin surface.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.AdminUser
	err := h.DB.GetContext(c.Request.Context(), &user,
		`SELECT id, email, name, password_hash, role, created_at
		 FROM admin_users WHERE email = $1`, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		h.Logger.Error("admin user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	ttl, err := time.ParseDuration(h.Cfg.JWT.Expiration)
	if err != nil {
		ttl = 24 * time.Hour
	}

	token, err := auth.GenerateToken([]byte(h.Cfg.JWT.Secret), ttl, user.Email, user.Role)
	if err != nil {
		h.Logger.Error("token generation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}
