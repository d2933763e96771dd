// server/internal/api/routes/routes.go
package routes

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"railfreight-directory-server/config"
	"railfreight-directory-server/internal/api/handlers"
	"railfreight-directory-server/internal/api/middleware"
)

// SetupRouter wires the handlers and route groups.
func SetupRouter(db *sqlx.DB, cfg config.Config, logger *zap.Logger) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	facilityHandler := &handlers.FacilityHandler{DB: db, Logger: logger}
	categoryHandler := &handlers.CategoryHandler{DB: db, Logger: logger}
	searchHandler := &handlers.SearchHandler{DB: db, Logger: logger}
	authHandler := &handlers.AuthHandler{DB: db, Cfg: cfg, Logger: logger}
	adminHandler := &handlers.AdminHandler{DB: db, Logger: logger}

	api := router.Group("/api")
	{
		// === PUBLIC ROUTES ===

		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
		}

		facilities := api.Group("/facilities")
		{
			facilities.GET("", facilityHandler.ListFacilities)
			facilities.GET("/nearby", facilityHandler.NearbyFacilities)
			facilities.GET("/:id", facilityHandler.GetFacility)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:slug", categoryHandler.GetCategory)
			categories.GET("/:slug/stats", categoryHandler.CategoryStats)
		}

		search := api.Group("/search")
		{
			search.GET("/suggest", searchHandler.Suggest)
			search.GET("/states", searchHandler.States)
			search.GET("/cities", searchHandler.Cities)
			search.POST("/log", searchHandler.LogSearch)
		}

		// === PROTECTED ROUTES ===

		admin := api.Group("/admin")
		admin.Use(middleware.Authenticate([]byte(cfg.JWT.Secret)))
		admin.Use(middleware.Authorize("admin"))
		{
			admin.PUT("/facilities/:id", adminHandler.UpdateFacility)
			admin.DELETE("/facilities/:id", adminHandler.DeactivateFacility)
			admin.POST("/facilities/:id/verify", adminHandler.VerifyFacility)
		}
	}

	return router
}
