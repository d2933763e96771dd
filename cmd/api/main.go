// server/cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"railfreight-directory-server/config"
	"railfreight-directory-server/internal/api/routes"
	"railfreight-directory-server/internal/database"
)

func main() {
	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		log.Fatal("JWT_SECRET must be set")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Could not create logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.Postgres.DSN())
	if err != nil {
		log.Fatalf("Could not connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.SeedCategories(ctx, db, logger); err != nil {
		log.Fatalf("Could not seed categories: %v", err)
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail != "" && adminPassword != "" {
		if err := database.SeedAdmin(ctx, db, adminEmail, adminPassword, logger); err != nil {
			log.Fatalf("Could not seed admin user: %v", err)
		}
	}

	router := routes.SetupRouter(db, cfg, logger)

	logger.Info("starting API server", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
