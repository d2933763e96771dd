// server/cmd/geocoder/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"railfreight-directory-server/config"
	"railfreight-directory-server/internal/database"
	"railfreight-directory-server/internal/geocoding"
)

func main() {
	provider := flag.String("provider", "", "geocoding provider (nominatim, census or mapbox); defaults to config")
	limit := flag.Int("limit", 0, "maximum facilities to process; defaults to config")
	flag.Parse()

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if *provider == "" {
		*provider = cfg.Geocoding.Provider
	}
	if *limit <= 0 {
		*limit = cfg.Geocoding.BatchLimit
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

	geocoder, err := buildProvider(*provider, cfg.Geocoding)
	if err != nil {
		log.Fatalf("Could not build provider: %v", err)
	}

	queue := geocoding.NewQueue(geocoding.NewPostgresStore(db), geocoder, logger)
	stats, err := queue.Run(context.Background(), *limit)
	if err != nil {
		log.Fatalf("Geocoding run failed: %v", err)
	}

	fmt.Printf("Done. Resolved %d, unresolved %d, failed %d\n",
		stats.Resolved, stats.Unresolved, stats.Failed)
}

func buildProvider(name string, cfg config.GeocodingConfig) (geocoding.Provider, error) {
	switch name {
	case "nominatim":
		return geocoding.NewNominatim(cfg.NominatimBaseURL, cfg.UserAgent,
			time.Duration(cfg.NominatimDelayMs)*time.Millisecond), nil
	case "census":
		return geocoding.NewCensus(cfg.CensusBaseURL), nil
	case "mapbox":
		if cfg.MapboxToken == "" {
			return nil, fmt.Errorf("mapbox provider requires MAPBOX_TOKEN")
		}
		return geocoding.NewMapbox(cfg.MapboxToken), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", name)
	}
}
