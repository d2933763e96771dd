// server/cmd/importer/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"railfreight-directory-server/config"
	"railfreight-directory-server/internal/database"
	"railfreight-directory-server/internal/importer"
)

func main() {
	category := flag.String("category", "", "category slug for the imported facilities")
	source := flag.String("source", "", "source name recorded on each facility")
	force := flag.Bool("force", false, "skip the duplicate check")
	flag.Parse()

	files := flag.Args()
	if *category == "" || len(files) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: importer -category <slug> [-source <name>] [-force] <file.xlsx|file.csv|s3://bucket/key> ...")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
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
	opener, err := importer.NewSourceOpener(ctx, cfg.S3)
	if err != nil {
		log.Fatalf("Could not build source opener: %v", err)
	}

	imp := importer.New(db, logger)

	var totalImported, totalSkipped, failed int
	for _, path := range files {
		stats, err := importOne(ctx, imp, opener, path, importer.Options{
			CategorySlug: *category,
			Source:       *source,
			Force:        *force,
		})
		if err != nil {
			// A failed file is rolled back in full; the next file still runs.
			logger.Error("import failed", zap.String("file", path), zap.Error(err))
			if errors.Is(err, importer.ErrCategoryNotFound) {
				os.Exit(1)
			}
			failed++
			continue
		}
		logger.Info("imported file",
			zap.String("file", path),
			zap.Int("imported", stats.Imported),
			zap.Int("skipped", stats.Skipped))
		totalImported += stats.Imported
		totalSkipped += stats.Skipped
	}

	fmt.Printf("Done. Imported %d, skipped %d, failed files %d\n", totalImported, totalSkipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func importOne(ctx context.Context, imp *importer.Importer, opener *importer.SourceOpener, path string, opts importer.Options) (importer.Stats, error) {
	r, filename, err := opener.Open(ctx, path)
	if err != nil {
		return importer.Stats{}, err
	}
	defer r.Close()

	records, err := importer.Parse(r, filename)
	if err != nil {
		return importer.Stats{}, err
	}

	return imp.ImportRecords(ctx, records, opts)
}
