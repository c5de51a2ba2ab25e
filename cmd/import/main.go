package main

// Import catalog seed data:
//   go run ./cmd/import -file tools.csv
//   go run ./cmd/import -file tools.json -format json

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"devtools-backend/internal/catalog"
	"devtools-backend/internal/importer"
	"devtools-backend/internal/shared/config"
	"devtools-backend/internal/shared/storage/db"
)

func main() {
	file := flag.String("file", "", "path to the seed data file")
	format := flag.String("format", "csv", "seed data format: csv or json")
	flag.Parse()

	if strings.TrimSpace(*file) == "" {
		log.Printf("-file is required")
		os.Exit(1)
	}

	cfg := config.Load()
	ctx := context.Background()

	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		log.Printf("failed to connect database: %v", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}

	im := &importer.Importer{Repo: &catalog.PGRepo{DB: sqlDB}}

	var summary importer.Summary
	switch strings.ToLower(strings.TrimSpace(*format)) {
	case "json":
		summary, err = im.ImportJSONFile(ctx, *file)
	case "csv":
		summary, err = im.ImportCSVFile(ctx, *file)
	default:
		log.Printf("unknown format %q (want csv or json)", *format)
		os.Exit(1)
	}
	if err != nil {
		log.Printf("import failed: %v", err)
		os.Exit(1)
	}

	log.Printf("import complete: %d imported, %d skipped", summary.Imported, summary.Skipped)
}
