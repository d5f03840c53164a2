package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"bnin/database"
	"bnin/database/seed"
	"bnin/internal/config"
	"bnin/internal/logger"
)

// Imports a recipe catalog into the database. With no argument the bundled
// sample catalog is used, otherwise os.Args[1] names a JSON file.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Replace 'db' hostname with 'localhost' when running outside Docker
	cfg.DatabaseURL = strings.ReplaceAll(cfg.DatabaseURL, "@db:", "@localhost:")

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", "error", err)
	}
	defer database.Close(db)

	var catalog *seed.Catalog
	if len(os.Args) > 1 {
		log.Info("Reading catalog", "file", os.Args[1])
		catalog, err = seed.Load(os.Args[1])
	} else {
		log.Info("Using bundled sample catalog")
		catalog, err = seed.Default()
	}
	if err != nil {
		log.Fatal("Failed to read catalog", "error", err)
	}
	log.Info("Loaded catalog",
		"moods", len(catalog.Moods),
		"ingredients", len(catalog.Ingredients),
		"recipes", len(catalog.Recipes),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if _, err := seed.Seed(ctx, db, catalog, log); err != nil {
		log.Fatal("Import failed", "error", err)
	}
	log.Info("Database import completed successfully")
}
