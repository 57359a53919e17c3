package main

import (
	"log"

	"github.com/valpere/pohoda/internal/config"
	"github.com/valpere/pohoda/internal/database"
)

// Creates the preferences table for the configured SQL storage driver.
// Usage: go run scripts/migrate.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		// Connect runs the migrations itself
		db, err := database.Connect(&cfg.Database)
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}

	case config.DriverSQLite:
		db, err := database.OpenSQLite(cfg.Storage.SQLitePath)
		if err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		_ = db.Close()

	default:
		log.Printf("Storage driver %q has no schema, nothing to migrate", cfg.Storage.Driver)
		return
	}

	log.Printf("Migrations for %s completed successfully!", cfg.Storage.Driver)
}
