package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/marketplace/config"
	"github.com/marketplace/database"
	"github.com/marketplace/models"
	"gorm.io/gorm"
)

func main() {
	// Define flags
	force := flag.Bool("force", false, "Force re-seed even if data exists")
	help := flag.Bool("help", false, "Show help message")
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	fmt.Println("🌱 Starting Database Seeding Tool")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	fmt.Printf("📊 Database: %s\n\n", &cfg.Database)

	// Initialize database connection
	if err := database.InitializeWithOptions(&cfg.Database, database.Options{DisableQueryLog: !cfg.App.LogSQL}); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatal("Database connection check failed:", err)
	}
	if missing := database.MissingTables(database.DB); len(missing) > 0 {
		log.Fatalf("Schema is incomplete (missing %v). Run go run ./cmd/migrate first.", missing)
	}

	if *force {
		fmt.Println("⚠️  Force flag enabled. Clearing existing data...")
		if err := database.ClearData(database.DB); err != nil {
			log.Fatal("Failed to clear data:", err)
		}
		fmt.Println()
	}

	// Seed data
	if err := database.SeedData(context.Background(), database.DB); err != nil {
		log.Fatal("Failed to seed database:", err)
	}

	// Show statistics
	fmt.Println("\n📊 Database Statistics:")
	if err := showTableStats(database.DB); err != nil {
		log.Printf("Warning: %v", err)
	}

	fmt.Println("\n✨ Seeding completed successfully!")
}

func showHelp() {
	fmt.Println("Database Seeding Tool")
	fmt.Println("====================")
	fmt.Println("\nUsage:")
	fmt.Println("  go run ./cmd/seed [flags]")
	fmt.Println("\nFlags:")
	fmt.Println("  -force    Force re-seed by clearing existing data")
	fmt.Println("  -help     Show this help message")
	fmt.Println("\nExamples:")
	fmt.Println("  # Seed empty database")
	fmt.Println("  go run ./cmd/seed")
	fmt.Println("\n  # Force re-seed (clear and re-insert data)")
	fmt.Println("  go run ./cmd/seed -force")
}

// showTableStats prints the row count of every table. Tables that cannot be
// counted are reported in the returned error instead of as empty.
func showTableStats(db *gorm.DB) error {
	var errs []error
	for _, table := range models.TableNames() {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			fmt.Printf("  %-15s: unavailable\n", table)
			errs = append(errs, fmt.Errorf("could not count %s: %w", table, err))
			continue
		}
		fmt.Printf("  %-15s: %d rows\n", table, count)
	}
	return errors.Join(errs...)
}
