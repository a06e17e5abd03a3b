package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/marketplace/config"
	"github.com/marketplace/database"
	"github.com/marketplace/models"
	"github.com/marketplace/store"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func main() {
	// Command line flags
	var (
		migrate  = flag.Bool("migrate", false, "Run database migration before the check")
		seed     = flag.Bool("seed", false, "Seed database with sample data")
		debugSQL = flag.Bool("debug-sql", false, "Print the SQL statements executed by the check")
		help     = flag.Bool("help", false, "Show help")
	)

	flag.Parse()

	if *help {
		showHelp()
		return
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Println("=== Database Connection Test ===")
	fmt.Printf("Connecting to: %s\n", &cfg.Database)

	// Initialize database connection
	opts := connectOptions(cfg, *debugSQL)
	if err := database.InitializeWithOptions(&cfg.Database, opts); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()
	fmt.Println("✓ Database connected successfully")

	// Run migration if requested
	if *migrate {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
	}

	if err := database.CheckConnection(database.DB); err != nil {
		log.Fatalf("Database check failed: %v", err)
	}
	if missing := database.MissingTables(database.DB); len(missing) > 0 {
		log.Fatalf("Schema is incomplete, missing tables: %v (run with -migrate)", missing)
	}
	fmt.Printf("✓ Found all %d marketplace tables\n", len(models.TableNames()))

	// Seed database if requested
	if *seed {
		if err := database.SeedData(context.Background(), database.DB); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Test model queries
	fmt.Println("\n=== Testing Model Queries ===")
	for _, table := range models.TableNames() {
		var count int64
		if err := database.DB.Table(table).Count(&count).Error; err != nil {
			log.Printf("Warning: Could not count %s: %v", table, err)
			continue
		}
		fmt.Printf("✓ %-15s %d rows\n", table, count)
	}

	// Test relationships through a read-only unit of work
	err = database.Transaction(context.Background(), database.DB, func(tx *gorm.DB) error {
		var users []models.User
		if err := tx.Order("id").Limit(5).Find(&users).Error; err != nil {
			return err
		}
		s := store.New(tx)
		for _, u := range users {
			orders, err := s.UserOrders(u.ID)
			if err != nil {
				return err
			}
			products := 0
			for _, o := range orders {
				products += len(o.Products)
			}
			fmt.Printf("  %s (%s): %d orders, %d ordered products\n", u.Name, u.Role, len(orders), products)
		}
		return nil
	})
	if err != nil {
		log.Printf("Warning: Could not read relationships: %v", err)
	}

	if *debugSQL {
		fmt.Println("\n=== Executed SQL (newest first) ===")
		for _, q := range database.SQLLogger.GetRecentQueries(20) {
			fmt.Printf("  #%d %s (%s, %d rows)\n", q.ID, q.SQL, q.Duration, q.Rows)
		}
	}

	fmt.Println("\n=== All Checks Passed ✓ ===")
}

// connectOptions keeps the SQL log on when it is printed or when DB_LOG_SQL
// asks for every statement to be logged.
func connectOptions(cfg *config.Config, debugSQL bool) database.Options {
	opts := database.Options{DisableQueryLog: !cfg.App.LogSQL && !debugSQL}
	if cfg.App.LogSQL {
		opts.LogLevel = logger.Info
	}
	return opts
}

func showHelp() {
	fmt.Print(`
Marketplace database check

Usage:
  go run . [options]

Options:
  -migrate    Run GORM AutoMigrate before checking
  -seed       Seed database with sample data
  -debug-sql  Print the SQL statements that were executed
  -help       Show this help message

For full migration control, use:
  go run ./cmd/migrate

For full seed control, use:
  go run ./cmd/seed

`)
}
