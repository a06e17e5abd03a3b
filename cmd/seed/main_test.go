package main

import (
	"path/filepath"
	"testing"

	"github.com/marketplace/config"
	"github.com/marketplace/database"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.DatabaseConfig{
		Driver: config.DriverSQLite,
		DBName: filepath.Join(t.TempDir(), "marketplace.db"),
	}
	db, err := database.Open(cfg, database.Options{DisableQueryLog: true})
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestShowTableStatsReportsMissingTables(t *testing.T) {
	db := openTestDB(t)
	if err := showTableStats(db); err == nil {
		t.Fatal("Expected an error counting tables that do not exist")
	}
}

func TestShowTableStats(t *testing.T) {
	db := openTestDB(t)
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("AutoMigrate returned error: %v", err)
	}
	if err := showTableStats(db); err != nil {
		t.Fatalf("showTableStats returned error: %v", err)
	}
}
