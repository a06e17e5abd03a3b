package database

import (
	"fmt"
	"log"

	"github.com/marketplace/models"
	"gorm.io/gorm"
)

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	log.Println("Starting GORM AutoMigrate...")

	// Foreign keys, the unique owner index and the enum checks come from
	// the model tags; GORM orders creation so parents precede children.
	existing := make(map[string]bool)
	for _, table := range models.TableNames() {
		existing[table] = db.Migrator().HasTable(table)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	for _, model := range models.AllModels() {
		tableName := tableNameOf(db, model)
		if existing[tableName] {
			log.Printf("  ✓ Table already exists: %s", tableName)
		} else {
			log.Printf("  ✓ Created table: %s", tableName)
		}
	}

	// Create indexes
	log.Println("Creating indexes...")
	if err := CreateIndexes(db); err != nil {
		return err
	}

	log.Println("GORM AutoMigrate completed successfully")
	return nil
}

// CheckConnection verifies the database connection and schema
func CheckConnection(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// Ping the database
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	missing := MissingTables(db)
	if len(missing) > 0 {
		log.Printf("Warning: schema is incomplete, missing tables: %v. Run cmd/migrate first.", missing)
	}
	return nil
}

// MissingTables lists the tables of the schema registry not present in db
func MissingTables(db *gorm.DB) []string {
	var missing []string
	migrator := db.Migrator()
	for _, table := range models.TableNames() {
		if !migrator.HasTable(table) {
			missing = append(missing, table)
		}
	}
	return missing
}

// CreateIndexes creates lookup indexes on the foreign key columns
func CreateIndexes(db *gorm.DB) error {
	indexes := []struct {
		name  string
		query string
	}{
		{"idx_products_shop", "CREATE INDEX IF NOT EXISTS idx_products_shop ON products(shop_id)"},
		{"idx_products_category", "CREATE INDEX IF NOT EXISTS idx_products_category ON products(category_id)"},
		{"idx_orders_user", "CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id)"},
		{"idx_reviews_user", "CREATE INDEX IF NOT EXISTS idx_reviews_user ON reviews(user_id)"},
		{"idx_reviews_product", "CREATE INDEX IF NOT EXISTS idx_reviews_product ON reviews(product_id)"},
		{"idx_product_order_order", "CREATE INDEX IF NOT EXISTS idx_product_order_order ON product_order(order_id)"},
	}

	for _, idx := range indexes {
		if err := db.Exec(idx.query).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		log.Printf("  ✓ Created index: %s", idx.name)
	}
	return nil
}

// DropAll drops every table of the schema registry, children first
func DropAll(db *gorm.DB) error {
	tables := models.TableNames()
	migrator := db.Migrator()
	for i := len(tables) - 1; i >= 0; i-- {
		log.Printf("  Dropping table: %s", tables[i])
		if err := migrator.DropTable(tables[i]); err != nil {
			return fmt.Errorf("failed to drop %s: %w", tables[i], err)
		}
	}
	return nil
}

func tableNameOf(db *gorm.DB, model interface{}) string {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return fmt.Sprintf("%T", model)
	}
	return stmt.Schema.Table
}
