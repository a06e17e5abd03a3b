package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/marketplace/config"
	"github.com/marketplace/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the process-wide handle set by Initialize
var DB *gorm.DB

// pingTimeout bounds the connectivity check performed by Open
const pingTimeout = 10 * time.Second

// Options tunes how the connection is opened
type Options struct {
	// DisableQueryLog silences GORM's statement logging and the in-memory SQL log
	DisableQueryLog bool
	// LogLevel for GORM's logger when query logging is enabled; defaults to Warn
	LogLevel logger.LogLevel
	// Now supplies timestamps for add_date columns; defaults to UTC wall clock
	Now func() time.Time
}

// Initialize initializes the database connection
func Initialize(cfg *config.DatabaseConfig) error {
	return InitializeWithOptions(cfg, Options{})
}

// InitializeWithOptions initializes the database connection with options
func InitializeWithOptions(cfg *config.DatabaseConfig, opts Options) error {
	db, err := Open(cfg, opts)
	if err != nil {
		return err
	}
	DB = db
	log.Printf("Database connection established successfully (%s)", cfg)
	return nil
}

// Open connects to the configured database and verifies it answers. The
// returned handle is safe for concurrent use; units of work are obtained
// from it with Begin or Transaction.
func Open(cfg *config.DatabaseConfig, opts Options) (*gorm.DB, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	now := opts.Now
	if now == nil {
		now = defaultNow
	}

	// Configure GORM with custom logger
	var gormLogger logger.Interface
	if opts.DisableQueryLog {
		gormLogger = logger.Default.LogMode(logger.Silent)
	} else {
		level := opts.LogLevel
		if level == 0 {
			level = logger.Warn
		}
		gormLogger = &CustomGormLogger{
			Interface: logger.Default.LogMode(level),
			Queries:   SQLLogger,
		}
	}

	gormConfig := &gorm.Config{
		Logger:         gormLogger,
		NowFunc:        now,
		TranslateError: true,
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := registerJoinTables(db); err != nil {
		sqlDB.Close()
		return nil, err
	}

	return db, nil
}

// registerJoinTables binds the product_order many-to-many relation to the
// ProductOrder model so migration gives it a composite primary key.
func registerJoinTables(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Product{}, "Orders", &models.ProductOrder{}); err != nil {
		return fmt.Errorf("failed to register product_order for products: %w", err)
	}
	if err := db.SetupJoinTable(&models.Order{}, "Products", &models.ProductOrder{}); err != nil {
		return fmt.Errorf("failed to register product_order for orders: %w", err)
	}
	return nil
}

func dialectorFor(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return postgres.Open(cfg.GetDSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.GetDSN()), nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, cfg.Driver)
	}
}

// defaultNow truncates to microseconds, the precision PostgreSQL keeps,
// so a re-read timestamp equals the value set at insert.
func defaultNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return DB
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
