package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// ErrUnsupportedDriver is returned for connection strings naming a driver
// other than postgres or sqlite.
var ErrUnsupportedDriver = errors.New("unsupported database driver")

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	App      AppConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Environment string
	LogSQL      bool
}

// Load loads configuration from environment variables. DATABASE_URL, when
// set, takes precedence over the discrete DB_* variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	db := DatabaseConfig{
		Driver:   getEnv("DB_DRIVER", DriverPostgres),
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "marketplace"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	if raw, ok := os.LookupEnv("DATABASE_URL"); ok && raw != "" {
		parsed, err := ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_URL: %w", err)
		}
		db = *parsed
	}

	var err error
	if db.MaxIdleConns, err = getEnvInt("DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if db.MaxOpenConns, err = getEnvInt("DB_MAX_OPEN_CONNS", 100); err != nil {
		return nil, err
	}
	if db.ConnMaxLifetime, err = getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour); err != nil {
		return nil, err
	}

	logSQL, err := getEnvBool("DB_LOG_SQL", false)
	if err != nil {
		return nil, err
	}

	config := &Config{
		Database: db,
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogSQL:      logSQL,
		},
	}

	if err := config.Database.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ParseURL parses a connection string of the form
// <driver>://<user>:<password>@<host>[:port]/<database>.
// "postgresql+psycopg2" style schemes are accepted and reduced to the
// driver name. For sqlite the path after the scheme is the database file.
func ParseURL(raw string) (*DatabaseConfig, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}

	scheme, _, _ := strings.Cut(strings.ToLower(u.Scheme), "+")
	switch scheme {
	case "postgres", "postgresql":
		cfg := &DatabaseConfig{
			Driver:  DriverPostgres,
			Host:    u.Hostname(),
			Port:    u.Port(),
			DBName:  strings.TrimPrefix(u.Path, "/"),
			SSLMode: "disable",
		}
		if cfg.Port == "" {
			cfg.Port = "5432"
		}
		if u.User != nil {
			cfg.User = u.User.Username()
			cfg.Password, _ = u.User.Password()
		}
		if mode := u.Query().Get("sslmode"); mode != "" {
			cfg.SSLMode = mode
		}
		return cfg, nil
	case "sqlite", "sqlite3":
		// sqlite:///abs/path.db keeps the leading slash, sqlite://file.db is relative
		name := u.Host + u.Path
		if u.RawQuery != "" {
			name += "?" + u.RawQuery
		}
		return &DatabaseConfig{Driver: DriverSQLite, DBName: name}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, u.Scheme)
	}
}

// Validate reports configuration that cannot produce a connection.
func (c *DatabaseConfig) Validate() error {
	switch c.Driver {
	case DriverPostgres:
		if c.Host == "" {
			return errors.New("database host is required")
		}
	case DriverSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDriver, c.Driver)
	}
	if c.DBName == "" {
		return errors.New("database name is required")
	}
	return nil
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	if c.Driver == DriverSQLite {
		sep := "?"
		if strings.Contains(c.DBName, "?") {
			sep = "&"
		}
		return c.DBName + sep + "_foreign_keys=on"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		quoteDSN(c.Host), quoteDSN(c.Port), quoteDSN(c.User), quoteDSN(c.Password),
		quoteDSN(c.DBName), quoteDSN(c.SSLMode))
}

var dsnEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// quoteDSN quotes a key/value DSN value so spaces and quotes survive parsing
func quoteDSN(v string) string {
	return "'" + dsnEscaper.Replace(v) + "'"
}

// String describes the target without the password, for logs.
func (c *DatabaseConfig) String() string {
	if c.Driver == DriverSQLite {
		return fmt.Sprintf("sqlite://%s", c.DBName)
	}
	return fmt.Sprintf("postgres://%s@%s:%s/%s", c.User, c.Host, c.Port, c.DBName)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvBool(key string, fallback bool) (bool, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
