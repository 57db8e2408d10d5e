package config

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	JWT       JWTConfig       `yaml:"jwt"`
	Log       LogConfig       `yaml:"log"`
	Auth      AuthConfig      `yaml:"auth"`
	Archive   ArchiveConfig   `yaml:"archive"`
	Inventory InventoryConfig `yaml:"inventory"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// JWTConfig contains access token settings
type JWTConfig struct {
	Secret            string `yaml:"secret"`
	AccessTokenExpiry int    `yaml:"access_token_expiry_minutes"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// AuthConfig holds the fixed username allowlist mapped to roles.
type AuthConfig struct {
	Users map[string]string `yaml:"users"` // username -> "admin" | "employee"
}

// ArchiveConfig controls the retention window and export location.
type ArchiveConfig struct {
	RetentionMonths int    `yaml:"retention_months"`
	ExportDir       string `yaml:"export_dir"`
}

// InventoryConfig controls the debounced snapshot writer.
type InventoryConfig struct {
	DebounceMillis     int `yaml:"debounce_millis"`
	MinSyncIntervalSec int `yaml:"min_sync_interval_seconds"`
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	ArchiveOldTransactions string `yaml:"archive_old_transactions"`
	VerifyInventory        string `yaml:"verify_inventory"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// JWT
	if val := os.Getenv("JWT_SECRET"); val != "" {
		c.JWT.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Archive
	if val := os.Getenv("ARCHIVE_EXPORT_DIR"); val != "" {
		c.Archive.ExportDir = val
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret must be at least 32 characters")
	}

	if len(c.Auth.Users) == 0 {
		return fmt.Errorf("auth allowlist must contain at least one user")
	}
	for username, role := range c.Auth.Users {
		if role != "admin" && role != "employee" {
			return fmt.Errorf("user %q has unknown role %q", username, role)
		}
	}

	// Defaults
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Archive.RetentionMonths == 0 {
		c.Archive.RetentionMonths = 3
	}
	if c.Archive.ExportDir == "" {
		c.Archive.ExportDir = "exports"
	}
	if c.Inventory.DebounceMillis == 0 {
		c.Inventory.DebounceMillis = 1000
	}
	if c.Inventory.MinSyncIntervalSec == 0 {
		c.Inventory.MinSyncIntervalSec = 5
	}
	if c.Scheduler.ArchiveOldTransactions == "" {
		c.Scheduler.ArchiveOldTransactions = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.VerifyInventory == "" {
		c.Scheduler.VerifyInventory = "0 30 2 * * *" // 2:30 AM UTC
	}

	return nil
}

// Employees returns the allowlisted usernames holding the employee role,
// sorted for stable display.
func (c *Config) Employees() []string {
	var out []string
	for username, role := range c.Auth.Users {
		if role == "employee" {
			out = append(out, strings.ToLower(username))
		}
	}
	sort.Strings(out)
	return out
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
