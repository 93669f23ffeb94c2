package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Search   SearchConfig   `yaml:"search"`
	MLSApi   MLSApiConfig   `yaml:"mls_api"`
	Sync     SyncConfig     `yaml:"sync"`
	Logging  LoggingConfig  `yaml:"logging"`
	Server   ServerConfig   `yaml:"server"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Type     string         `yaml:"type"`
	MySQL    MySQLConfig    `yaml:"mysql"`
	Postgres PostgresConfig `yaml:"postgres"`
}

// MySQLConfig contains MySQL connection settings
type MySQLConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// PostgresConfig contains PostgreSQL connection settings
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// RedisConfig contains Redis connection settings (distributed lock)
type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SearchConfig contains search engine settings
type SearchConfig struct {
	Meilisearch MeilisearchConfig `yaml:"meilisearch"`
}

// MeilisearchConfig contains Meilisearch connection settings
type MeilisearchConfig struct {
	Host   string `yaml:"host"`
	APIKey string `yaml:"api_key"`
}

// MLSApiConfig contains upstream MLS provider settings
type MLSApiConfig struct {
	BaseURL             string `yaml:"base_url"`
	AccessToken         string `yaml:"access_token"`
	PageSize            int    `yaml:"page_size"`
	RequestDelaySeconds int    `yaml:"request_delay_seconds"`
	TimeoutSeconds      int    `yaml:"timeout_seconds"`
	MaxRetries          int    `yaml:"max_retries"`
	RetryDelaySeconds   int    `yaml:"retry_delay_seconds"`
}

// SyncConfig contains extraction engine settings
type SyncConfig struct {
	SessionLimit         int    `yaml:"session_limit"`
	MaxConsecutiveErrors int    `yaml:"max_consecutive_errors"`
	RelatedChunkSize     int    `yaml:"related_chunk_size"`
	LockName             string `yaml:"lock_name"`
	LockTTLMinutes       int    `yaml:"lock_ttl_minutes"`
	CronEnabled          bool   `yaml:"cron_enabled"`
	CronSchedule         string `yaml:"cron_schedule"`
	ResyncEnabled        bool   `yaml:"resync_enabled"`
	ResyncTime           string `yaml:"resync_time"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Port         int      `yaml:"port"`
	AllowOrigins []string `yaml:"allow_origins"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Type: "mysql",
		},
		Redis: RedisConfig{
			Address: "localhost:6379",
		},
		MLSApi: MLSApiConfig{
			PageSize:            200,
			RequestDelaySeconds: 1,
			TimeoutSeconds:      30,
			MaxRetries:          3,
			RetryDelaySeconds:   2,
		},
		Sync: SyncConfig{
			SessionLimit:         1000,
			MaxConsecutiveErrors: 5,
			RelatedChunkSize:     50,
			LockName:             "mls:extraction",
			LockTTLMinutes:       15,
			CronEnabled:          true,
			CronSchedule:         "*/15 * * * *",
			ResyncEnabled:        false,
			ResyncTime:           "02:00",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Server: ServerConfig{
			Port:         8080,
			AllowOrigins: []string{"http://localhost:5176"},
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(filepath string) (*Config, error) {
	// Start with default config
	config := DefaultConfig()

	// If file doesn't exist, return default config with env overrides
	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		config.applyEnvOverrides()
		return config, nil
	}

	// Read file
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvOverrides()
	return config, nil
}

// applyEnvOverrides lets environment variables win over file values,
// so credentials stay out of the config file in deployments
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MLS_API_BASE_URL"); v != "" {
		c.MLSApi.BaseURL = v
	}
	if v := os.Getenv("MLS_API_TOKEN"); v != "" {
		c.MLSApi.AccessToken = v
	}
	if v := os.Getenv("REDIS_ADDRESS"); v != "" {
		c.Redis.Address = v
	}
	if v := os.Getenv("MEILISEARCH_HOST"); v != "" {
		c.Search.Meilisearch.Host = v
	}
	if v := os.Getenv("MEILISEARCH_KEY"); v != "" {
		c.Search.Meilisearch.APIKey = v
	}
	if v := os.Getenv("DB_TYPE"); v != "" {
		c.Database.Type = v
	}
}

// HasCredentials reports whether the upstream provider is configured
func (c *MLSApiConfig) HasCredentials() bool {
	return c.BaseURL != "" && c.AccessToken != ""
}

// GetRequestDelay returns the inter-request delay as a duration
func (c *MLSApiConfig) GetRequestDelay() time.Duration {
	return time.Duration(c.RequestDelaySeconds) * time.Second
}

// GetTimeout returns the HTTP timeout as a duration
func (c *MLSApiConfig) GetTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// GetRetryDelay returns the base retry delay as a duration
func (c *MLSApiConfig) GetRetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

// GetLockTTL returns the distributed lock TTL as a duration
func (c *SyncConfig) GetLockTTL() time.Duration {
	return time.Duration(c.LockTTLMinutes) * time.Minute
}
