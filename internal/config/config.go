package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the whole application configuration, populated from
// environment variables
type Config struct {
	App   AppConfig
	Store StoreConfig
	Redis RedisConfig
	CORS  CORSConfig
	Log   LogConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	DeployMode  DeployMode
}

// DeployMode selects how HTTP requests reach the router
type DeployMode string

const (
	// DeployServer is a long-running listener serving /api/contacts
	DeployServer DeployMode = "server"
	// DeployFunction handles one request per invocation, connecting lazily
	DeployFunction DeployMode = "function"
)

// StoreDriver is the backend chosen by the store URI scheme
type StoreDriver string

const (
	DriverMemory   StoreDriver = "memory"
	DriverMongo    StoreDriver = "mongodb"
	DriverPostgres StoreDriver = "postgres"
)

type StoreConfig struct {
	URI           string
	Driver        StoreDriver
	MongoDatabase string
}

type RedisConfig struct {
	Host     string // empty disables the list cache
	Password string
	DB       int
	CacheTTL time.Duration
}

// Enabled reports whether a Redis host is configured
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level string
}

// Default origins of the local frontend dev servers
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

const defaultStoreURI = "memory://"

// Load reads config from environment variables
func Load() (*Config, error) {
	storeURI := firstEnv(defaultStoreURI, "STORE_URI", "MONGODB_URI", "DATABASE_URL")

	driver, err := DetectDriver(storeURI)
	if err != nil {
		return nil, err
	}

	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_TTL: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Contact Manager API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "5000"),
			DeployMode:  DeployMode(strings.ToLower(getEnv("DEPLOY_MODE", string(DeployServer)))),
		},
		Store: StoreConfig{
			URI:           storeURI,
			Driver:        driver,
			MongoDatabase: getEnv("MONGODB_DATABASE", "contacts"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: cacheTTL,
		},
		CORS: CORSConfig{
			AllowedOrigins: AllowedOrigins(os.Getenv("FRONTEND_URL")),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	switch c.App.DeployMode {
	case DeployServer, DeployFunction:
	default:
		return fmt.Errorf("DEPLOY_MODE must be %q or %q, got %q", DeployServer, DeployFunction, c.App.DeployMode)
	}

	if c.App.DeployMode == DeployServer {
		port, err := strconv.Atoi(c.App.Port)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid PORT %q", c.App.Port)
		}
	}

	if c.Store.Driver == DriverMongo && c.Store.MongoDatabase == "" {
		return errors.New("MONGODB_DATABASE must not be empty")
	}

	if c.Redis.Enabled() && c.Redis.CacheTTL <= 0 {
		return errors.New("CACHE_TTL must be positive when REDIS_HOST is set")
	}

	// Production must persist somewhere real
	if c.IsProduction() && c.Store.Driver == DriverMemory {
		return errors.New("STORE_URI must point at mongodb or postgres in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// DetectDriver maps a store connection string to its backend
func DetectDriver(uri string) (StoreDriver, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("invalid store URI: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "memory":
		return DriverMemory, nil
	case "mongodb", "mongodb+srv":
		return DriverMongo, nil
	case "postgres", "postgresql":
		return DriverPostgres, nil
	case "":
		return "", errors.New("store URI has no scheme")
	default:
		return "", fmt.Errorf("unsupported store URI scheme %q", u.Scheme)
	}
}

// AllowedOrigins returns the default dev origins plus the comma-separated
// entries of frontendURL, trailing slashes trimmed and duplicates dropped
func AllowedOrigins(frontendURL string) []string {
	origins := make([]string, 0, len(defaultOrigins)+1)
	seen := make(map[string]struct{})

	add := func(o string) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" {
			return
		}
		if _, ok := seen[o]; ok {
			return
		}
		seen[o] = struct{}{}
		origins = append(origins, o)
	}

	for _, o := range defaultOrigins {
		add(o)
	}
	for _, o := range strings.Split(frontendURL, ",") {
		add(o)
	}
	return origins
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// firstEnv returns the first non-empty variable among keys
func firstEnv(defaultValue string, keys ...string) string {
	for _, key := range keys {
		if value := os.Getenv(key); value != "" {
			return value
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
