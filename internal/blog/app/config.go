package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/aussiebroadwan/quill/pkg/cryptox"
	"github.com/aussiebroadwan/quill/pkg/jwtx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ConfigFileEnv names the environment variable pointing at an optional YAML
// config file.
const ConfigFileEnv = "BLOG_CONFIG_FILE"

var ErrMissingSecret = errors.New("app: BLOG_JWT_SECRET is required outside dev")

type Config struct {
	JWTSecret  string        `yaml:"jwt_secret"`  // Required outside dev: HS256 secret, at least 32 bytes
	Issuer     string        `yaml:"issuer"`      // Optional: issuer claim for tokens (default: quill)
	AccessTTL  time.Duration `yaml:"access_ttl"`  // Optional: access token lifetime (default: 300s)
	RefreshTTL time.Duration `yaml:"refresh_ttl"` // Optional: refresh token lifetime (default: 3600s)
	HashCost   int           `yaml:"hash_cost"`   // Optional: bcrypt cost (default: 10)

	DatabaseFile        string        `yaml:"database_file"`         // Optional: path to SQLite database file (default: ./blog.db)
	Env                 string        `yaml:"env"`                   // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        `yaml:"log_level"`             // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        `yaml:"log_format"`            // Log format (json, text) (default: json)
	Port                int           `yaml:"port"`                  // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration `yaml:"shutdown_grace_period"` // Graceful shutdown timeout (default: 10s)

	// set by Validate when it had to generate a secret
	ephemeralSecret bool
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		Issuer:              "quill",
		AccessTTL:           jwtx.DefaultAccessTokenTTL,
		RefreshTTL:          jwtx.DefaultRefreshTokenTTL,
		HashCost:            cryptox.DefaultHashCost,
		DatabaseFile:        "blog.db",
		Env:                 "dev",
		LogLevel:            "info",
		LogFormat:           "json",
		Port:                8080,
		ShutdownGracePeriod: 10 * time.Second,
	}
}

// LoadConfig layers defaults, the YAML file named by BLOG_CONFIG_FILE, a
// local .env file and finally the process environment. Later layers win.
func LoadConfig() (Config, error) {
	// .env never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.JWTSecret = getEnvOrDefault("BLOG_JWT_SECRET", cfg.JWTSecret)
	cfg.Issuer = getEnvOrDefault("BLOG_ISSUER", cfg.Issuer)
	cfg.AccessTTL = getEnvDurationOrDefault("BLOG_ACCESS_TTL", cfg.AccessTTL)
	cfg.RefreshTTL = getEnvDurationOrDefault("BLOG_REFRESH_TTL", cfg.RefreshTTL)
	cfg.HashCost = getEnvIntOrDefault("BLOG_HASH_COST", cfg.HashCost)
	cfg.DatabaseFile = getEnvOrDefault("BLOG_DATABASE_FILE", cfg.DatabaseFile)
	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration. In dev an empty secret is replaced by a
// random one, so tokens do not survive a restart.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		if c.Env != "dev" {
			return ErrMissingSecret
		}
		secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		c.JWTSecret = secret
		c.ephemeralSecret = true
	}
	if len(c.JWTSecret) < jwtx.MinSecretLength {
		return fmt.Errorf("%w: need at least %d bytes", jwtx.ErrWeakSecret, jwtx.MinSecretLength)
	}

	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return fmt.Errorf("app: token lifetimes must be positive (access %s, refresh %s)", c.AccessTTL, c.RefreshTTL)
	}
	if _, err := cryptox.NewPasswordHasher(c.HashCost); err != nil {
		return err
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("app: invalid port %d", c.Port)
	}
	if c.DatabaseFile == "" {
		return errors.New("app: database file is required")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are seconds.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
