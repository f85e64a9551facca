package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML). Every field can be
// overridden from the environment; see applyEnv.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Rates    RatesConfig    `yaml:"rates"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
}

type ServerConfig struct {
	Port        int      `yaml:"port"`
	Env         string   `yaml:"env"` // "development" or "production"
	CORSOrigins []string `yaml:"cors_origins"`
}

type RatesConfig struct {
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	BcryptCost  int           `yaml:"bcrypt_cost"`
	RecoveryTTL time.Duration `yaml:"recovery_ttl"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used when no file or environment says otherwise.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8080,
			Env:         "development",
			CORSOrigins: []string{"*"},
		},
		Rates: RatesConfig{
			BaseURL:  "https://api.bcb.gov.br",
			Timeout:  5 * time.Second,
			CacheTTL: time.Hour,
		},
		Auth: AuthConfig{
			TokenTTL:    time.Hour,
			BcryptCost:  10,
			RecoveryTTL: 30 * time.Minute,
		},
		Database: DatabaseConfig{
			Path: "./data/investeasy.db",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (optional,
// skipped when empty), then .env and process environment overrides.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for commands that only need part of it (the CLI never signs tokens).
func LoadUnchecked(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	c := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, c); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := c.applyEnv(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v, ok, err := envInt("API_PORT"); err != nil {
		return err
	} else if ok {
		c.Server.Port = v
	}
	if v := os.Getenv("API_ENV"); v != "" {
		c.Server.Env = v
	}
	if v := os.Getenv("INVESTEASY_RATES_BASE_URL"); v != "" {
		c.Rates.BaseURL = v
	}
	if v, ok, err := envDuration("INVESTEASY_RATES_TIMEOUT"); err != nil {
		return err
	} else if ok {
		c.Rates.Timeout = v
	}
	if v, ok, err := envDuration("INVESTEASY_RATES_CACHE_TTL"); err != nil {
		return err
	} else if ok {
		c.Rates.CacheTTL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v, ok, err := envDuration("INVESTEASY_TOKEN_TTL"); err != nil {
		return err
	} else if ok {
		c.Auth.TokenTTL = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("LOG_PRETTY: %w", err)
		}
		c.Log.Pretty = b
	}
	return nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Rates.Timeout <= 0 {
		return errors.New("rates.timeout must be > 0")
	}
	if c.Rates.CacheTTL <= 0 {
		return errors.New("rates.cache_ttl must be > 0")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return errors.New("auth.jwt_secret (or JWT_SECRET) must be at least 16 characters")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be > 0")
	}
	if c.Database.Path == "" {
		return errors.New("database.path is required")
	}
	return nil
}

// IsProduction reports whether the server runs in release mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func envInt(key string) (int, bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return n, true, nil
}

func envDuration(key string) (time.Duration, bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", key, err)
	}
	return d, true, nil
}
