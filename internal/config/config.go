package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Auth         AuthConfig         `yaml:"auth"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Registration RegistrationConfig `yaml:"registration"`
	Bootstrap    BootstrapConfig    `yaml:"bootstrap"`
	Logging      LoggingConfig      `yaml:"logging"`
	Environment  string             `yaml:"environment"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DatabaseConfig struct {
	URL            string `yaml:"url"`
	MaxConnections int    `yaml:"max_connections"`
}

type AuthConfig struct {
	JWTSecret string        `yaml:"jwt_secret"`
	JWTExpiry time.Duration `yaml:"jwt_expiry"`
	Issuer    string        `yaml:"issuer"`
}

type RateLimitConfig struct {
	PublicPerMinute int `yaml:"public_per_minute"`
	AdminPerMinute  int `yaml:"admin_per_minute"`
	LoginPerMinute  int `yaml:"login_per_minute"`
}

type RegistrationConfig struct {
	EnforceCapacity bool `yaml:"enforce_capacity"`
}

// BootstrapConfig seeds a first organization and admin on startup so a fresh
// deployment has a way to log in. The bootstrap only runs when every field
// is set.
type BootstrapConfig struct {
	OrgName   string `yaml:"org_name"`
	OrgSlug   string `yaml:"org_slug"`
	AdminName string `yaml:"admin_name"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load builds configuration from environment variables. When path is
// non-empty the YAML file at path is read first and env vars override it.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Database: DatabaseConfig{
			MaxConnections: 25,
		},
		Auth: AuthConfig{
			JWTExpiry: 24 * time.Hour,
			Issuer:    "gatherly",
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: 60,
			AdminPerMinute:  0,
			LoginPerMinute:  5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Environment: "development",
	}
}

func applyEnv(cfg *Config) {
	cfg.Server.Host = getEnv("SERVER_HOST", cfg.Server.Host)
	cfg.Server.Port = getEnvInt("SERVER_PORT", cfg.Server.Port)

	cfg.Database.URL = getEnv("DATABASE_URL", cfg.Database.URL)
	cfg.Database.MaxConnections = getEnvInt("DATABASE_MAX_CONNECTIONS", cfg.Database.MaxConnections)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	if hours := getEnvInt("JWT_EXPIRY_HOURS", 0); hours > 0 {
		cfg.Auth.JWTExpiry = time.Duration(hours) * time.Hour
	}
	cfg.Auth.Issuer = getEnv("JWT_ISSUER", cfg.Auth.Issuer)

	cfg.RateLimit.PublicPerMinute = getEnvInt("RATE_LIMIT_PUBLIC", cfg.RateLimit.PublicPerMinute)
	cfg.RateLimit.AdminPerMinute = getEnvInt("RATE_LIMIT_ADMIN", cfg.RateLimit.AdminPerMinute)
	cfg.RateLimit.LoginPerMinute = getEnvInt("RATE_LIMIT_LOGIN", cfg.RateLimit.LoginPerMinute)

	cfg.Registration.EnforceCapacity = getEnvBool("REGISTRATION_ENFORCE_CAPACITY", cfg.Registration.EnforceCapacity)

	cfg.Bootstrap.OrgName = getEnv("BOOTSTRAP_ORG_NAME", cfg.Bootstrap.OrgName)
	cfg.Bootstrap.OrgSlug = getEnv("BOOTSTRAP_ORG_SLUG", cfg.Bootstrap.OrgSlug)
	cfg.Bootstrap.AdminName = getEnv("BOOTSTRAP_ADMIN_NAME", cfg.Bootstrap.AdminName)
	cfg.Bootstrap.Email = getEnv("BOOTSTRAP_ADMIN_EMAIL", cfg.Bootstrap.Email)
	cfg.Bootstrap.Password = getEnv("BOOTSTRAP_ADMIN_PASSWORD", cfg.Bootstrap.Password)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
