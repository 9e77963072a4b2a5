package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Engine    EngineConfig    `mapstructure:"engine"`
	Session   SessionConfig   `mapstructure:"session"`
	Leads     LeadsConfig     `mapstructure:"leads"`
	PDF       PDFConfig       `mapstructure:"pdf"`
	Admin     AdminConfig     `mapstructure:"admin"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// IsProduction reports whether the server runs in production mode
func (s ServerConfig) IsProduction() bool {
	return s.Environment == "production"
}

// CatalogConfig tells where the food catalog comes from
type CatalogConfig struct {
	Source  string        `mapstructure:"source"` // "file" or "http"
	Path    string        `mapstructure:"path"`
	URL     string        `mapstructure:"url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// EngineConfig tunes the nutrition engine
type EngineConfig struct {
	SubstitutionTriggers []string `mapstructure:"substitution_triggers"`
}

// SessionConfig holds session storage configuration
type SessionConfig struct {
	Store    string        `mapstructure:"store"` // "memory" or "redis"
	RedisURL string        `mapstructure:"redis_url"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// LeadsConfig holds lead log configuration
type LeadsConfig struct {
	Driver string `mapstructure:"driver"` // "csv", "postgres" or "sqlite"
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

// PDFConfig holds document archive configuration
type PDFConfig struct {
	Archive    string        `mapstructure:"archive"` // "none", "local" or "s3"
	Dir        string        `mapstructure:"dir"`
	S3Bucket   string        `mapstructure:"s3_bucket"`
	S3Region   string        `mapstructure:"s3_region"`
	PresignTTL time.Duration `mapstructure:"presign_ttl"`
}

// AdminConfig holds the lead export credentials. Leaving them empty disables the admin API.
type AdminConfig struct {
	Username     string        `mapstructure:"username"`
	PasswordHash string        `mapstructure:"password_hash"`
	JWTSecret    string        `mapstructure:"jwt_secret"`
	TokenTTL     time.Duration `mapstructure:"token_ttl"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/nutriquiz/")

	// NUTRIQUIZ_SESSION_REDIS_URL -> session.redis_url
	v.SetEnvPrefix("NUTRIQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads ./.env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values.
// Every key needs a default so AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Catalog defaults
	v.SetDefault("catalog.source", "file")
	v.SetDefault("catalog.path", "data/foods.json")
	v.SetDefault("catalog.url", "")
	v.SetDefault("catalog.timeout", "10s")

	// Engine defaults
	v.SetDefault("engine.substitution_triggers", []string{"medium", "bad"})

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.redis_url", "")
	v.SetDefault("session.ttl", "2h")

	// Lead defaults
	v.SetDefault("leads.driver", "csv")
	v.SetDefault("leads.path", "data/leads.csv")
	v.SetDefault("leads.dsn", "")

	// PDF defaults
	v.SetDefault("pdf.archive", "none")
	v.SetDefault("pdf.dir", "data/plans")
	v.SetDefault("pdf.s3_bucket", "")
	v.SetDefault("pdf.s3_region", "us-east-1")
	v.SetDefault("pdf.presign_ttl", "15m")

	// Admin defaults
	v.SetDefault("admin.username", "")
	v.SetDefault("admin.password_hash", "")
	v.SetDefault("admin.jwt_secret", "")
	v.SetDefault("admin.token_ttl", "12h")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
	v.SetDefault("ratelimit.burst", 20)
}

// validate validates the configuration
func validate(config *Config) error {
	switch config.Catalog.Source {
	case "file":
		if config.Catalog.Path == "" {
			return fmt.Errorf("catalog path is required when catalog source is 'file'")
		}
	case "http":
		if config.Catalog.URL == "" {
			return fmt.Errorf("catalog URL is required when catalog source is 'http'")
		}
	default:
		return fmt.Errorf("catalog source must be 'file' or 'http', got: %s", config.Catalog.Source)
	}

	for i, c := range config.Engine.SubstitutionTriggers {
		c = strings.ToLower(strings.TrimSpace(c))
		config.Engine.SubstitutionTriggers[i] = c
		switch c {
		case "good", "medium", "bad":
		default:
			return fmt.Errorf("unknown substitution trigger category: %s", c)
		}
	}

	if config.Session.Store != "memory" && config.Session.Store != "redis" {
		return fmt.Errorf("session store must be 'memory' or 'redis', got: %s", config.Session.Store)
	}
	if config.Session.Store == "redis" && config.Session.RedisURL == "" {
		return fmt.Errorf("Redis URL is required when session store is 'redis'")
	}
	if config.Session.TTL <= 0 {
		return fmt.Errorf("session TTL must be positive, got: %v", config.Session.TTL)
	}

	switch config.Leads.Driver {
	case "csv":
		if config.Leads.Path == "" {
			return fmt.Errorf("lead path is required when lead driver is 'csv'")
		}
	case "postgres", "sqlite":
		if config.Leads.DSN == "" {
			return fmt.Errorf("lead DSN is required when lead driver is '%s'", config.Leads.Driver)
		}
	default:
		return fmt.Errorf("lead driver must be 'csv', 'postgres' or 'sqlite', got: %s", config.Leads.Driver)
	}

	switch config.PDF.Archive {
	case "none":
	case "local":
		if config.PDF.Dir == "" {
			return fmt.Errorf("PDF directory is required when archive is 'local'")
		}
	case "s3":
		if config.PDF.S3Bucket == "" {
			return fmt.Errorf("S3 bucket is required when archive is 's3'")
		}
	default:
		return fmt.Errorf("PDF archive must be 'none', 'local' or 's3', got: %s", config.PDF.Archive)
	}

	if config.Admin.Username != "" && (config.Admin.PasswordHash == "" || config.Admin.JWTSecret == "") {
		return fmt.Errorf("admin password hash and JWT secret are required when admin username is set")
	}

	if config.RateLimit.PerIP < 0 || config.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limits cannot be negative")
	}

	return nil
}
