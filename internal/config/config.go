// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	CMS      CMSConfig
	Catalog  CatalogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Storage  StorageConfig
	Cart     CartConfig
	Order    OrderConfig
	Security SecurityConfig
	External ExternalConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	BaseURL     string

	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
	CompanyEmail   string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// CMSConfig contains the headless content store connection settings
type CMSConfig struct {
	ProjectID   string
	Dataset     string
	APIVersion  string
	UseCDN      bool
	Token       string
	BaseURL     string // overrides the derived host when set
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
	ImageWidth  int
}

// CatalogConfig contains catalog query settings
type CatalogConfig struct {
	FeaturedTitle string
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Driver       string
	Host         string
	Port         string
	Name         string
	User         string
	Password     string
	SSLMode      string
	SQLitePath   string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SessionConfig contains session token configuration
type SessionConfig struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	HeaderName string
	Secure     bool
}

// StorageConfig contains per-session storage configuration
type StorageConfig struct {
	TTL           time.Duration
	ComparisonTTL time.Duration
	SearchIdleTTL time.Duration
}

// CartConfig contains cart behaviour switches
type CartConfig struct {
	DuplicatePolicy string
}

// OrderConfig contains order confirmation settings
type OrderConfig struct {
	ClearSnapshotOnContinue bool
	MinDeliveryDays         int
	MaxDeliveryDays         int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
	MaxBodyBytes       int64
}

// ExternalConfig contains external service configurations
type ExternalConfig struct {
	Email EmailConfig
	PDF   PDFConfig
}

// EmailConfig contains email service configuration
type EmailConfig struct {
	Provider     string
	APIKey       string
	FromEmail    string
	FromName     string
	ReplyTo      string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPUseTLS   bool
	TemplateDir  string
}

// PDFConfig contains invoice rendering configuration
type PDFConfig struct {
	Enabled bool
	DPI     uint
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and the given .env files
func Load(envFiles ...string) (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(envFiles...); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:           getEnv("APP_NAME", "Storefront Backend"),
			Version:        getEnv("APP_VERSION", "1.0.0"),
			Environment:    getEnv("APP_ENV", "development"),
			Debug:          getEnvAsBool("APP_DEBUG", true),
			BaseURL:        getEnv("APP_BASE_URL", "http://localhost:3000"),
			CompanyName:    getEnv("COMPANY_NAME", "Comforty"),
			CompanyAddress: getEnv("COMPANY_ADDRESS", ""),
			CompanyPhone:   getEnv("COMPANY_PHONE", "(808) 555-0111"),
			CompanyEmail:   getEnv("COMPANY_EMAIL", "support@example.com"),
		},
		Server: ServerConfig{
			Port:           getEnv("APP_PORT", "8080"),
			ReadTimeout:    getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:   getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:    getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			RequestTimeout: getEnvAsDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		},
		CMS: CMSConfig{
			ProjectID:   getEnv("CMS_PROJECT_ID", ""),
			Dataset:     getEnv("CMS_DATASET", "production"),
			APIVersion:  getEnv("CMS_API_VERSION", "2025-01-01"),
			UseCDN:      getEnvAsBool("CMS_USE_CDN", true),
			Token:       getEnv("CMS_TOKEN", ""),
			BaseURL:     getEnv("CMS_BASE_URL", ""),
			Timeout:     getEnvAsDuration("CMS_TIMEOUT", 10*time.Second),
			MaxAttempts: getEnvAsInt("CMS_MAX_ATTEMPTS", 1),
			RetryDelay:  getEnvAsDuration("CMS_RETRY_DELAY", 100*time.Millisecond),
			ImageWidth:  getEnvAsInt("CMS_IMAGE_WIDTH", 200),
		},
		Catalog: CatalogConfig{
			FeaturedTitle: getEnv("CATALOG_FEATURED_TITLE", "ComfyChair"),
		},
		Database: DatabaseConfig{
			Driver:       getEnv("DB_DRIVER", "postgres"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			Name:         getEnv("DB_NAME", "storefront_db"),
			User:         getEnv("DB_USER", "storefront_user"),
			Password:     getEnv("DB_PASSWORD", "storefront_password"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			SQLitePath:   getEnv("DB_SQLITE_PATH", "storefront.db"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			MaxLifetime:  getEnvAsDuration("DB_MAX_LIFETIME", 300*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Session: SessionConfig{
			Secret:     getEnv("SESSION_SECRET", "your-super-secret-session-key-change-in-production"),
			TTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CookieName: getEnv("SESSION_COOKIE", "session_id"),
			HeaderName: getEnv("SESSION_HEADER", "X-Session-Token"),
			Secure:     getEnvAsBool("SESSION_COOKIE_SECURE", false),
		},
		Storage: StorageConfig{
			TTL:           getEnvAsDuration("STORAGE_TTL", 24*time.Hour),
			ComparisonTTL: getEnvAsDuration("COMPARISON_TTL", 30*time.Minute),
			SearchIdleTTL: getEnvAsDuration("SEARCH_IDLE_TTL", 10*time.Minute),
		},
		Cart: CartConfig{
			DuplicatePolicy: getEnv("CART_DUPLICATE_POLICY", "append"),
		},
		Order: OrderConfig{
			ClearSnapshotOnContinue: getEnvAsBool("ORDER_CLEAR_SNAPSHOT_ON_CONTINUE", false),
			MinDeliveryDays:         getEnvAsInt("ORDER_MIN_DELIVERY_DAYS", 3),
			MaxDeliveryDays:         getEnvAsInt("ORDER_MAX_DELIVERY_DAYS", 5),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:3001"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "X-Session-Token"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
			MaxBodyBytes:       getEnvAsInt64("MAX_BODY_BYTES", 1<<20), // 1MB
		},
		External: ExternalConfig{
			Email: EmailConfig{
				Provider:     getEnv("EMAIL_PROVIDER", "log"),
				APIKey:       getEnv("EMAIL_API_KEY", ""),
				FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
				FromName:     getEnv("FROM_NAME", "Comforty"),
				ReplyTo:      getEnv("REPLY_TO_EMAIL", ""),
				SMTPHost:     getEnv("SMTP_HOST", ""),
				SMTPPort:     getEnvAsInt("SMTP_PORT", 587),
				SMTPUsername: getEnv("SMTP_USER", ""),
				SMTPPassword: getEnv("SMTP_PASS", ""),
				SMTPUseTLS:   getEnvAsBool("SMTP_USE_TLS", false),
				TemplateDir:  getEnv("EMAIL_TEMPLATE_DIR", "./templates/emails"),
			},
			PDF: PDFConfig{
				Enabled: getEnvAsBool("PDF_ENABLED", true),
				DPI:     uint(getEnvAsInt("PDF_DPI", 300)),
			},
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters long")
	}

	if c.CMS.ProjectID == "" && c.CMS.BaseURL == "" {
		return fmt.Errorf("CMS_PROJECT_ID is required")
	}
	if c.CMS.Dataset == "" {
		return fmt.Errorf("CMS_DATASET is required")
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Database.Host == "" {
			return fmt.Errorf("DB_HOST is required")
		}
		if c.Database.Name == "" {
			return fmt.Errorf("DB_NAME is required")
		}
		if c.Database.User == "" {
			return fmt.Errorf("DB_USER is required")
		}
	case "sqlite":
		if c.Database.SQLitePath == "" {
			return fmt.Errorf("DB_SQLITE_PATH is required")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.Database.Driver)
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	switch c.Cart.DuplicatePolicy {
	case "append", "merge":
	default:
		return fmt.Errorf("CART_DUPLICATE_POLICY must be append or merge, got %q", c.Cart.DuplicatePolicy)
	}

	if c.Order.MinDeliveryDays < 0 || c.Order.MaxDeliveryDays < c.Order.MinDeliveryDays {
		return fmt.Errorf("ORDER_MIN_DELIVERY_DAYS/ORDER_MAX_DELIVERY_DAYS out of range")
	}

	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions for environment variable parsing

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
