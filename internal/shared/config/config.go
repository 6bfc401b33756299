package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// JWT configuration
	JWT JWTConfig

	// Backend authority (remote booking/offer/payment API)
	Authority AuthorityConfig

	// Razorpay gateway
	Razorpay RazorpayConfig

	// Advance payment policy fallbacks
	AdvancePayment AdvancePaymentConfig

	// Kafka outcome events
	Kafka KafkaConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	// TTL values for different operations
	DraftTTL       time.Duration
	SummaryTTL     time.Duration
	PolicyCacheTTL time.Duration
	SessionLockTTL time.Duration
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret string
}

// AuthorityConfig holds the remote backend authority configuration.
// All booking/offer/payment truth lives on the authority; this service
// only orchestrates calls against it.
type AuthorityConfig struct {
	BaseURL string

	// DefaultTimeout bounds ordinary calls, CriticalTimeout bounds
	// payment verification and booking creation.
	DefaultTimeout  time.Duration
	CriticalTimeout time.Duration
}

// RazorpayConfig holds gateway credentials and order-creation retry policy
type RazorpayConfig struct {
	KeyID        string
	KeySecret    string
	OrderRetries int
	RetryBackoff time.Duration
}

// AdvancePaymentConfig holds fallbacks used when the authority's
// advance-payment settings are disabled or malformed
type AdvancePaymentConfig struct {
	FallbackPercentage float64
}

// KafkaConfig holds Kafka configuration for checkout outcome events
type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	OutcomeTopic string
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled         bool          `json:"enabled"`
	WindowDuration  time.Duration `json:"window_duration"`
	DefaultRequests int           `json:"default_requests"`
	PaymentRequests int           `json:"payment_requests"`
	WhitelistedIPs  []string      `json:"whitelisted_ips"`
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "venuepay_db"),
			User:     getEnv("DB_USER", "venuepay_user"),
			Password: getEnv("DB_PASSWORD", "venuepay_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),

			// TTL configurations with defaults
			DraftTTL:       getDurationEnv("REDIS_DRAFT_TTL", 24*time.Hour),
			SummaryTTL:     getDurationEnv("REDIS_SUMMARY_TTL", 48*time.Hour),
			PolicyCacheTTL: getDurationEnv("REDIS_POLICY_CACHE_TTL", 30*time.Minute),
			SessionLockTTL: getDurationEnv("REDIS_SESSION_LOCK_TTL", 20*time.Minute),
		},

		// JWT configuration
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-super-secret-jwt-key"),
		},

		// Backend authority
		Authority: AuthorityConfig{
			BaseURL:         getEnv("AUTHORITY_BASE_URL", "http://localhost:9000/api/v1"),
			DefaultTimeout:  getDurationEnv("AUTHORITY_TIMEOUT", 15*time.Second),
			CriticalTimeout: getDurationEnv("AUTHORITY_CRITICAL_TIMEOUT", 25*time.Second),
		},

		// Razorpay gateway
		Razorpay: RazorpayConfig{
			KeyID:        getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret:    getEnv("RAZORPAY_KEY_SECRET", ""),
			OrderRetries: getIntEnv("RAZORPAY_ORDER_RETRIES", 2),
			RetryBackoff: getDurationEnv("RAZORPAY_RETRY_BACKOFF", 300*time.Millisecond),
		},

		// Advance payment fallbacks
		AdvancePayment: AdvancePaymentConfig{
			FallbackPercentage: getFloatEnv("ADVANCE_FALLBACK_PERCENTAGE", 50),
		},

		// Kafka outcome events
		Kafka: KafkaConfig{
			Enabled:      getBoolEnv("KAFKA_ENABLED", false),
			Brokers:      getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
			OutcomeTopic: getEnv("KAFKA_OUTCOME_TOPIC", "checkout-outcomes"),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:         getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:  getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests: getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PaymentRequests: getIntEnv("RATE_LIMIT_PAYMENT_REQUESTS", 10),
			WhitelistedIPs:  getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getFloatEnv gets a float environment variable with a fallback value
func getFloatEnv(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode == "debug"
}

// GetServerAddress returns the full server address
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the API base path
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}
