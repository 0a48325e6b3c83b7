package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Quote engine
	QuoteTTL              time.Duration
	SettlementGranularity int64 // smallest crypto payout denomination, in IDR

	// Rate provider
	RateAPIURL   string
	RateDefault  int64 // fallback IDR per USD when no fetch ever succeeded
	RateCacheTTL time.Duration

	// Ledger persistence
	LedgerDBPath string

	// Merchant overrides document
	MerchantConfigPath string

	// Admin auth
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AdminPasswordHash string // bcrypt hash; empty disables admin login

	// Ambient
	RateLimit          string // ulule/limiter formatted, e.g. "120-M"
	CORSAllowedOrigins []string
	PostHogAPIKey      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("QUOTE_TTL", "10m")
	viper.SetDefault("SETTLEMENT_GRANULARITY", 500)
	viper.SetDefault("RATE_API_URL", "https://api.exchangerate.host/latest?base=USD&symbols=IDR")
	viper.SetDefault("RATE_DEFAULT", 16500)
	viper.SetDefault("RATE_CACHE_TTL", "5m")
	viper.SetDefault("LEDGER_DB_PATH", "data/ledger")
	viper.SetDefault("MERCHANT_CONFIG_PATH", "merchant.json")
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "convert-backend")
	viper.SetDefault("ADMIN_PASSWORD_HASH", "")
	viper.SetDefault("RATE_LIMIT", "120-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	quoteTTLStr := viper.GetString("QUOTE_TTL")
	quoteTTL, err := time.ParseDuration(quoteTTLStr)
	if err != nil {
		quoteTTL = 10 * time.Minute
		log.Printf("Warning: Invalid value for QUOTE_TTL ('%s'). Defaulting to %s.\n", quoteTTLStr, quoteTTL)
	}
	cfg.QuoteTTL = quoteTTL

	cfg.SettlementGranularity = viper.GetInt64("SETTLEMENT_GRANULARITY")
	if cfg.SettlementGranularity <= 0 {
		cfg.SettlementGranularity = 500
		log.Printf("Warning: SETTLEMENT_GRANULARITY must be positive. Defaulting to %d.\n", cfg.SettlementGranularity)
	}

	cfg.RateAPIURL = viper.GetString("RATE_API_URL")
	cfg.RateDefault = viper.GetInt64("RATE_DEFAULT")
	if cfg.RateDefault <= 0 {
		cfg.RateDefault = 16500
		log.Printf("Warning: RATE_DEFAULT must be positive. Defaulting to %d.\n", cfg.RateDefault)
	}

	rateCacheTTLStr := viper.GetString("RATE_CACHE_TTL")
	rateCacheTTL, err := time.ParseDuration(rateCacheTTLStr)
	if err != nil {
		rateCacheTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for RATE_CACHE_TTL ('%s'). Defaulting to %s.\n", rateCacheTTLStr, rateCacheTTL)
	}
	cfg.RateCacheTTL = rateCacheTTL

	cfg.LedgerDBPath = viper.GetString("LEDGER_DB_PATH")
	cfg.MerchantConfigPath = viper.GetString("MERCHANT_CONFIG_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.AdminPasswordHash = viper.GetString("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set. Admin login and ledger deletion are disabled.")
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.CORSAllowedOrigins = strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",")
	cfg.PostHogAPIKey = viper.GetString("POSTHOG_API_KEY")

	return cfg, nil
}
