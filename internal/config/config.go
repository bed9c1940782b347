package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	LogLevel    string
	HTTPAddr    string

	// AuthJWTSecret signs session tokens. Startup fails without it.
	AuthJWTSecret  string
	GoogleClientID string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// DefaultCountryCode is prepended to phone numbers submitted without one.
	DefaultCountryCode string

	OTPStore  string
	RedisAddr string

	UploadDir string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "fixit"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		HTTPAddr:    ":" + getenv("PORT", "5000"),

		AuthJWTSecret:  strings.TrimSpace(getenv("JWT_SECRET", "")),
		GoogleClientID: strings.TrimSpace(getenv("GOOGLE_CLIENT_ID", "")),

		DBType:            getenv("DATABASE_TYPE", "postgres"),
		DBHost:            getenv("DATABASE_HOST", "localhost"),
		DBPort:            getenv("DATABASE_PORT", "5432"),
		DBName:            getenv("DATABASE_NAME", "fixit"),
		DBUser:            getenv("DATABASE_USER", "postgres"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 2),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 10),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		SMTPHost:     getenv("EMAIL_HOST", "smtp.gmail.com"),
		SMTPPort:     getenvInt("EMAIL_PORT", 465),
		SMTPUsername: getenv("EMAIL_USER", ""),
		SMTPPassword: getenv("EMAIL_PASS", ""),
		SMTPFrom:     getenv("EMAIL_FROM", getenv("EMAIL_USER", "")),

		TwilioAccountSID: strings.TrimSpace(getenv("TWILIO_ACCOUNT_SID", "")),
		TwilioAuthToken:  strings.TrimSpace(getenv("TWILIO_AUTH_TOKEN", "")),
		TwilioFromNumber: strings.TrimSpace(getenv("TWILIO_PHONE_NUMBER", "")),

		DefaultCountryCode: getenv("DEFAULT_COUNTRY_CODE", "+91"),

		OTPStore:  strings.ToLower(getenv("OTP_STORE", "memory")),
		RedisAddr: getenv("REDIS_ADDR", "localhost:6379"),

		UploadDir: getenv("UPLOAD_DIR", "uploads/avatars"),
	}
}

// Validate reports configuration that must stop the process at startup.
func (c Config) Validate() error {
	if c.AuthJWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

// Module wires configuration loading and validation.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Invoke(func(c Config) error { return c.Validate() }),
)
