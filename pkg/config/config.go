package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	OTP      OTPConfig
	OpenAI   OpenAIConfig
	Stripe   StripeConfig
	Mailjet  MailjetConfig
	Log      LogConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
	CORSOrigins []string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN builds the postgres connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type JWTConfig struct {
	SecretKey      string
	Algorithm      string
	AccessTokenTTL time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type OTPConfig struct {
	// Store is either "memory" or "redis".
	Store string
	TTL   time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	Currency      string
}

type MailjetConfig struct {
	MailjetBaseUrl  string
	MailjetAPIToken string
	MailjetSender   string
}

type LogConfig struct {
	Level string
	File  string
}

var supportedAlgorithms = map[string]bool{
	"HS256": true,
	"HS384": true,
	"HS512": true,
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	tokenTTL, err := strconv.Atoi(getEnv("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", "10080"))
	if err != nil || tokenTTL <= 0 {
		return nil, errors.New("invalid jwt access token expiry")
	}

	otpTTL, err := strconv.Atoi(getEnv("OTP_TTL_MINUTES", "5"))
	if err != nil || otpTTL <= 0 {
		return nil, errors.New("invalid otp ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "shiftHire API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "shift_hire"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey:      getEnv("JWT_SECRET", ""),
			Algorithm:      strings.ToUpper(getEnv("JWT_ALGORITHM", "HS256")),
			AccessTokenTTL: time.Duration(tokenTTL) * time.Minute,
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		OTP: OTPConfig{
			Store: strings.ToLower(getEnv("OTP_STORE", "memory")),
			TTL:   time.Duration(otpTTL) * time.Minute,
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_API_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			Currency:      strings.ToLower(getEnv("STRIPE_CURRENCY", "inr")),
		},
		Mailjet: MailjetConfig{
			MailjetBaseUrl:  getEnv("MAILJET_BASE_URL", "https://api.mailjet.com"),
			MailjetAPIToken: getEnv("MAILJET_SMS_TOKEN", ""),
			MailjetSender:   getEnv("MAILJET_SMS_SENDER", "shiftHire"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if !supportedAlgorithms[cfg.JWT.Algorithm] {
		return nil, fmt.Errorf("unsupported jwt algorithm %q", cfg.JWT.Algorithm)
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	if cfg.OTP.Store != "memory" && cfg.OTP.Store != "redis" {
		return nil, fmt.Errorf("unsupported otp store %q", cfg.OTP.Store)
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
