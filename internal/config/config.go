package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	// One-time codes (email confirmation, password recovery, OAuth handoff)
	SignupCodeExpiry   time.Duration
	RecoveryCodeExpiry time.Duration

	// Google OAuth
	GoogleClientID string

	// Generative AI (Gemini)
	GeminiAPIKey      string
	GeminiAPIURL      string
	GeminiModel       string
	GeminiVisionModel string
	AITimeout         time.Duration

	// Object storage (meal images)
	GCSBucket    string
	GCSCDNDomain string

	// Mail (SendGrid)
	SendGridAPIKey string
	MailFromEmail  string

	// Server
	Port        string
	CORSOrigins string
	SiteURL     string
}

func Load() *Config {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "ketomate_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTAccessExpiry:  parseDuration(getEnv("JWT_ACCESS_EXPIRY", "15m")),
		JWTRefreshExpiry: parseDuration(getEnv("JWT_REFRESH_EXPIRY", "168h")),

		SignupCodeExpiry:   parseDuration(getEnv("SIGNUP_CODE_EXPIRY", "24h")),
		RecoveryCodeExpiry: parseDuration(getEnv("RECOVERY_CODE_EXPIRY", "1h")),

		GoogleClientID: getEnv("GOOGLE_CLIENT_ID", ""),

		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		GeminiAPIURL:      getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiVisionModel: getEnv("GEMINI_VISION_MODEL", "gemini-2.5-flash"),
		AITimeout:         parseDuration(getEnv("AI_TIMEOUT", "60s")),

		GCSBucket:    getEnv("GCS_BUCKET", ""),
		GCSCDNDomain: getEnv("GCS_CDN_DOMAIN", ""),

		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		MailFromEmail:  getEnv("MAIL_FROM_EMAIL", "no-reply@ketomate.app"),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		SiteURL:     getEnv("SITE_URL", "http://localhost:3000"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
