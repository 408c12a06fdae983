package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingEnv is returned by Validate when a required variable is absent
var ErrMissingEnv = errors.New("missing required environment variable")

// LoadENV loads the environment variables from .env if GO_ENV is not set
// (or is "development"). A missing .env file is not an error: the process
// environment may already carry everything.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariables struct {
	GO_ENV string
	PORT   int

	// Store endpoint. DATABASE_URL wins over the DB_* parts.
	DB_DRIVER    string
	DATABASE_URL string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string

	// Credential tiers
	PUBLIC_ANON_KEY  string
	SERVICE_ROLE_KEY string

	// Admin sessions
	JWT_SECRET string
	JWT_ISSUER string

	REDIS_URL string

	// Object storage (S3 compatible)
	STORAGE_BUCKET     string
	STORAGE_REGION     string
	STORAGE_ENDPOINT   string
	STORAGE_ACCESS_KEY string
	STORAGE_SECRET_KEY string
	STORAGE_CDN_URL    string

	// Admission mail
	SMTP_HOST        string
	SMTP_PORT        int
	SMTP_USERNAME    string
	SMTP_PASSWORD    string
	SMTP_FROM        string
	ADMISSIONS_EMAIL string
	SITE_NAME        string

	ALLOWED_ORIGINS string
	CRON_ENABLED    bool
}

func Get() (*EnvironmentVariables, error) {
	port := getIntOrDefault("PORT", 8080)

	env := &EnvironmentVariables{
		GO_ENV:       os.Getenv("GO_ENV"),
		PORT:         port,
		DB_DRIVER:    getEnvOrDefault("DB_DRIVER", "postgres"),
		DATABASE_URL: os.Getenv("DATABASE_URL"),
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      getEnvOrDefault("DB_HOST", "localhost"),
		DB_PORT:      getEnvOrDefault("DB_PORT", "5432"),
		DB_SSL_MODE:  getEnvOrDefault("DB_SSL_MODE", "disable"),

		PUBLIC_ANON_KEY:  os.Getenv("PUBLIC_ANON_KEY"),
		SERVICE_ROLE_KEY: os.Getenv("SERVICE_ROLE_KEY"),

		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: getEnvOrDefault("JWT_ISSUER", "edu-group-site"),

		REDIS_URL: os.Getenv("REDIS_URL"),

		STORAGE_BUCKET:     os.Getenv("STORAGE_BUCKET"),
		STORAGE_REGION:     os.Getenv("STORAGE_REGION"),
		STORAGE_ENDPOINT:   os.Getenv("STORAGE_ENDPOINT"),
		STORAGE_ACCESS_KEY: os.Getenv("STORAGE_ACCESS_KEY"),
		STORAGE_SECRET_KEY: os.Getenv("STORAGE_SECRET_KEY"),
		STORAGE_CDN_URL:    os.Getenv("STORAGE_CDN_URL"),

		SMTP_HOST:        getEnvOrDefault("SMTP_HOST", "smtp.gmail.com"),
		SMTP_PORT:        getIntOrDefault("SMTP_PORT", 587),
		SMTP_USERNAME:    os.Getenv("SMTP_USERNAME"),
		SMTP_PASSWORD:    os.Getenv("SMTP_PASSWORD"),
		SMTP_FROM:        getEnvOrDefault("SMTP_FROM", "noreply@edugroup.in"),
		ADMISSIONS_EMAIL: os.Getenv("ADMISSIONS_EMAIL"),
		SITE_NAME:        getEnvOrDefault("SITE_NAME", "Education Group"),

		ALLOWED_ORIGINS: getEnvOrDefault("ALLOWED_ORIGINS", "http://localhost:3000"),
		CRON_ENABLED:    os.Getenv("CRON_ENABLED") != "false",
	}

	return env, nil
}

// Validate checks the variables without which the service cannot start:
// a store endpoint and both credential tiers.
func (e *EnvironmentVariables) Validate() error {
	var missing []string

	if e.DATABASE_URL == "" && (e.DB_NAME == "" || e.DB_USER_NAME == "") {
		missing = append(missing, "DATABASE_URL (or DB_NAME and DB_USER_NAME)")
	}
	if e.PUBLIC_ANON_KEY == "" {
		missing = append(missing, "PUBLIC_ANON_KEY")
	}
	if e.SERVICE_ROLE_KEY == "" {
		missing = append(missing, "SERVICE_ROLE_KEY")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingEnv, strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the postgres connection string for the configured store
func (e *EnvironmentVariables) DSN() string {
	if e.DATABASE_URL != "" {
		return e.DATABASE_URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		e.DB_HOST,
		e.DB_USER_NAME,
		e.DB_PASSWORD,
		e.DB_NAME,
		e.DB_PORT,
		e.DB_SSL_MODE,
	)
}

// JWTSecret falls back to the service key so admin tokens can always be signed
func (e *EnvironmentVariables) JWTSecret() string {
	if e.JWT_SECRET != "" {
		return e.JWT_SECRET
	}
	return e.SERVICE_ROLE_KEY
}

func (e *EnvironmentVariables) IsProduction() bool {
	return e.GO_ENV == "production"
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getIntOrDefault(key string, defaultVal int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultVal
	}
	return n
}
