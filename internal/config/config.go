package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Oracle    OracleConfig
	Journal   JournalConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Name        string
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string
	LogFilePath string // vacío = solo stdout
}

type DatabaseConfig struct {
	DSN         string // vacío = repos in-memory
	AutoMigrate bool
}

type AuthConfig struct {
	// DevMode desactiva el verifier: el usuario llega por X-Debug-User-ID.
	DevMode bool

	ProviderURL  string // ej: https://<project>.supabase.co/auth/v1
	APIKey       string
	JWTSecret    string // si está, los tokens se verifican localmente
	RedirectURL  string // a dónde vuelve el link del email
	UserCacheTTL time.Duration
}

type OracleConfig struct {
	Provider    string // ollama | gemini | none
	BaseURL     string
	Model       string
	APIKey      string
	Timeout     time.Duration // 0 = sin timeout propio
	Temperature float64
}

type JournalConfig struct {
	ReadAfterWriteDelay time.Duration
	IdempotencyTTL      time.Duration
	DefaultListLimit    int
	MaxListLimit        int
}

type RateLimitConfig struct {
	SignInPerMinute int
	SignInBurst     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("config: .env not found, using process environment")
	}

	return &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "mood-journal"),
			Port:        getEnv("PORT", "8080"),
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
			LogFilePath: getEnv("LOG_FILE_PATH", ""),
		},
		Database: DatabaseConfig{
			DSN:         getEnv("DB_DSN", ""),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Auth: AuthConfig{
			DevMode:      getEnvAsBool("AUTH_DEV_MODE", false),
			ProviderURL:  getEnv("AUTH_PROVIDER_URL", ""),
			APIKey:       getEnv("AUTH_API_KEY", ""),
			JWTSecret:    getEnv("AUTH_JWT_SECRET", ""),
			RedirectURL:  getEnv("AUTH_REDIRECT_URL", "http://localhost:5173"),
			UserCacheTTL: getEnvAsDuration("AUTH_USER_CACHE_TTL", time.Minute),
		},
		Oracle: OracleConfig{
			Provider:    strings.ToLower(getEnv("ORACLE_PROVIDER", "ollama")),
			BaseURL:     getEnv("ORACLE_BASE_URL", "http://localhost:11434"),
			Model:       getEnv("ORACLE_MODEL", "llama3"),
			APIKey:      getEnv("ORACLE_API_KEY", ""),
			Timeout:     getEnvAsDuration("ORACLE_TIMEOUT", 0),
			Temperature: getEnvAsFloat("ORACLE_TEMPERATURE", 0.7),
		},
		Journal: JournalConfig{
			ReadAfterWriteDelay: getEnvAsDuration("JOURNAL_READ_AFTER_WRITE_DELAY", time.Second),
			IdempotencyTTL:      getEnvAsDuration("JOURNAL_IDEMPOTENCY_TTL", 10*time.Minute),
			DefaultListLimit:    getEnvAsInt("JOURNAL_DEFAULT_LIMIT", 20),
			MaxListLimit:        getEnvAsInt("JOURNAL_MAX_LIMIT", 100),
		},
		RateLimit: RateLimitConfig{
			SignInPerMinute: getEnvAsInt("SIGNIN_RATE_PER_MINUTE", 5),
			SignInBurst:     getEnvAsInt("SIGNIN_RATE_BURST", 3),
		},
	}
}

// Validate detecta combinaciones con las que el proceso no puede arrancar.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.App.Port) == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	if !c.Auth.DevMode && strings.TrimSpace(c.Auth.ProviderURL) == "" {
		errs = append(errs, errors.New("AUTH_PROVIDER_URL is required unless AUTH_DEV_MODE=true"))
	}

	switch c.Oracle.Provider {
	case "ollama":
		if strings.TrimSpace(c.Oracle.BaseURL) == "" {
			errs = append(errs, errors.New("ORACLE_BASE_URL is required for ollama"))
		}
	case "gemini":
		if strings.TrimSpace(c.Oracle.APIKey) == "" {
			errs = append(errs, errors.New("ORACLE_API_KEY is required for gemini"))
		}
	case "none":
	default:
		errs = append(errs, fmt.Errorf("unknown ORACLE_PROVIDER %q", c.Oracle.Provider))
	}

	if c.Journal.DefaultListLimit <= 0 || c.Journal.MaxListLimit < c.Journal.DefaultListLimit {
		errs = append(errs, errors.New("journal list limits must satisfy 0 < default <= max"))
	}

	return errors.Join(errs...)
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
