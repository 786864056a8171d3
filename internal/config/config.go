package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CredentialStoreStatic   = "static"
	CredentialStoreMongo    = "mongo"
	CredentialStorePostgres = "postgres"
)

type Config struct {
	AppEnv                  string
	ServerPort              string
	ServerReadHeaderTimeout time.Duration
	ServerWriteTimeout      time.Duration
	ServerIdleTimeout       time.Duration
	RequestTimeout          time.Duration
	LogLevel                string
	LogFormat               string

	JWTSecret            string
	JWTIssuer            string
	SessionTTL           time.Duration
	SuperAdminSessionTTL time.Duration
	CookieDomain         string

	CORSOrigins      []string
	RateLimitRPM     int
	AuthRateLimitRPM int

	CredentialStore string
	CredentialsFile string
	DatabaseURL     string
	DBMaxConns      int32
	DBMinConns      int32
	MongoURI        string
	MongoDatabase   string
	RedisURL        string

	BlogRoot string

	GAPropertyID  string
	GAClientEmail string
	GAPrivateKey  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:                  strings.ToLower(getEnv("APP_ENV", "production")),
		ServerPort:              getEnv("SERVER_PORT", "8080"),
		ServerReadHeaderTimeout: getDuration("SERVER_READ_HEADER_TIMEOUT", 10*time.Second),
		ServerWriteTimeout:      getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerIdleTimeout:       getDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
		RequestTimeout:          getDuration("REQUEST_TIMEOUT", 20*time.Second),
		LogLevel:                getEnv("LOG_LEVEL", "info"),
		LogFormat:               getEnv("LOG_FORMAT", "pretty"),
		JWTSecret:               strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:               getEnv("JWT_ISSUER", "edu-backoffice"),
		SessionTTL:              getDuration("SESSION_TTL", 24*time.Hour),
		SuperAdminSessionTTL:    getDuration("SUPER_ADMIN_SESSION_TTL", time.Hour),
		CookieDomain:            strings.TrimSpace(os.Getenv("COOKIE_DOMAIN")),
		CORSOrigins:             splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitRPM:            getInt("RATE_LIMIT_RPM", 300),
		AuthRateLimitRPM:        getInt("AUTH_RATE_LIMIT_RPM", 10),
		CredentialStore:         strings.ToLower(getEnv("CREDENTIAL_STORE", CredentialStoreStatic)),
		CredentialsFile:         getEnv("CREDENTIALS_FILE", "./credentials.json"),
		DatabaseURL:             strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DBMaxConns:              int32(getInt("DB_MAX_CONNS", 10)),
		DBMinConns:              int32(getInt("DB_MIN_CONNS", 1)),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "algoforge"),
		RedisURL:                strings.TrimSpace(os.Getenv("REDIS_URL")),
		BlogRoot:                getEnv("BLOG_ROOT", "./content/blogs"),
		GAPropertyID:            strings.TrimSpace(os.Getenv("GA_PROPERTY_ID")),
		GAClientEmail:           strings.TrimSpace(os.Getenv("GA_CLIENT_EMAIL")),
		GAPrivateKey:            normalizePEM(os.Getenv("GA_PRIVATE_KEY")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT cannot be empty")
	}

	if c.SessionTTL <= 0 || c.SuperAdminSessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL and SUPER_ADMIN_SESSION_TTL must be positive")
	}

	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}

	switch c.CredentialStore {
	case CredentialStoreStatic:
		if strings.TrimSpace(c.CredentialsFile) == "" {
			return fmt.Errorf("CREDENTIALS_FILE is required when CREDENTIAL_STORE=static")
		}
	case CredentialStorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when CREDENTIAL_STORE=postgres")
		}
	case CredentialStoreMongo:
	default:
		return fmt.Errorf("CREDENTIAL_STORE must be one of static, mongo, postgres (got %q)", c.CredentialStore)
	}

	if strings.TrimSpace(c.MongoURI) == "" {
		return fmt.Errorf("MONGO_URI cannot be empty")
	}

	if strings.TrimSpace(c.BlogRoot) == "" {
		return fmt.Errorf("BLOG_ROOT cannot be empty")
	}

	return nil
}

// SecureCookies reports whether session cookies must carry the Secure attribute.
func (c *Config) SecureCookies() bool {
	switch c.AppEnv {
	case "development", "local", "test":
		return false
	default:
		return true
	}
}

// AnalyticsConfigured reports whether all Google Analytics settings are present.
func (c *Config) AnalyticsConfigured() bool {
	return c.GAPropertyID != "" && c.GAClientEmail != "" && c.GAPrivateKey != ""
}

func getEnv(key string, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	return v
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return v
}

func splitCSV(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}

	return out
}

// normalizePEM turns the escaped "\n" sequences that env files tend to carry
// back into real newlines.
func normalizePEM(value string) string {
	value = strings.TrimSpace(value)
	if strings.Contains(value, `\n`) && !strings.Contains(value, "\n") {
		value = strings.ReplaceAll(value, `\n`, "\n")
	}
	return value
}
