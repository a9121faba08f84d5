package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Store selects the repository backend
	Store StoreConfig `json:"store"`

	MongoDB MongoDBConfig `json:"mongodb"`

	// SQL backend (mysql or postgres)
	Database DatabaseConfig `json:"database"`

	Auth AuthConfig `json:"auth"`

	Redis RedisConfig `json:"redis"`

	RateLimit RateLimitConfig `json:"rate_limit"`

	// Posting read-model cache
	Cache CacheConfig `json:"cache"`

	// Email Configuration (optional)
	Email EmailConfig `json:"email"`

	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	GRPCPort     string `json:"grpc_port"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

const (
	DriverMongo    = "mongo"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type StoreConfig struct {
	Driver string `json:"driver"`
}

type MongoDBConfig struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

// DatabaseConfig contains SQL connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	SSLMode      string `json:"ssl_mode"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret string `json:"-"`
	Issuer    string `json:"issuer"`
	TokenTTL  int    `json:"token_ttl"` // hours
	Required  bool   `json:"required"`
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"-"`
	DB       int    `json:"db"`
	Enabled  bool   `json:"enabled"`
}

type RateLimitConfig struct {
	Requests int `json:"requests"`
	Window   int `json:"window"` // seconds

	// TrustedProxies lists peer IPs or CIDRs whose X-Forwarded-For is honored.
	TrustedProxies []string `json:"trusted_proxies"`
}

type CacheConfig struct {
	PostingTTL      int `json:"posting_ttl"`      // seconds
	CleanupInterval int `json:"cleanup_interval"` // seconds
}

// EmailConfig contains email service configuration (optional)
type EmailConfig struct {
	SMTPHost  string `json:"smtp_host"`
	SMTPPort  int    `json:"smtp_port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FromEmail string `json:"from_email"`
	FromName  string `json:"from_name"`
	Enabled   bool   `json:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, text
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("HTTP_PORT", "5000"),
			GRPCPort:     getEnv("GRPC_PORT", "7005"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			Environment:  getEnv("APP_ENV", "development"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", DriverMongo)),
		},
		MongoDB: MongoDBConfig{
			Host:     getEnv("MONGO_HOST", "localhost"),
			Port:     getEnv("MONGO_PORT", "27017"),
			Username: getEnv("MONGO_USERNAME", ""),
			Password: getEnv("MONGO_PASSWORD", ""),
			Database: getEnv("MONGO_DATABASE", "skillnaav"),
		},
		Database: DatabaseConfig{
			Host:         getEnv("SQL_HOST", "localhost"),
			Port:         getEnv("SQL_PORT", "3306"),
			Username:     getEnv("SQL_USERNAME", "skillnaav"),
			Password:     getEnv("SQL_PASSWORD", "skillnaav123"),
			DatabaseName: getEnv("SQL_DATABASE", "skillnaav"),
			SSLMode:      getEnv("SQL_SSLMODE", "disable"),
			MaxOpenConns: getEnvAsInt("SQL_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("SQL_MAX_IDLE_CONNS", 5),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", "skillnaav"),
			TokenTTL:  getEnvAsInt("JWT_TTL_HOURS", 24),
			Required:  getEnvAsBool("AUTH_REQUIRED", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},
		RateLimit: RateLimitConfig{
			Requests:       getEnvAsInt("RATE_LIMIT_REQUESTS", 60),
			Window:         getEnvAsInt("RATE_LIMIT_WINDOW", 60),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		},
		Cache: CacheConfig{
			PostingTTL:      getEnvAsInt("POSTING_CACHE_TTL", 300),
			CleanupInterval: getEnvAsInt("POSTING_CACHE_CLEANUP", 30),
		},
		Email: EmailConfig{
			SMTPHost:  getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:  getEnvAsInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USERNAME", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("FROM_EMAIL", "no-reply@skillnaav.com"),
			FromName:  getEnv("FROM_NAME", "SkillNaav"),
			Enabled:   getEnvAsBool("EMAIL_ENABLED", false),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Format:     getEnv("LOG_FORMAT", "text"),
			OutputPath: getEnv("LOG_OUTPUT", "stdout"),
		},
	}
}

func (cfg *Config) GetMongoURI() string {
	if cfg.MongoDB.Username != "" && cfg.MongoDB.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s?authSource=admin",
			cfg.MongoDB.Username,
			cfg.MongoDB.Password,
			cfg.MongoDB.Host,
			cfg.MongoDB.Port,
			cfg.MongoDB.Database,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s", cfg.MongoDB.Host, cfg.MongoDB.Port, cfg.MongoDB.Database)
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

func (cfg *Config) PostgresDSN() string {
	host := cfg.Database.Host
	if host == "" {
		host = "localhost"
	}
	port := cfg.Database.Port
	if port == "" || port == "3306" {
		port = "5432"
	}
	sslMode := cfg.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		host,
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.DatabaseName,
		port,
		sslMode,
	)
}

func (cfg *Config) RateLimitWindow() time.Duration {
	return time.Duration(cfg.RateLimit.Window) * time.Second
}

func (cfg *Config) PostingCacheTTL() time.Duration {
	return time.Duration(cfg.Cache.PostingTTL) * time.Second
}

func (cfg *Config) PostingCacheCleanup() time.Duration {
	return time.Duration(cfg.Cache.CleanupInterval) * time.Second
}

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
		log.Printf("Invalid integer for %s: %q, using %d", key, value, defaultValue)
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

func getEnvAsList(key string) []string {
	var values []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	return values
}
