package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	JWT        JWTConfig
	Admin      AdminConfig
	SMTP       SMTPConfig
	Cloudinary CloudinaryConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig
}

type ServerConfig struct {
	Port         string        `validate:"required,numeric"`
	Env          string        `validate:"oneof=development production test"`
	ReadTimeout  time.Duration `validate:"gt=0"`
	WriteTimeout time.Duration `validate:"gt=0"`
	// PublicURL is the canonical site origin used in sitemap and structured data.
	PublicURL      string `validate:"required,url"`
	AllowedOrigins []string
}

// Database drivers accepted by DatabaseConfig.Driver.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string `validate:"required,oneof=mysql postgres sqlite"`
	DSN             string `validate:"required"`
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string        `validate:"required"`
	RefreshSecret string        `validate:"required"`
	AccessExpiry  time.Duration `validate:"gt=0"`
	RefreshExpiry time.Duration `validate:"gt=0"`
	Issuer        string
}

// AdminConfig seeds the first back-office account when none exists.
type AdminConfig struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Name     string
}

// SMTPConfig for request notifications. Notifications are off when Host is empty.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string `validate:"omitempty,email"`
	To       string `validate:"omitempty,email"`
	Attempts uint
}

func (c SMTPConfig) Enabled() bool { return c.Host != "" && c.To != "" }

type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

func (c CloudinaryConfig) Enabled() bool {
	return c.CloudName != "" && c.APIKey != "" && c.APISecret != ""
}

// Log level and type values for LoggerConfig.
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

type LoggerConfig struct {
	Level      string `validate:"required,oneof=debug info warning error"`
	Type       string `validate:"required,oneof=console file"`
	FilePath   string `validate:"required_if=Type file"`
	MaxSize    int
	MaxBackups int
	MaxAge     int
}

type RateLimitConfig struct {
	Requests     int
	Window       time.Duration
	FormRequests int
	FormWindow   time.Duration
}

// Load reads .env (if present) and the process environment on top of defaults.
func Load() *Config {
	_ = godotenv.Load()
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            getEnv("APP_ENV", "development"),
			ReadTimeout:    getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:   getEnvDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			PublicURL:      strings.TrimRight(getEnv("PUBLIC_URL", "https://kaliningrad-transfer.ru"), "/"),
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Database: DatabaseConfig{
			Driver:          getEnv("DB_DRIVER", DriverMySQL),
			DSN:             getEnv("DB_DSN", "transfer:transfer@tcp(localhost:3306)/transfer?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 50),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  getEnvDuration("JWT_ACCESS_EXPIRY", 30*time.Minute),
			RefreshExpiry: getEnvDuration("JWT_REFRESH_EXPIRY", 168*time.Hour),
			Issuer:        getEnv("JWT_ISSUER", "kgtransfer"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", "admin@kaliningrad-transfer.ru"),
			Password: getEnv("ADMIN_PASSWORD", "change-me-admin"),
			Name:     getEnv("ADMIN_NAME", "Administrator"),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USER"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
			To:       os.Getenv("SMTP_TO"),
			Attempts: uint(getEnvInt("SMTP_ATTEMPTS", 3)),
		},
		Cloudinary: CloudinaryConfig{
			CloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
			APIKey:    os.Getenv("CLOUDINARY_API_KEY"),
			APISecret: os.Getenv("CLOUDINARY_API_SECRET"),
			Folder:    getEnv("CLOUDINARY_FOLDER", "kgtransfer"),
		},
		Logger: LoggerConfig{
			Level:      getEnv("LOG_LEVEL", LogLevelInfo),
			Type:       getEnv("LOG_TYPE", LogTypeConsole),
			FilePath:   os.Getenv("LOG_FILE"),
			MaxSize:    getEnvInt("LOG_MAX_SIZE_MB", 20),
			MaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
			MaxAge:     getEnvInt("LOG_MAX_AGE_DAYS", 30),
		},
		RateLimit: RateLimitConfig{
			Requests:     getEnvInt("RATE_LIMIT_REQUESTS", 300),
			Window:       getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
			FormRequests: getEnvInt("FORM_RATE_LIMIT_REQUESTS", 10),
			FormWindow:   getEnvDuration("FORM_RATE_LIMIT_WINDOW", 10*time.Minute),
		},
	}
}

// Validate checks every section and returns the first failure.
func (c *Config) Validate() error {
	validate := validator.New()
	sections := []struct {
		name string
		v    interface{}
	}{
		{"server", &c.Server},
		{"database", &c.Database},
		{"jwt", &c.JWT},
		{"admin", &c.Admin},
		{"smtp", &c.SMTP},
		{"logger", &c.Logger},
	}
	for _, s := range sections {
		if err := validate.Struct(s.v); err != nil {
			return fmt.Errorf("invalid %s config: %w", s.name, err)
		}
	}
	if c.Server.Env == "production" && c.JWT.AccessSecret == "change-me-in-production" {
		return fmt.Errorf("invalid jwt config: default access secret in production")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Server.Env == "production" }

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
