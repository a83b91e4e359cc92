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

const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"

	MailDriverSMTP = "smtp"
	MailDriverLog  = "log"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Mail     MailConfig
	Reset    ResetConfig
	OTP      OTPConfig
	Sweep    SweepConfig
	OpenAI   OpenAIConfig
}

type ServerConfig struct {
	Port            string
	GinMode         string
	Environment     string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type MailConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	FromName string
	Timeout  time.Duration
}

type ResetConfig struct {
	Store       string
	TokenTTL    time.Duration
	FrontendURL string
}

type OTPConfig struct {
	Store string
	TTL   time.Duration
}

type SweepConfig struct {
	Interval time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "5000"),
			GinMode:         getEnv("GIN_MODE", "debug"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", ""),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		Database: DatabaseConfig{
			Enabled:  parseBool(getEnv("DATABASE_ENABLED", "true")),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "mindjournal"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "mindjournal"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0")),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		},
		Mail: MailConfig{
			Driver:   getEnv("MAIL_DRIVER", MailDriverSMTP),
			Host:     getEnv("SMTP_HOST", "smtp.gmail.com"),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("EMAIL_USER", ""),
			Password: getEnv("EMAIL_PASS", ""),
			FromName: getEnv("MAIL_FROM_NAME", "MindJournal"),
			Timeout:  parseDuration(getEnv("SMTP_TIMEOUT", "10s"), 10*time.Second),
		},
		Reset: ResetConfig{
			Store:       getEnv("TOKEN_STORE", StoreMemory),
			TokenTTL:    parseDuration(getEnv("RESET_TOKEN_TTL", "15m"), 15*time.Minute),
			FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),
		},
		OTP: OTPConfig{
			Store: getEnv("OTP_STORE", StoreMemory),
			TTL:   parseDuration(getEnv("OTP_TTL", "5m"), 5*time.Minute),
		},
		Sweep: SweepConfig{
			Interval: parseDuration(getEnv("SWEEP_INTERVAL", "30m"), 30*time.Minute),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_BASE_URL", ""),
			Model:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
	}

	if config.Log.Level == "" {
		config.Log.Level = "info"
		if config.Server.Environment == "development" {
			config.Log.Level = "debug"
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Reset.Store {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if !c.Database.Enabled {
			return fmt.Errorf("TOKEN_STORE=postgres requires DATABASE_ENABLED=true")
		}
	default:
		return fmt.Errorf("unknown TOKEN_STORE %q", c.Reset.Store)
	}

	switch c.OTP.Store {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("unknown OTP_STORE %q", c.OTP.Store)
	}

	switch c.Mail.Driver {
	case MailDriverSMTP, MailDriverLog:
	default:
		return fmt.Errorf("unknown MAIL_DRIVER %q", c.Mail.Driver)
	}

	if c.Reset.TokenTTL <= 0 {
		return fmt.Errorf("RESET_TOKEN_TTL must be positive")
	}
	if c.OTP.TTL < 0 {
		return fmt.Errorf("OTP_TTL must not be negative")
	}
	if c.Sweep.Interval <= 0 {
		return fmt.Errorf("SWEEP_INTERVAL must be positive")
	}
	return nil
}

// UsesRedis reports whether any store is backed by redis.
func (c *Config) UsesRedis() bool {
	return c.Reset.Store == StoreRedis || c.OTP.Store == StoreRedis
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using 0", s)
		return 0
	}
	return n
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
