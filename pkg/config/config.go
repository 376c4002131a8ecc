package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// DBConfig holds database configuration
type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        logger.LogLevel
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// StoreConfig selects where the product and invoice dataset comes from
type StoreConfig struct {
	Driver      string
	SeedFile    string
	ProductsCSV string
	SeedOnStart bool
}

// ChatConfig holds the knobs used by the responder
type ChatConfig struct {
	LowStockThreshold   int
	ExpiryWindowDays    int
	ArrivalLookbackDays int
	Currency            string
	TimeZone            string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
	File  string
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string
}

// CORSConfig holds the origins allowed to call the chat endpoint
type CORSConfig struct {
	AllowOrigins []string
}

// Config holds all configuration
type Config struct {
	DB      DBConfig
	Server  ServerConfig
	Store   StoreConfig
	Chat    ChatConfig
	Log     LogConfig
	Metrics MetricsConfig
	CORS    CORSConfig
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := &Config{
		DB: DBConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "password"),
			DBName:          getEnv("DB_NAME", "chatbot"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 1*time.Hour),
			LogLevel:        getEnvAsLogLevel("DB_LOG_LEVEL", logger.Warn),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
			SeedFile:    getEnv("SEED_FILE", ""),
			ProductsCSV: getEnv("SEED_PRODUCTS_CSV", ""),
			SeedOnStart: getEnvAsBool("SEED_ON_START", false),
		},
		Chat: ChatConfig{
			LowStockThreshold:   getEnvAsInt("CHAT_LOW_STOCK_THRESHOLD", 10),
			ExpiryWindowDays:    getEnvAsInt("CHAT_EXPIRY_WINDOW_DAYS", 3),
			ArrivalLookbackDays: getEnvAsInt("CHAT_ARRIVAL_LOOKBACK_DAYS", 7),
			Currency:            getEnv("CHAT_CURRENCY", "₹"),
			TimeZone:            getEnv("CHAT_TIME_ZONE", "Local"),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
		Metrics: MetricsConfig{
			Prefix: getEnv("METRICS_PREFIX", "chatbot"),
		},
		CORS: CORSConfig{
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"*"}),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks values that would otherwise fail later at request time
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("unsupported STORE_DRIVER %q (want %q or %q)", c.Store.Driver, StoreMemory, StorePostgres)
	}
	if c.Chat.LowStockThreshold < 0 {
		return fmt.Errorf("CHAT_LOW_STOCK_THRESHOLD must not be negative, got %d", c.Chat.LowStockThreshold)
	}
	if c.Chat.ExpiryWindowDays < 0 {
		return fmt.Errorf("CHAT_EXPIRY_WINDOW_DAYS must not be negative, got %d", c.Chat.ExpiryWindowDays)
	}
	if c.Chat.ArrivalLookbackDays < 0 {
		return fmt.Errorf("CHAT_ARRIVAL_LOOKBACK_DAYS must not be negative, got %d", c.Chat.ArrivalLookbackDays)
	}
	if _, err := c.Chat.Location(); err != nil {
		return fmt.Errorf("invalid CHAT_TIME_ZONE %q: %w", c.Chat.TimeZone, err)
	}
	return nil
}

// Location resolves the time zone used to decide what "today" is
func (c ChatConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	fields := []zap.Field{
		zap.String("environment", c.Server.Env),
		zap.String("server_port", c.Server.Port),
		zap.String("store_driver", c.Store.Driver),
	}
	if c.Store.Driver == StorePostgres {
		fields = append(fields,
			zap.String("db_host", c.DB.Host),
			zap.String("db_port", c.DB.Port),
			zap.String("db_user", c.DB.User),
			zap.String("db_name", c.DB.DBName),
		)
	}
	return fields
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Comma separated, blanks dropped
func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
