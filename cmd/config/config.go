package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMySQL  = "mysql"
	StorageMemory = "memory"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Storage     StorageConfig
	Redis       RedisConfig
	RabbitMQ    RabbitMQConfig
	Internal    InternalConfig
	Inventory   InventoryConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type StorageConfig struct {
	Driver string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type RabbitMQConfig struct {
	Host          string
	Port          int
	User          string
	Password      string
	EnableConsume bool
}

type InternalConfig struct {
	APIKey  string
	BaseURL string
}

type InventoryConfig struct {
	BackfillChunkSize  int
	BackfillLimit      int
	ApplySalesLimit    int
	LockTTL            time.Duration
	StockClassCacheTTL time.Duration
}

// Load reads .env when present, then the environment.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getEnvDuration("SERVER_WRITE_TIMEOUT", 5*time.Minute),
			IdleTimeout:  getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 3306),
			User:            getEnv("DB_USER", "root"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "arcanafrisia"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Storage: StorageConfig{
			Driver: getEnv("STORAGE_DRIVER", StorageMySQL),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		RabbitMQ: RabbitMQConfig{
			Host:          getEnv("RABBITMQ_HOST", ""),
			Port:          getEnvInt("RABBITMQ_PORT", 5672),
			User:          getEnv("RABBITMQ_USER", "guest"),
			Password:      getEnv("RABBITMQ_PASSWORD", "guest"),
			EnableConsume: getEnvBool("RABBITMQ_CONSUME_SALES_SYNC", false),
		},
		Internal: InternalConfig{
			APIKey:  getEnv("INTERNAL_API_KEY", ""),
			BaseURL: getEnv("INTERNAL_BASE_URL", "http://localhost:8080"),
		},
		Inventory: InventoryConfig{
			BackfillChunkSize:  getEnvInt("INVENTORY_BACKFILL_CHUNK_SIZE", 500),
			BackfillLimit:      getEnvInt("INVENTORY_BACKFILL_LIMIT", 5000),
			ApplySalesLimit:    getEnvInt("INVENTORY_APPLY_SALES_LIMIT", 500),
			LockTTL:            getEnvDuration("INVENTORY_LOCK_TTL", 10*time.Minute),
			StockClassCacheTTL: getEnvDuration("INVENTORY_STOCK_CLASS_CACHE_TTL", time.Hour),
		},
	}
}

// GetDSN builds the MySQL DSN. parseTime is required for DATE/DATETIME scans.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&loc=UTC",
		c.Database.User, c.Database.Password, c.Database.Host, c.Database.Port, c.Database.Name)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
