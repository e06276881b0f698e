package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// Драйверы хранилища
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// devJWTSecret используется только вне release-режима, когда JWT_SECRET не задан
const devJWTSecret = "secretkey"

// defaultMongoDatabase используется, если имя базы не задано ни явно, ни в MONGODB_URI
const defaultMongoDatabase = "quizsystem"

// Config хранит все настройки приложения
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	JWT       JWTConfig       `mapstructure:"jwt"`
	RabbitMQ  RabbitMQConfig  `mapstructure:"rabbitmq"`
}

// ServerConfig содержит настройки HTTP сервера
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`
	WriteTimeout   int      `mapstructure:"write_timeout"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig выбирает реализацию хранилища
type DatabaseConfig struct {
	// Driver: "mongo" (по умолчанию), "postgres" или "memory"
	Driver string `mapstructure:"driver"`
	// QueryTimeout: таймаут одной операции с хранилищем
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// MongoConfig содержит настройки подключения к MongoDB
type MongoConfig struct {
	URI            string        `mapstructure:"uri"`
	Database       string        `mapstructure:"database"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	RetryDelay     time.Duration `mapstructure:"retry_delay"`
	MaxPoolSize    uint64        `mapstructure:"max_pool_size"`
}

// PostgresConfig содержит настройки подключения к PostgreSQL
type PostgresConfig struct {
	DSN        string        `mapstructure:"dsn"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	LogLevel   string        `mapstructure:"log_level"`
}

// RedisConfig содержит настройки Redis. Пустой Addr отключает rate limiting.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RateLimitConfig содержит лимиты для /register и /login
type RateLimitConfig struct {
	MaxRequests int           `mapstructure:"max_requests"`
	Window      time.Duration `mapstructure:"window"`
}

// JWTConfig содержит настройки JWT
type JWTConfig struct {
	Secret        string `mapstructure:"secret"`
	ExpirationHrs int    `mapstructure:"expiration_hrs"`
	Issuer        string `mapstructure:"issuer"`
}

// RabbitMQConfig содержит настройки публикации событий. Пустой URI отключает публикацию.
type RabbitMQConfig struct {
	URI      string `mapstructure:"uri"`
	Exchange string `mapstructure:"exchange"`
}

// Load загружает конфигурацию: .env, затем YAML-файл (если есть), затем переменные окружения
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[Config] .env файл не найден, используются переменные окружения")
	}

	vip := viper.New()

	vip.SetDefault("server.port", "3000")
	vip.SetDefault("server.read_timeout", 15)
	vip.SetDefault("server.write_timeout", 15)
	vip.SetDefault("server.allowed_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	vip.SetDefault("database.driver", DriverMongo)
	vip.SetDefault("database.query_timeout", 10*time.Second)
	vip.SetDefault("mongo.uri", "mongodb://localhost:27017/quizsystem")
	vip.SetDefault("mongo.connect_timeout", 5*time.Second)
	vip.SetDefault("mongo.retry_delay", 5*time.Second)
	vip.SetDefault("mongo.max_pool_size", 100)
	vip.SetDefault("postgres.retry_delay", 5*time.Second)
	vip.SetDefault("postgres.log_level", "warn")
	vip.SetDefault("rate_limit.max_requests", 5)
	vip.SetDefault("rate_limit.window", time.Minute)
	vip.SetDefault("jwt.expiration_hrs", 24)
	vip.SetDefault("jwt.issuer", "quiz-api")
	vip.SetDefault("rabbitmq.exchange", "quiz.events")

	// Привязываем переменные окружения явно
	vip.BindEnv("server.port", "PORT")
	vip.BindEnv("server.allowed_origins", "ALLOWED_ORIGINS")
	vip.BindEnv("database.driver", "DATABASE_DRIVER")
	vip.BindEnv("mongo.uri", "MONGODB_URI")
	vip.BindEnv("mongo.database", "MONGODB_DATABASE")
	vip.BindEnv("postgres.dsn", "POSTGRES_DSN")
	vip.BindEnv("redis.addr", "REDIS_ADDR")
	vip.BindEnv("redis.password", "REDIS_PASSWORD")
	vip.BindEnv("redis.db", "REDIS_DB")
	vip.BindEnv("jwt.secret", "JWT_SECRET")
	vip.BindEnv("jwt.expiration_hrs", "JWT_EXPIRATION_HRS")
	vip.BindEnv("rabbitmq.uri", "RABBITMQ_URI")
	vip.BindEnv("rabbitmq.exchange", "RABBITMQ_EXCHANGE")

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || os.IsNotExist(err) {
				log.Printf("[Config] Файл конфигурации '%s' не найден, используются переменные окружения/умолчания", configPath)
			} else {
				log.Printf("[Config] Предупреждение: не удалось прочитать файл конфигурации '%s': %v", configPath, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// ALLOWED_ORIGINS приходит одной строкой через запятую, возможно с пробелами
	cfg.Server.AllowedOrigins = splitAndTrim(strings.Join(cfg.Server.AllowedOrigins, ","))

	if err := cfg.validate(os.Getenv("GIN_MODE") == "release"); err != nil {
		return nil, err
	}

	if os.Getenv("GIN_MODE") != "release" {
		log.Printf("--- Загруженные значения конфигурации ---")
		log.Printf("Server Port: %s", cfg.Server.Port)
		log.Printf("Database Driver: %s", cfg.Database.Driver)
		log.Printf("Mongo Database: %s", cfg.Mongo.Database)
		log.Printf("Redis Addr: %s", cfg.Redis.Addr)
		log.Printf("JWT Expiration Hours: %d", cfg.JWT.ExpirationHrs)
		log.Printf("RabbitMQ Enabled: %t", cfg.RabbitMQ.URI != "")
		log.Printf("-----------------------------------------")
	}

	return &cfg, nil
}

// validate проверяет обязательные параметры. В release-режиме секрет JWT обязателен.
func (c *Config) validate(production bool) error {
	switch c.Database.Driver {
	case DriverMongo:
		if c.Mongo.URI == "" {
			return fmt.Errorf("mongo uri is required (check MONGODB_URI env var)")
		}
		if c.Mongo.Database == "" {
			cs, err := connstring.ParseAndValidate(c.Mongo.URI)
			if err != nil {
				return fmt.Errorf("invalid mongo uri: %w", err)
			}
			c.Mongo.Database = cs.Database
		}
		if c.Mongo.Database == "" {
			c.Mongo.Database = defaultMongoDatabase
		}
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres dsn is required (check POSTGRES_DSN env var)")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver: %q", c.Database.Driver)
	}

	if c.JWT.Secret == "" {
		if production {
			return fmt.Errorf("jwt secret is required in release mode (check JWT_SECRET env var)")
		}
		log.Println("[Config] Warning: JWT_SECRET не задан, используется секрет для разработки")
		c.JWT.Secret = devJWTSecret
	}
	if c.JWT.ExpirationHrs <= 0 {
		c.JWT.ExpirationHrs = 24
	}
	return nil
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
