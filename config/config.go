package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

// Config holds the server settings.
type Config struct {
	Port       string        `yaml:"port"`
	Backend    string        `yaml:"backend"`
	Redis      Redis         `yaml:"redis"`
	Postgres   Postgres      `yaml:"postgres"`
	SQLitePath string        `yaml:"sqlite_path"`
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	Port     string `yaml:"port"`
}

// DSN returns the postgres connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		p.Host, p.User, p.Password, p.Name, p.Port)
}

func defaults() Config {
	return Config{
		Port:       "8080",
		Backend:    BackendRedis,
		Redis:      Redis{Addr: "127.0.0.1:6379"},
		Postgres:   Postgres{Host: "localhost", Port: "5432", Name: "cryptotracker"},
		SQLitePath: "cryptotracker.db",
		SessionTTL: 30 * 24 * time.Hour,
	}
}

// Load reads .env, then the YAML file named by CONFIG_FILE if any, then the
// environment. Later sources win.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	str := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str(&cfg.Port, "PORT")
	str(&cfg.Backend, "STORE_BACKEND")
	str(&cfg.Redis.Addr, "REDIS_ADDR")
	str(&cfg.Redis.Password, "REDIS_PASSWORD")
	str(&cfg.Postgres.Host, "DB_HOST")
	str(&cfg.Postgres.User, "DB_USER")
	str(&cfg.Postgres.Password, "DB_PASSWORD")
	str(&cfg.Postgres.Name, "DB_NAME")
	str(&cfg.Postgres.Port, "DB_PORT")
	str(&cfg.SQLitePath, "SQLITE_PATH")
	str(&cfg.JWTSecret, "JWT_SECRET")

	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("REDIS_DB: %w", err)
		}
		cfg.Redis.DB = n
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SESSION_TTL: %w", err)
		}
		cfg.SessionTTL = d
	}

	switch cfg.Backend {
	case BackendRedis, BackendPostgres, BackendSQLite, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return &cfg, nil
}

// InitRedis connects to Redis and checks the connection.
func InitRedis(ctx context.Context, cfg Redis) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return rdb, nil
}
