package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const devJWTSecret = "super-secret-development-only-change-in-production"

// Config хранит все параметры запуска приложения.
type Config struct {
	Env      string `env:"APP_ENV" env-default:"development"`
	HTTPPort string `env:"HTTP_PORT" env-default:"8080"`

	Database  DatabaseConfig
	Auth      AuthConfig
	CoinGecko CoinGeckoConfig
	Cache     CacheConfig

	AllowedOriginsRaw string `env:"CORS_ALLOWED_ORIGINS" env-default:""`
	AllowedOrigins    []string

	RateLimitLimit  int64         `env:"RATE_LIMIT_LIMIT" env-default:"30"`
	RateLimitPeriod time.Duration `env:"RATE_LIMIT_PERIOD" env-default:"1m"`
}

type DatabaseConfig struct {
	Driver       string `env:"DATABASE_DRIVER" env-default:"sqlite3"`
	URL          string `env:"DATABASE_URL" env-default:"file:cryptodb.sqlite3?_foreign_keys=on"`
	MaxIdleConns int    `env:"DB_MAX_IDLE_CONNS" env-default:"0"`
}

type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET" env-default:""`
	AccessTokenTTL  time.Duration `env:"ACCESS_TOKEN_TTL" env-default:"15m"`
	TrustUserHeader bool          `env:"TRUST_USER_HEADER" env-default:"true"`
}

type CoinGeckoConfig struct {
	BaseURL string        `env:"COINGECKO_BASE_URL" env-default:"https://api.coingecko.com/api/v3"`
	APIKey  string        `env:"COINGECKO_API_KEY" env-default:""`
	Timeout time.Duration `env:"COINGECKO_TIMEOUT" env-default:"5s"`
}

type CacheConfig struct {
	RedisURL string        `env:"REDIS_URL" env-default:""`
	TTL      time.Duration `env:"CACHE_TTL" env-default:"30s"`
}

// Load читает .env (если есть) и переменные окружения.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("config: .env не найден, используем переменные окружения: %v", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: не удалось прочитать переменные окружения: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize проверяет значения и подставляет development дефолты.
func (c *Config) finalize() error {
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("config: неизвестный DATABASE_DRIVER %q", c.Database.Driver)
	}

	if c.IsProduction() {
		if len(c.Auth.JWTSecret) < 32 {
			return fmt.Errorf("config: JWT_SECRET обязателен и должен быть не менее 32 символов в production")
		}
		if strings.TrimSpace(c.AllowedOriginsRaw) == "" {
			return fmt.Errorf("config: CORS_ALLOWED_ORIGINS обязателен в production")
		}
	} else if c.Auth.JWTSecret == "" {
		c.Auth.JWTSecret = devJWTSecret
		log.Printf("config: WARNING - используется дефолтный JWT_SECRET, измените в production!")
	}

	if strings.TrimSpace(c.AllowedOriginsRaw) == "" {
		c.AllowedOrigins = []string{"http://localhost:3000", "http://localhost:5000"}
	} else {
		for _, origin := range strings.Split(c.AllowedOriginsRaw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				c.AllowedOrigins = append(c.AllowedOrigins, origin)
			}
		}
	}

	if c.CoinGecko.Timeout <= 0 {
		c.CoinGecko.Timeout = 5 * time.Second
	}
	c.CoinGecko.BaseURL = strings.TrimRight(c.CoinGecko.BaseURL, "/")

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
