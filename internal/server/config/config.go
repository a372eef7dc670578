package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config содержит конфигурацию сервера, загружаемую из окружения
type Config struct {
	// Address адрес и порт HTTP сервера
	Address string `env:"ADDRESS" envDefault:"localhost:8080"`
	// DBPath путь к файлу SQLite базы
	DBPath string `env:"DB_PATH" envDefault:"lavka.db"`
	// JWTSecret секрет для подписи access токенов
	JWTSecret string `env:"JWT_SECRET"`
	// LogLevel уровень логирования: debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// AccessTokenTTL время жизни access токена
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	// RefreshTokenTTL время жизни refresh токена
	RefreshTokenTTL time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"720h"`

	// AuthRateLimit максимум запросов на auth эндпоинты за окно
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" envDefault:"10"`
	// AuthRateWindow окно rate limit для auth эндпоинтов
	AuthRateWindow time.Duration `env:"AUTH_RATE_WINDOW" envDefault:"1m"`
}

// Load читает конфигурацию из переменных окружения
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
