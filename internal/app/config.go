package app

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	apigrpc "exprCalc/internal/api/grpc"
	"exprCalc/internal/api/http"
	"exprCalc/internal/infrastructure/click"
	"exprCalc/internal/infrastructure/kafka"
	"exprCalc/internal/infrastructure/mongo"
	"exprCalc/internal/infrastructure/pg"
	"exprCalc/internal/infrastructure/redis"
	"exprCalc/internal/pkg/logger"
	"exprCalc/internal/pkg/token"
)

const AppName = "CALCULATOR"

// Драйверы хранилища истории операций.
const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

// Config — конфиг приложения. Заполняется через envconfig с префиксом CALCULATOR.
type Config struct {
	Log           logger.Config     `envconfig:"LOG"`
	StorageDriver string            `envconfig:"STORAGE_DRIVER" default:"postgres"`
	BcryptCost    int               `envconfig:"BCRYPT_COST" default:"12"`
	Server        http.ServerConfig `envconfig:"SERVER"`
	Grpc          apigrpc.Config    `envconfig:"GRPC"`
	DB            pg.Config         `envconfig:"DB"`
	Mongo         mongo.Config      `envconfig:"MONGO"`
	Redis         redis.Config      `envconfig:"REDIS"`
	Kafka         kafka.Config      `envconfig:"KAFKA"`
	ClickHouse    click.Config      `envconfig:"CLICKHOUSE"`
	JWT           token.Config      `envconfig:"JWT"`
}

// Validate проверяет значения, которые envconfig проверить не может.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StoragePostgres, StorageMongo:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}
	if len(c.JWT.Secret) < token.MinSecretLen {
		return fmt.Errorf("jwt secret must be at least %d bytes", token.MinSecretLen)
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive")
	}
	return nil
}

// LoadCfg загружает конфиг: подтягивает .env (godotenv, путь из CALCULATOR_ENV_FILE),
// затем заполняет структуру из окружения (envconfig). Уже заданные переменные .env не перетирает.
func LoadCfg() (Config, error) {
	envFile := os.Getenv(AppName + "_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("config: %s не найден, используем окружение: %v", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process(AppName, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
