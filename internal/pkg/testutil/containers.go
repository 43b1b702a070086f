// Package testutil поднимает инфраструктуру для интеграционных тестов в Docker (testcontainers).
// Тесты, которые ей пользуются, собираются только с тегом integration:
//
//	go test -tags integration ./internal/infrastructure/...
package testutil

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/clickhouse"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// StartupTimeout — общий таймаут на подъём контейнера.
const StartupTimeout = 2 * time.Minute

// Logger — тихий логгер для тестов инфраструктуры.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Endpoint — адрес проброшенного порта контейнера.
type Endpoint struct {
	Host string
	Port string
}

// Addr возвращает "host:port".
func (e Endpoint) Addr() string {
	return e.Host + ":" + e.Port
}

// Порты сервисов внутри контейнеров.
const (
	portPostgres   nat.Port = "5432/tcp"
	portRedis      nat.Port = "6379/tcp"
	portMongo      nat.Port = "27017/tcp"
	portClickHouse nat.Port = "9000/tcp"
)

func endpoint(ctx context.Context, c testcontainers.Container, port nat.Port) (Endpoint, error) {
	host, err := c.Host(ctx)
	if err != nil {
		return Endpoint{}, fmt.Errorf("container host: %w", err)
	}
	mapped, err := c.MappedPort(ctx, port)
	if err != nil {
		return Endpoint{}, fmt.Errorf("container port %s: %w", port, err)
	}
	return Endpoint{Host: host, Port: mapped.Port()}, nil
}

// Postgres — контейнер PostgreSQL с параметрами подключения.
type Postgres struct {
	*postgres.PostgresContainer
	Endpoint
	User     string
	Password string
	DBName   string
}

// StartPostgres поднимает PostgreSQL 16.
func StartPostgres(ctx context.Context) (*Postgres, error) {
	const (
		user     = "test"
		password = "test"
		dbName   = "exprcalc_test"
	)
	c, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("postgres container: %w", err)
	}
	ep, err := endpoint(ctx, c, portPostgres)
	if err != nil {
		return nil, err
	}
	return &Postgres{PostgresContainer: c, Endpoint: ep, User: user, Password: password, DBName: dbName}, nil
}

// Redis — контейнер Redis.
type Redis struct {
	*redis.RedisContainer
	Endpoint
}

// StartRedis поднимает Redis 7.
func StartRedis(ctx context.Context) (*Redis, error) {
	c, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("redis container: %w", err)
	}
	ep, err := endpoint(ctx, c, portRedis)
	if err != nil {
		return nil, err
	}
	return &Redis{RedisContainer: c, Endpoint: ep}, nil
}

// Mongo — контейнер MongoDB.
type Mongo struct {
	*mongodb.MongoDBContainer
	Endpoint
}

// StartMongo поднимает MongoDB 7.
func StartMongo(ctx context.Context) (*Mongo, error) {
	c, err := mongodb.Run(ctx,
		"mongo:7",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Waiting for connections").WithStartupTimeout(StartupTimeout),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("mongo container: %w", err)
	}
	ep, err := endpoint(ctx, c, portMongo)
	if err != nil {
		return nil, err
	}
	return &Mongo{MongoDBContainer: c, Endpoint: ep}, nil
}

// URI возвращает строку подключения для mongo-driver.
func (m *Mongo) URI() string {
	return "mongodb://" + m.Addr()
}

// ClickHouse — контейнер ClickHouse (нативный порт 9000).
type ClickHouse struct {
	*clickhouse.ClickHouseContainer
	Endpoint
	User     string
	Password string
	Database string
}

// StartClickHouse поднимает ClickHouse 24.
func StartClickHouse(ctx context.Context) (*ClickHouse, error) {
	const (
		user     = "default"
		password = ""
		database = "default"
	)
	c, err := clickhouse.Run(ctx,
		"clickhouse/clickhouse-server:24-alpine",
		clickhouse.WithUsername(user),
		clickhouse.WithPassword(password),
		clickhouse.WithDatabase(database),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse container: %w", err)
	}
	ep, err := endpoint(ctx, c, portClickHouse)
	if err != nil {
		return nil, err
	}
	return &ClickHouse{ClickHouseContainer: c, Endpoint: ep, User: user, Password: password, Database: database}, nil
}
