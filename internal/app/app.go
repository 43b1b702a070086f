package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	apigrpc "exprCalc/internal/api/grpc"
	apihttp "exprCalc/internal/api/http"
	authCtrl "exprCalc/internal/api/http/controllers/auth"
	"exprCalc/internal/api/http/controllers/calculator"
	"exprCalc/internal/api/http/controllers/system"
	"exprCalc/internal/infrastructure/click"
	"exprCalc/internal/infrastructure/kafka"
	"exprCalc/internal/infrastructure/mongo"
	"exprCalc/internal/infrastructure/pg"
	"exprCalc/internal/infrastructure/redis"
	"exprCalc/internal/pkg/logger"
	"exprCalc/internal/pkg/password"
	"exprCalc/internal/pkg/token"
	"exprCalc/internal/ports"
	authUsecase "exprCalc/internal/usecase/auth"
	calcUsecase "exprCalc/internal/usecase/calculator"
)

// Version проставляется при сборке через -ldflags.
var Version = "dev"

const shutdownTimeout = 10 * time.Second

// App — приложение, хранит только конфиг.
type App struct {
	cfg Config
}

// New создаёт приложение с конфигом (подключения открываются в Run).
func New(cfg Config) *App {
	return &App{cfg: cfg}
}

// Run подключается к хранилищам, собирает зависимости и запускает HTTP и gRPC серверы.
// Блокируется до SIGINT/SIGTERM, затем останавливает всё с таймаутом.
func (a *App) Run() error {
	log := logger.New(a.cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pg.New(&a.cfg.DB)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer db.Close()

	if err := pg.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	rdb, err := redis.New(&a.cfg.Redis)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer rdb.Close()

	users := pg.NewUserRepo(db, log)
	ops, closeOps, err := a.operationRepo(ctx, db, log)
	if err != nil {
		return err
	}
	defer closeOps()

	var (
		broker    ports.IProducer
		analytics ports.IOperationAnalytics
	)
	if a.cfg.Kafka.Enabled {
		producer := kafka.NewProducer(&a.cfg.Kafka)
		defer producer.Close()
		broker = producer

		ch, err := click.New(&a.cfg.ClickHouse)
		if err != nil {
			return fmt.Errorf("clickhouse: %w", err)
		}
		defer ch.Close()
		writer := click.NewOperationWriter(ch)
		if err := writer.EnsureTable(ctx); err != nil {
			return fmt.Errorf("clickhouse table: %w", err)
		}
		analytics = writer
	}

	calcUC := calcUsecase.New(ops, users, broker, analytics, log)
	authUC := authUsecase.New(users, ops, redis.NewTokenStore(rdb, log),
		token.New(a.cfg.JWT), password.New(a.cfg.BcryptCost), log)

	if a.cfg.Kafka.Enabled {
		consumer := kafka.NewConsumer(&a.cfg.Kafka, calcUC, log)
		defer consumer.Close()
		// Ошибку чтения консьюмер логирует сам; HTTP и gRPC продолжают работать без аналитики.
		go func() { _ = consumer.Run(ctx) }()
	}

	grpcSrv := apigrpc.NewServer(a.cfg.Grpc.Addr(), calcUC, authUC, log)
	go func() {
		if err := grpcSrv.Start(); err != nil {
			log.Error("grpc server failed", "error", err)
			stop()
		}
	}()

	srv := apihttp.NewServer(a.cfg.Server, log)
	srv.AddController(
		system.New(map[string]system.Pinger{"storage": ops, "redis": rdb}, Version, log),
		authCtrl.New(authUC, log),
		calculator.New(calcUC, authUC, log))

	log.Info("application started",
		"version", Version,
		"http", a.cfg.Server.Addr(),
		"grpc", a.cfg.Grpc.Addr(),
		"storage", a.cfg.StorageDriver,
		"kafka", a.cfg.Kafka.Enabled)

	httpErr := srv.Start(ctx)
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	grpcErr := grpcSrv.Stop(shutdownCtx)
	log.Info("application stopped")
	return errors.Join(httpErr, grpcErr)
}

// operationRepo выбирает хранилище истории по CALCULATOR_STORAGE_DRIVER. Пользователи всегда в PostgreSQL.
func (a *App) operationRepo(ctx context.Context, db *pg.DB, log *slog.Logger) (ports.IOperationRepository, func(), error) {
	if a.cfg.StorageDriver != StorageMongo {
		return pg.NewOperationRepo(db, log), func() {}, nil
	}
	mc, err := mongo.New(ctx, &a.cfg.Mongo)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo: %w", err)
	}
	closeFn := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = mc.Close(closeCtx)
	}
	return mongo.NewOperationRepo(mc, log), closeFn, nil
}
