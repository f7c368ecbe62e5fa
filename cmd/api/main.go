package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"buildmart/internal/config"
	"buildmart/internal/infra/db"
	"buildmart/internal/infra/events"
	"buildmart/internal/infra/system"
	"buildmart/internal/logging"
	"buildmart/internal/server"
	"buildmart/internal/usecase"

	"github.com/joho/godotenv"
)

// 注文イベントの送信先（Kafka or 何もしない）
type orderPublisher interface {
	usecase.OrderEventPublisher
	Close() error
}

func main() {
	//.envは無くてもよい（本番は環境変数で渡す）
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("load .env", "error", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	log := logging.New(cfg.LogLevel)
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	//DB接続
	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	gdb, err := db.Connect(initCtx, cfg)
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		return err
	}

	var pub orderPublisher = events.NoopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		pub = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrderTopic)
		log.Info("order events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaOrderTopic)
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn("close publisher", "error", err)
		}
	}()

	e := server.New(server.Deps{
		Config:    cfg,
		Logger:    log,
		DB:        gdb,
		Publisher: pub,
		Clock:     system.Clock{},
		IDGen:     system.UUIDGenerator{},
	})

	log.Info("checkout commit mode", "mode", cfg.CheckoutCommitMode, "env", cfg.GoEnv)
	return server.Run(ctx, e, cfg.Addr(), log)
}
