package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"sangha/internal/config"
	"sangha/internal/logging"
	"sangha/internal/notification"
	"sangha/internal/queue"
	"sangha/internal/store"
)

// Worker turns domain events from the redis queue into notifications.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.Production())
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db connect failed", zap.Error(err))
	}
	defer db.Close()

	rdb := store.NewRedis(cfg.RedisAddr)
	defer func() { _ = rdb.Close() }()
	if !rdb.Healthy(ctx) {
		log.Warn("redis not reachable, consumer will keep retrying", zap.String("addr", cfg.RedisAddr))
	}

	q := queue.NewRedisQueue(rdb.Client, cfg.QueueKey)
	d := notification.NewDispatcher(notification.NewService(notification.NewRepository(db.Pool)), log.Named("dispatcher"))

	log.Info("worker started", zap.String("queue", cfg.QueueKey))
	if err := d.Run(ctx, q); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("worker stopped", zap.Error(err))
		return
	}
	log.Info("worker stopped")
}
