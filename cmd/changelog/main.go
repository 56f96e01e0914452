package main // consumes planner change events and appends them to logs/planner.log

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/config"
	"github.com/iliyamo/cinema-planner/internal/logger"
	"github.com/iliyamo/cinema-planner/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Env, "changelog")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := &queue.ChangeLogConsumer{
		URL:       cfg.AMQPURL,
		QueueName: cfg.ChangeQueue,
		LogDir:    os.Getenv("CHANGELOG_DIR"),
		Log:       zl,
	}
	zl.Info("changelog consumer started", zap.String("queue", cfg.ChangeQueue))
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		zl.Fatal("changelog consumer stopped", zap.Error(err))
	}
}
