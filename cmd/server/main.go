package main // planner process: owns the planner, persists it and serves the viewer

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-planner/internal/cache"
	"github.com/iliyamo/cinema-planner/internal/config"
	"github.com/iliyamo/cinema-planner/internal/handler"
	"github.com/iliyamo/cinema-planner/internal/logger"
	"github.com/iliyamo/cinema-planner/internal/planner"
	"github.com/iliyamo/cinema-planner/internal/queue"
	"github.com/iliyamo/cinema-planner/internal/router"
	"github.com/iliyamo/cinema-planner/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zl, err := logger.New(cfg.Env, "planner")
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := []planner.Option{planner.WithLogger(zl)}
	store, err := storage.Open(storage.Options{
		Path:          cfg.DataFile,
		Encrypt:       cfg.Encrypt,
		Password:      cfg.Password,
		KDFIterations: cfg.KDFIterations,
		Log:           zl,
		Planner:       opts,
	})
	if err != nil {
		zl.Fatal("open storage", zap.Error(err))
	}
	p, err := storage.LoadOrSample(store, zl, opts...)
	if err != nil {
		zl.Fatal("load planner", zap.Error(err))
	}
	c, m, t := p.Snapshot().Counts()
	zl.Info("planner loaded",
		zap.String("path", store.Path()),
		zap.Bool("encrypted", cfg.Encrypt),
		zap.Int("cinemas", c), zap.Int("movies", m), zap.Int("tags", t))

	p.Subscribe(storage.AutoSaver(store, zl))

	viewer := handler.NewViewer(p.Snapshot())
	p.Subscribe(viewer.OnChange)

	if cfg.RedisEnabled {
		rdb := cache.NewRedisClient(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TLS:      cfg.RedisTLS,
		})
		if rdb != nil {
			defer rdb.Close()
			p.Subscribe(cache.SummaryListener(rdb, cache.SummaryConfig{
				Key:     cfg.RedisKey,
				Channel: cfg.RedisChannel,
			}, zl))
			zl.Info("redis mirror enabled", zap.String("channel", cfg.RedisChannel))
		} else {
			zl.Warn("redis unavailable; running without the mirror", zap.String("addr", cfg.RedisAddr))
		}
	}

	if cfg.AMQPEnabled {
		pub := queue.NewPublisher(cfg.AMQPURL, cfg.ChangeQueue, 64, zl)
		go pub.Run(ctx)
		p.Subscribe(pub.Listener())
		zl.Info("change events go to rabbitmq", zap.String("queue", cfg.ChangeQueue))
	}

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	if cfg.Port == "" {
		zl.Info("APP_PORT not set; viewer disabled")
		serve(ctx, hup, p, store, zl)
		return
	}

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, viewer, cfg.ViewerSecret)

	addr := ":" + cfg.Port
	go func() {
		zl.Info("viewer listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("viewer stopped", zap.Error(err))
		}
	}()

	serve(ctx, hup, p, store, zl)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zl.Error("viewer shutdown", zap.Error(err))
	}
}

// serve runs the planner's single writer loop until ctx is done. SIGHUP
// reloads the data file, so edits made with plannerctl reach the listeners.
func serve(ctx context.Context, hup <-chan os.Signal, p *planner.Planner, store storage.Storage, zl *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			fresh, err := store.Load()
			if err != nil {
				zl.Error("reload failed; keeping current state", zap.Error(err))
				continue
			}
			p.Reset(fresh)
			c, m, t := p.Snapshot().Counts()
			zl.Info("planner reloaded", zap.Int("cinemas", c), zap.Int("movies", m), zap.Int("tags", t))
		}
	}
}
