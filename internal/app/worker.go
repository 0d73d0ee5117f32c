package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	"github.com/filekeeper/go-files-manager/internal/adapter/outbound/blobstore"
	"github.com/filekeeper/go-files-manager/internal/adapter/outbound/postgres"
	"github.com/filekeeper/go-files-manager/internal/adapter/outbound/redisqueue"
	"github.com/filekeeper/go-files-manager/internal/config"
	"github.com/filekeeper/go-files-manager/internal/service"
	"github.com/filekeeper/go-files-manager/pkg/idgen"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Worker is the background process that consumes thumbnail jobs. It shares
// no in-process state with the API; the queue is the only link.
type Worker struct {
	cfg      *config.Config
	consumer *redisqueue.Consumer
	thumbs   *service.ThumbnailService
	db       *gorm.DB
	redis    *redis.Client
}

// NewWorker wires the worker process from configuration.
func NewWorker(configPath string) (*Worker, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.InitLogger(&cfg.Logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	idGen, err := idgen.New(cfg.App.NodeID, idgen.NewRedisClock(redisClient))
	if err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}

	db, err := postgres.Open(cfg.Postgres.DSN)
	if err != nil {
		return nil, err
	}

	blobs, err := blobstore.NewLocalStore(cfg.Storage.FolderPath)
	if err != nil {
		return nil, err
	}

	consumer := redisqueue.NewConsumer(redisClient, redisqueue.ConsumerConfig{
		Stream:    cfg.Worker.Stream,
		Group:     cfg.Worker.Group,
		Consumer:  cfg.Worker.Consumer,
		Block:     time.Duration(cfg.Worker.BlockMS) * time.Millisecond,
		ClaimIdle: time.Duration(cfg.Worker.ClaimIdleSec) * time.Second,
	})

	thumbs := service.NewThumbnailService(postgres.NewFileRepository(db, idGen), blobs)

	return &Worker{
		cfg:      cfg,
		consumer: consumer,
		thumbs:   thumbs,
		db:       db,
		redis:    redisClient,
	}, nil
}

// Run consumes jobs until a shutdown signal arrives.
func (w *Worker) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumeErrCh := make(chan error, 1)
	go func() {
		consumeErrCh <- w.consumer.Consume(ctx, w.thumbs.Process)
	}()

	logger.Infow("Worker started", "stream", w.cfg.Worker.Stream, "group", w.cfg.Worker.Group, "consumer", w.cfg.Worker.Consumer)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
		cancel()
		<-consumeErrCh
	case err := <-consumeErrCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			runErr = fmt.Errorf("consumer failed: %w", err)
			logger.Errorw("Worker exited unexpectedly", "error", err.Error())
		}
	}

	logger.Info("Shutting down worker")
	if err := w.redis.Close(); err != nil {
		logger.Warnw("Redis close error", "error", err.Error())
	}
	if err := postgres.Close(w.db); err != nil {
		logger.Warnw("Database close error", "error", err.Error())
	}

	return runErr
}
