package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthanhphan/gosdk/logger"
	httpHandler "github.com/filekeeper/go-files-manager/internal/adapter/inbound/http"
	"github.com/filekeeper/go-files-manager/internal/adapter/outbound/blobstore"
	"github.com/filekeeper/go-files-manager/internal/adapter/outbound/postgres"
	"github.com/filekeeper/go-files-manager/internal/adapter/outbound/redisqueue"
	"github.com/filekeeper/go-files-manager/internal/adapter/outbound/tokencache"
	"github.com/filekeeper/go-files-manager/internal/config"
	"github.com/filekeeper/go-files-manager/internal/service"
	"github.com/filekeeper/go-files-manager/pkg/idgen"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// API is the request-handling process: upload, listing, publish, retrieval.
type API struct {
	cfg    *config.Config
	server *httpHandler.Server
	db     *gorm.DB
	redis  *redis.Client
}

// NewAPI wires the API process from configuration.
func NewAPI(configPath string) (*API, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	// 3. Shared clients: Redis, Postgres, ID generator
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

	// 4. Outbound adapters
	fileRepo := postgres.NewFileRepository(db, idGen)
	userRepo := postgres.NewUserRepository(db, idGen)

	blobs, err := blobstore.NewLocalStore(cfg.Storage.FolderPath)
	if err != nil {
		return nil, err
	}

	producer := redisqueue.NewProducer(redisClient, cfg.Worker.Stream)
	sessions := tokencache.NewRedisStore(redisClient, time.Duration(cfg.Auth.TokenTTLSeconds)*time.Second)

	// 5. Services
	fileSvc := service.NewFileService(fileRepo, blobs, producer, sessions)
	userSvc := service.NewUserService(userRepo, sessions)
	statusSvc := service.NewStatusService(
		userRepo,
		fileRepo,
		func(ctx context.Context) bool { return redisClient.Ping(ctx).Err() == nil },
		func(ctx context.Context) bool { return postgres.Ping(db) },
	)

	// 6. HTTP Server
	httpServer := httpHandler.NewServer(cfg, fileSvc, userSvc, statusSvc)

	return &API{
		cfg:    cfg,
		server: httpServer,
		db:     db,
		redis:  redisClient,
	}, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (a *API) Run() error {
	logger.Infow("API starting", "addr", a.cfg.Server.Addr)
	serverErrCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			serverErrCh <- err
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case sig := <-stop:
		logger.Infow("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrCh:
		runErr = fmt.Errorf("http server failed: %w", err)
		logger.Errorw("API server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down API")
	if err := a.server.Stop(context.Background()); err != nil {
		logger.Errorw("API shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if err := a.redis.Close(); err != nil {
		logger.Warnw("Redis close error", "error", err.Error())
	}
	if err := postgres.Close(a.db); err != nil {
		logger.Warnw("Database close error", "error", err.Error())
	}

	return runErr
}
