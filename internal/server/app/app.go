package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-fileshare/internal/server/adapter/inbound/http"
	"github.com/anthanhphan/go-fileshare/internal/server/adapter/outbound/cachestore"
	"github.com/anthanhphan/go-fileshare/internal/server/adapter/outbound/memstore"
	"github.com/anthanhphan/go-fileshare/internal/server/adapter/outbound/redisstore"
	"github.com/anthanhphan/go-fileshare/internal/server/config"
	"github.com/anthanhphan/go-fileshare/internal/server/port"
	"github.com/anthanhphan/go-fileshare/internal/server/service"
	"github.com/anthanhphan/go-fileshare/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg    *config.Config
	server *httpHandler.Server
	redis  *redis.Client
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	return NewWithConfig(cfg)
}

// NewWithConfig wires the application from an already loaded configuration.
func NewWithConfig(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	// 3. File Store
	store, err := a.buildStore()
	if err != nil {
		return nil, err
	}

	// 4. Service
	svc := service.NewFileService(store, idgen.ShortIDGenerator{})

	// 5. HTTP Server
	a.server = httpHandler.NewServer(cfg, svc)

	return a, nil
}

func (a *App) buildStore() (port.FileStore, error) {
	var store port.FileStore

	switch a.cfg.Store.Driver {
	case "", config.StoreDriverMemory:
		store = memstore.New(a.cfg.Store.Shards)
	case config.StoreDriverRedis:
		a.redis = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		rs, err := redisstore.New(a.redis, a.cfg.Redis.KeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis store: %w", err)
		}
		store = rs
	default:
		return nil, fmt.Errorf("unknown store driver %q", a.cfg.Store.Driver)
	}

	if a.cfg.Cache.Enabled {
		store = cachestore.New(store, a.cfg.Cache.Size, a.cfg.Cache.TTL())
	}

	logger.Infow("File store ready",
		"driver", a.cfg.Store.Driver,
		"cache", a.cfg.Cache.Enabled,
	)
	return store, nil
}

func (a *App) Run() error {
	if a.redis != nil {
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := a.redis.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("redis unreachable at %s: %w", a.cfg.Redis.Addr, err)
		}
	}

	// Start HTTP
	logger.Infow("File share server starting", "addr", a.cfg.Server.Addr)
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
		logger.Errorw("Server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down file share server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Stop(ctx); err != nil {
		logger.Errorw("HTTP shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warnw("Redis close error", "error", err.Error())
		}
	}

	return runErr
}
