package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "github.com/anthanhphan/go-file-uploader/internal/server/adapter/inbound/http"
	"github.com/anthanhphan/go-file-uploader/internal/server/adapter/outbound/diskstore"
	"github.com/anthanhphan/go-file-uploader/internal/server/config"
	"github.com/anthanhphan/go-file-uploader/internal/server/service"
	"github.com/anthanhphan/go-file-uploader/pkg/idgen"
	"github.com/anthanhphan/gosdk/logger"
	"github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg         *config.Config
	server      *httpHandler.Server
	redisClient *redis.Client
}

func New(configPath string) (*App, error) {
	// 1. Load Config
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Initialize Logger
	logger.InitLogger(&cfg.Logger)

	a := &App{cfg: cfg}

	// 3. Name policy, with a snowflake generator only when configured
	var idGen service.IDGenerator
	if cfg.Storage.NamePolicy == config.NamePolicySnowflake {
		sf, err := a.newSnowflake()
		if err != nil {
			return nil, err
		}
		idGen = sf
	}

	names, err := service.NewNamePolicy(cfg.Storage.NamePolicy, idGen)
	if err != nil {
		return nil, fmt.Errorf("failed to init name policy: %w", err)
	}

	// 4. Storage & Services
	store := diskstore.New(cfg.Storage.Root)
	svc := service.NewFileService(store, names)

	// 5. HTTP Server
	a.server = httpHandler.NewServer(cfg, svc)

	return a, nil
}

// newSnowflake uses Redis as the clock when an address is configured.
func (a *App) newSnowflake() (*idgen.Snowflake, error) {
	var clock idgen.Clock
	if a.cfg.Redis.Addr != "" {
		a.redisClient = redis.NewClient(&redis.Options{
			Addr:     a.cfg.Redis.Addr,
			Password: a.cfg.Redis.Password,
			DB:       a.cfg.Redis.DB,
		})
		clock = idgen.NewRedisClock(a.redisClient)
	}

	sf, err := idgen.New(a.cfg.App.NodeID, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to init snowflake: %w", err)
	}
	return sf, nil
}

func (a *App) Run() error {
	logger.Infow("Upload server starting",
		"addr", a.cfg.Server.Addr,
		"upload_path", a.cfg.Server.UploadPath,
		"root", a.cfg.Storage.Root,
		"name_policy", a.cfg.Storage.NamePolicy,
	)
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
		logger.Errorw("Upload server exited unexpectedly", "error", err.Error())
	}

	logger.Info("Shutting down upload server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Stop(ctx); err != nil {
		logger.Errorw("Upload server shutdown error", "error", err.Error())
		if runErr == nil {
			runErr = err
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			logger.Warnw("Redis close failed", "error", err.Error())
		}
	}

	return runErr
}
