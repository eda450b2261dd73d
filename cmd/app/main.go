package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	apiHttp "github.com/viettour/backend/internal/api/http"
	"github.com/viettour/backend/internal/cache"
	"github.com/viettour/backend/internal/config"
	"github.com/viettour/backend/internal/db"
	"github.com/viettour/backend/internal/imagecache"
	"github.com/viettour/backend/internal/repository"
	"github.com/viettour/backend/internal/server"
	"github.com/viettour/backend/internal/service"
	"github.com/viettour/backend/internal/storage"
	logger "github.com/viettour/backend/pkg/logger"
)

func main() {
	// Init cfg from environment variables
	cfg := config.MustLoad()

	// Dependencies
	appLogger := logger.SetupLogger(cfg.Env)

	appLogger.Info("starting tour catalog api", zap.String("env", cfg.Env))
	appLogger.Debug("debug messages are enabled")

	// Init redis. The local record store and the image cache live here, so a
	// missing redis is fatal even when mysql is up.
	rdb, err := cache.NewRedis(cfg.Cache)
	if err != nil {
		appLogger.Error("redis connect problem", zap.Error(err))
		os.Exit(1)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			appLogger.Error("error when closing redis", zap.Error(err))
		}
	}()
	appLogger.Info("redis connection done")

	// Init mysql. The remote backend is optional: without it every record
	// operation falls through to the local redis store.
	var dbMySQL *sqlx.DB
	if cfg.Database.Server != "" {
		dbMySQL, err = db.New(cfg.Database)
		if err != nil {
			appLogger.Warn("mysql connect problem, running local-only", zap.Error(err))
			dbMySQL = nil
		} else {
			appLogger.Info("mysql connection done")
			defer func() {
				if err := dbMySQL.Close(); err != nil {
					appLogger.Error("error when closing mysql", zap.Error(err))
				}
			}()
			if err := repository.EnsureSchema(context.Background(), dbMySQL); err != nil {
				appLogger.Error("mysql schema migration failed", zap.Error(err))
				os.Exit(1)
			}
		}
	} else {
		appLogger.Info("no mysql server configured, running local-only")
	}

	// Record store facade: remote-first per call when configured, redis
	// fallback otherwise.
	var remote repository.TourStore
	if dbMySQL != nil {
		remote = repository.NewTourMySQL(dbMySQL)
	}
	local := repository.NewTourRedis(rdb, cfg.Store.LocalKey, cfg.Store.LegacyLocalKey)
	store := repository.NewTours(remote, local, func() bool {
		return cfg.Store.RemoteEnabled && dbMySQL != nil
	})

	images := imagecache.New(rdb, cfg.Store.ImageCacheKey)
	if err := images.Load(context.Background()); err != nil {
		appLogger.Warn("image cache load failed, starting empty", zap.Error(err))
	}

	var objectStorage storage.ObjectStorage
	if cfg.OSS.Configured() {
		ossStorage, err := storage.NewOSS(cfg.OSS)
		if err != nil {
			appLogger.Error("oss init failed", zap.Error(err))
			os.Exit(1)
		}
		objectStorage = ossStorage
		appLogger.Info("oss storage configured", zap.String("bucket", cfg.OSS.Bucket))
	} else {
		appLogger.Info("oss storage not configured, uploads disabled")
	}

	// Services & API Handlers
	services := service.NewServices(service.Deps{
		Store:      store,
		ImageCache: images,
	})
	services.Catalog.Refresh(context.Background())

	handlers := apiHttp.NewHandlers(services, cfg, objectStorage)

	// HTTP Server
	srv := server.NewServer(cfg, handlers.Init(cfg))
	go func() {
		if err := srv.Run(); !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("error occurred while running http server", zap.Error(err))
		}
	}()
	appLogger.Info("server started", zap.String("port", cfg.HttpServer.Port))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	<-quit

	const timeout = 5 * time.Second

	ctx, shutdown := context.WithTimeout(context.Background(), timeout)
	defer shutdown()

	if err := srv.Stop(ctx); err != nil {
		appLogger.Error("failed to stop server", zap.Error(err))
	}

	appLogger.Info("app stopped")
}
