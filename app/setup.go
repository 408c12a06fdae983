package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/edugroup/site-api/api"
	"github.com/edugroup/site-api/config"
	"github.com/edugroup/site-api/database"
	"github.com/edugroup/site-api/router"
	"github.com/edugroup/site-api/services"
	"github.com/edugroup/site-api/services/cron"
	"github.com/edugroup/site-api/services/storage"
	"github.com/edugroup/site-api/utils/cache"
	"github.com/edugroup/site-api/utils/logger"
	"github.com/edugroup/site-api/utils/middleware"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Bootstrap loads the environment, installs the logger and opens the store.
// A missing store endpoint or credential tier is an error.
func Bootstrap() (*config.EnvironmentVariables, *database.GORMStore, error) {
	if err := config.LoadENV(); err != nil {
		return nil, nil, err
	}

	env, err := config.Get()
	if err != nil {
		return nil, nil, err
	}

	if _, err := logger.Init(env.GO_ENV); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	if err := env.Validate(); err != nil {
		return nil, nil, err
	}

	store, err := database.StartGORM(env)
	if err != nil {
		logger.L().Error("check that the database is running and DATABASE_URL is correct")
		return nil, nil, err
	}
	return env, store, nil
}

// attemptStore prefers Redis and falls back to process memory
func attemptStore(env *config.EnvironmentVariables) (middleware.AttemptStore, func()) {
	if env.REDIS_URL != "" {
		redisCache, err := cache.NewRedisCache(env.REDIS_URL)
		if err == nil {
			return redisCache, func() { _ = redisCache.Close() }
		}
		logger.L().Warn("redis unavailable, throttling in memory", zap.Error(err))
	}
	return cache.NewLocalCache(), func() {}
}

func objectStore(env *config.EnvironmentVariables) services.ObjectStore {
	client, err := storage.NewClient(storage.Config{
		AccessKey: env.STORAGE_ACCESS_KEY,
		SecretKey: env.STORAGE_SECRET_KEY,
		Bucket:    env.STORAGE_BUCKET,
		Region:    env.STORAGE_REGION,
		Endpoint:  env.STORAGE_ENDPOINT,
		CDNURL:    env.STORAGE_CDN_URL,
	})
	if err != nil {
		logger.L().Warn("uploads disabled", zap.Error(err))
		return nil
	}
	return client
}

func SetupAndRunServer() error {
	env, store, err := Bootstrap()
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer store.Close()

	if err := store.Init(); err != nil {
		logger.L().Error("failed to migrate database tables", zap.Error(err))
		return err
	}

	attempts, closeAttempts := attemptStore(env)
	defer closeAttempts()

	var notifier services.AdmissionNotifier
	if email := services.NewEmailService(env); email.IsConfigured() {
		notifier = email
	} else {
		logger.L().Info("SMTP not configured, admission emails disabled")
	}

	server := api.NewAPIServer(fmt.Sprintf(":%d", env.PORT))
	app := server.GetEngine()

	svc := router.SetupRoutes(app, router.Dependencies{
		Store:     store,
		Env:       env,
		Objects:   objectStore(env),
		Notifier:  notifier,
		Attempts:  attempts,
		RateLimit: 100,
		AccessLog: true,
	})

	if env.CRON_ENABLED {
		cronManager := cron.NewCronManager(store.DB(), svc.News)
		if err := cronManager.Start(); err != nil {
			// the site works without scheduled jobs
			logger.L().Warn("failed to start cron jobs", zap.Error(err))
		} else {
			defer cronManager.Stop()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() { errCh <- server.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		logger.L().Info("shutting down")
		return server.Shutdown(shutdownTimeout)
	}
}
