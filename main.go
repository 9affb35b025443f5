package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Nikk8744/F-T-T-sub000/config"
	"github.com/Nikk8744/F-T-T-sub000/constants"
	"github.com/Nikk8744/F-T-T-sub000/jobs"
	"github.com/Nikk8744/F-T-T-sub000/routes"
	"github.com/Nikk8744/F-T-T-sub000/services"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"
	"github.com/Nikk8744/F-T-T-sub000/services/notification"
)

// @title                      Task tracker notifications API
// @version                    1.0
// @description                Deadline alerts, notification inbox and live push.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, closeLog := newLogger(cfg)
	defer closeLog()

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb, err := config.ConnectRedis(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}

	router, m := config.InitApp(cfg)

	directory := notification.NewDirectory()
	localBroker := notification.NewLocalBroker(directory, appLogger)
	var broker notification.Broker = localBroker
	if rdb != nil {
		redisBroker := notification.NewRedisBroker(rdb, constants.LiveChannel, localBroker, appLogger)
		broker = redisBroker
		go func() {
			if err := redisBroker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				appLogger.Error("Live relay stopped: %v", err)
			}
		}()
	}

	notificationService := services.NewNotificationService(services.NotificationServiceOptions{
		DB:     db,
		Broker: broker,
		Cache:  rdb,
		Logger: appLogger,
	})

	store := services.NewGormDeadlineStore(db)
	pipeline := services.NewDeadlinePipeline(services.DeadlinePipelineOptions{
		Scanner:     services.NewDeadlineScanner(store, cfg.Location),
		Resolver:    services.NewRecipientResolver(store),
		Dispatcher:  services.NewNotificationDispatcher(notificationService, appLogger),
		WarningDays: cfg.DeadlineWarningDays,
		Logger:      appLogger,
	})

	scheduler := jobs.NewScheduler(jobs.SchedulerOptions{
		Runner:   pipeline,
		Logger:   appLogger,
		Location: cfg.Location,
	})
	if err := scheduler.Start(cfg.DeadlineCron); err != nil {
		log.Fatalf("Failed to start deadline scheduler: %v", err)
	}

	routes.SetupRoutes(router, routes.Deps{
		Tokens:        services.NewTokenService(cfg.JWTSecret),
		Notifications: notificationService,
		Scheduler:     scheduler,
		Directory:     directory,
		Melody:        m,
		Logger:        appLogger,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.Info("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	appLogger.Info("Shutting down...")

	scheduler.Stop()
	if err := m.Close(); err != nil {
		appLogger.Warn("Closing websocket hub: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown: %v", err)
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func newLogger(cfg config.Config) (logger.Logger, func()) {
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.LogDir == "" {
		return logger.NewDefaultLogger(level), func() {}
	}

	fileLogger, closer, err := logger.NewFileLogger(level, cfg.LogDir)
	if err != nil {
		log.Printf("Warning: file logging disabled: %v", err)
		return logger.NewDefaultLogger(level), func() {}
	}
	return fileLogger, func() { _ = closer.Close() }
}
