// File: lexdesk/main.go
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lexdesk/config"
	"lexdesk/cron"
	"lexdesk/database"
	"lexdesk/database/repository"
	"lexdesk/handlers"
	"lexdesk/middleware"
	"lexdesk/routes"
	"lexdesk/services/audit"
	"lexdesk/services/callable"
	"lexdesk/services/chat"
	"lexdesk/services/inbox"
	"lexdesk/services/notification"
	"lexdesk/services/reminders"
	"lexdesk/services/storage"
	"lexdesk/services/triggers"
	"lexdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: failed to load config: %v", err)
	}

	// "lexdesk admin-token <subject>" prints an ops token and exits.
	if len(os.Args) == 3 && os.Args[1] == "admin-token" {
		token, err := utils.GenerateAdminToken([]byte(cfg.AdminJWTSecret), os.Args[2], utils.AdminTokenTTL)
		if err != nil {
			log.Fatalf("main: %v", err)
		}
		fmt.Println(token)
		return
	}

	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongoClient, err := database.InitDB(ctx, cfg)
	if err != nil {
		logger.Fatal("main: database unavailable", zap.Error(err))
	}
	db := mongoClient.Database(cfg.DatabaseName)

	rdb, err := utils.NewCacheClient(cfg)
	if err != nil {
		logger.Fatal("main: redis unavailable", zap.Error(err))
	}

	fb, err := utils.FirebaseInit(ctx, cfg)
	if err != nil {
		logger.Fatal("main: firebase init failed", zap.Error(err))
	}

	store, err := storage.New(ctx, cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize attachment storage", zap.Error(err))
	}

	// repositories.
	repos := repository.NewMongoRepositories(db)
	clock := utils.SystemClock{}
	loc := cfg.Location()

	// services.
	mailer := notification.NewSMTPMailer(cfg, logger)
	push, err := notification.NewFCMPushService(repos.Users, fb.Messaging, logger)
	if err != nil {
		logger.Fatal("main: failed to initialize push", zap.Error(err))
	}
	auditRec := audit.NewRecorder(repos.Logs, clock, logger)

	callableSvc := callable.NewService(callable.Deps{
		Auth:       fb.Auth,
		Users:      repos.Users,
		Tasks:      repos.Tasks,
		Cases:      repos.Cases,
		Audit:      auditRec,
		Clock:      clock,
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	})

	chatSvc := chat.NewService(chat.Deps{
		Messages:    repos.Messages,
		Groups:      repos.Groups,
		Store:       store,
		Broadcaster: chat.NewRedisBroadcaster(rdb, logger),
		Unseen:      chat.NewRedisUnseenTracker(rdb),
		Push:        push,
		Audit:       auditRec,
		Clock:       clock,
		EditWindow:  cfg.ChatEditWindow,
		Logger:      logger,
	})

	runner := reminders.NewRunner(reminders.Deps{
		Tasks:         repos.Tasks,
		Cases:         repos.Cases,
		Appointments:  repos.Appointments,
		Notifications: repos.Notifications,
		Mailer:        mailer,
		Clock:         clock,
		Location:      loc,
		Retention:     cfg.NotificationRetention,
		Logger:        logger,
	})

	worker, err := cron.NewWorker(cfg, runner, logger)
	if err != nil {
		logger.Fatal("main: failed to configure job worker", zap.Error(err))
	}
	if err := worker.Start(); err != nil {
		logger.Fatal("main: failed to start job worker", zap.Error(err))
	}

	watchDone := make(chan struct{})
	if cfg.WatchEntityChanges {
		go func() {
			defer close(watchDone)
			triggers.Watch(ctx, db, mailer, logger)
		}()
	} else {
		close(watchDone)
	}

	health := utils.NewHealthMonitor(mongoClient, rdb, 30*time.Second)
	health.Start(ctx)

	// Create the Gin router.
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))

	handlerBundle := &handlers.HandlerBundle{
		Callable: handlers.NewCallableHandler(callableSvc, cfg.IsProduction(), logger),
		Chat:     handlers.NewChatHandler(chatSvc, logger),
		Inbox:    handlers.NewInboxHandler(inbox.NewService(repos.Notifications), logger),
		Admin:    handlers.NewAdminHandler(repos.Users, runner, worker, logger),
		Health:   &handlers.HealthHandler{Monitor: health},
	}
	routes.RegisterRoutes(router, handlerBundle, routes.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AdminSecret:    []byte(cfg.AdminJWTSecret),
	})

	// Start the HTTP server.
	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	<-watchDone

	if closer, ok := store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Warn("main: failed to close storage", zap.Error(err))
		}
	}
	if err := rdb.Close(); err != nil {
		logger.Warn("main: failed to close redis", zap.Error(err))
	}
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		logger.Warn("main: failed to disconnect mongo", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
