package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"rite-api/core/cache"
	"rite-api/core/config"
	"rite-api/core/constants"
	"rite-api/core/database"
	"rite-api/core/logger"
	"rite-api/core/middleware"
	"rite-api/core/storage"
	"rite-api/core/utils"
	"rite-api/modules/auth"
	"rite-api/modules/event"
	"rite-api/modules/notification"
	"rite-api/modules/submission"
	"rite-api/modules/timeslot"
)

// Run boots the whole service: config, database with migrations, redis,
// object storage, the HTTP surface and the background worker. It blocks
// until SIGINT/SIGTERM and then drains both servers.
func Run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Init(cfg.Server.LogLevel)

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	c, err := cache.NewCache(cfg.Redis)
	if err != nil {
		return fmt.Errorf("init cache: %w", err)
	}
	defer c.Close()

	store, err := storage.NewStorage(context.Background(), cfg.S3)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	cipher, err := utils.NewCipher(cfg.EncryptionKey)
	if err != nil {
		return fmt.Errorf("init cipher: %w", err)
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	taskClient := asynq.NewClient(redisOpt)
	defer taskClient.Close()

	taskServer := asynq.NewServer(redisOpt, asynq.Config{Concurrency: 5})
	mux := asynq.NewServeMux()

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RequestID())

	mw := middleware.NewMiddleware(cfg.JWT.Secret, c)

	auth.Init(e, &db, c, cfg, mw)
	event.Init(e, &db, mw)
	subSvc := submission.Init(e, &db, cipher, taskClient, store)
	timeslot.Init(e, &db, c, mw, subSvc)
	notification.Init(e, &db, mw, mux)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	if err := taskServer.Start(mux); err != nil {
		return fmt.Errorf("start task server: %w", err)
	}

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		if err := e.Start(addr); err != nil {
			logger.Info("HTTP server stopped", "error", err.Error())
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownGrace)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server:Shutdown:Error:", err)
	}
	taskServer.Shutdown()
	return nil
}
