package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	notifapp "github.com/wyfcoding/storefront/internal/notification/application"
	notifdomain "github.com/wyfcoding/storefront/internal/notification/domain"
	"github.com/wyfcoding/storefront/internal/notification/infrastructure/sender"
	notifmysql "github.com/wyfcoding/storefront/internal/notification/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/internal/notification/interfaces/consumer"
	ordermessaging "github.com/wyfcoding/storefront/internal/order/infrastructure/messaging"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/mq"
)

func main() {
	configPath := flag.String("config", "configs/notification.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting notification service", "environment", cfg.Environment)

	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to init database", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(&notifdomain.Notification{}); err != nil {
		logger.Fatal(ctx, "Failed to migrate database", "error", err)
	}

	kafkaConsumer, err := mq.NewConsumer(mq.KafkaConfig{
		Brokers:        cfg.Kafka.Brokers,
		GroupID:        cfg.Kafka.GroupID,
		SessionTimeout: cfg.Kafka.SessionTimeout,
	}, ordermessaging.TopicOrderCreated)
	if err != nil {
		logger.Fatal(ctx, "Failed to init kafka consumer", "error", err)
	}
	defer kafkaConsumer.Close()

	m := metrics.New("notification")
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
	}

	repo := notifmysql.NewNotificationRepository(database.DB)
	svc := notifapp.NewNotificationApplicationService(repo, sender.NewLogSender())
	orderConsumer := consumer.NewOrderCreatedConsumer(kafkaConsumer, svc)

	// 健康检查与指标端点
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(middleware.GinRecoveryMiddleware())
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: engine,
	}
	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	consumerDone := make(chan error, 1)
	go func() {
		consumerDone <- orderConsumer.Run(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info(ctx, "Shutdown signal received")
	case err := <-consumerDone:
		if err != nil {
			logger.Error(ctx, "Consumer stopped unexpectedly", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown failed", "error", err)
	}
	logger.Info(ctx, "Service exited")
}
