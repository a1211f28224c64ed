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
	authapp "github.com/wyfcoding/storefront/internal/auth/application"
	authhttp "github.com/wyfcoding/storefront/internal/auth/interfaces/http"
	authredis "github.com/wyfcoding/storefront/internal/auth/infrastructure/persistence/redis"
	cartapp "github.com/wyfcoding/storefront/internal/cart/application"
	carthttp "github.com/wyfcoding/storefront/internal/cart/interfaces/http"
	cartredis "github.com/wyfcoding/storefront/internal/cart/infrastructure/persistence/redis"
	catalogapp "github.com/wyfcoding/storefront/internal/catalog/application"
	catalogdomain "github.com/wyfcoding/storefront/internal/catalog/domain"
	cataloghttp "github.com/wyfcoding/storefront/internal/catalog/interfaces/http"
	catalogmysql "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/mysql"
	catalogredis "github.com/wyfcoding/storefront/internal/catalog/infrastructure/persistence/redis"
	orderapp "github.com/wyfcoding/storefront/internal/order/application"
	orderdomain "github.com/wyfcoding/storefront/internal/order/domain"
	orderhttp "github.com/wyfcoding/storefront/internal/order/interfaces/http"
	ordermessaging "github.com/wyfcoding/storefront/internal/order/infrastructure/messaging"
	ordermysql "github.com/wyfcoding/storefront/internal/order/infrastructure/persistence/mysql"
	userdomain "github.com/wyfcoding/storefront/internal/user/domain"
	usermysql "github.com/wyfcoding/storefront/internal/user/infrastructure/persistence/mysql"
	"github.com/wyfcoding/storefront/pkg/cache"
	"github.com/wyfcoding/storefront/pkg/config"
	"github.com/wyfcoding/storefront/pkg/db"
	"github.com/wyfcoding/storefront/pkg/logger"
	"github.com/wyfcoding/storefront/pkg/metrics"
	"github.com/wyfcoding/storefront/pkg/middleware"
	"github.com/wyfcoding/storefront/pkg/mq"
)

func main() {
	configPath := flag.String("config", "configs/storefront.toml", "path to config file")
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

	ctx := context.Background()
	logger.Info(ctx, "Starting storefront service", "environment", cfg.Environment)

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

	if err := database.AutoMigrate(
		&catalogdomain.Category{},
		&catalogdomain.Product{},
		&userdomain.User{},
		&orderdomain.Order{},
		&orderdomain.OrderItem{},
	); err != nil {
		logger.Fatal(ctx, "Failed to migrate database", "error", err)
	}

	redisCache, err := cache.New(cache.Config{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxPoolSize:  cfg.Redis.MaxPoolSize,
		ConnTimeout:  cfg.Redis.ConnTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to init redis", "error", err)
	}
	defer redisCache.Close()

	producer, err := mq.NewProducer(mq.KafkaConfig{
		Brokers:      cfg.Kafka.Brokers,
		MaxRetries:   cfg.Kafka.MaxRetries,
		RetryBackoff: cfg.Kafka.RetryBackoff,
	})
	if err != nil {
		logger.Fatal(ctx, "Failed to init kafka producer", "error", err)
	}
	defer producer.Close()

	m := metrics.New("storefront")
	if cfg.Metrics.Enabled {
		if err := m.Register(); err != nil {
			logger.Fatal(ctx, "Failed to register metrics", "error", err)
		}
	}

	// 仓储
	userRepo := usermysql.NewUserRepository(database.DB)
	productRepo := catalogredis.NewCachedProductRepository(
		catalogmysql.NewProductRepository(database.DB), redisCache)
	categoryRepo := catalogmysql.NewCategoryRepository(database.DB)
	cartRepo := cartredis.NewCartRepository(redisCache)
	sessionRepo := authredis.NewSessionRepository(redisCache)
	orderRepo := ordermysql.NewOrderRepository(database.DB)

	// 应用服务
	authSvc := authapp.NewAuthApplicationService(userRepo, sessionRepo,
		cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTL)*time.Second)
	catalogSvc := catalogapp.NewCatalogApplicationService(productRepo, categoryRepo)
	cartSvc := cartapp.NewCartApplicationService(cartRepo)
	orderSvc := orderapp.NewOrderApplicationService(
		orderRepo,
		ordermysql.NewTxRunner(database),
		ordermessaging.NewKafkaPublisher(producer),
		m,
	)

	engine := newEngine(cfg, m)

	api := engine.Group("/api/v1")
	authhttp.NewAuthHandler(authSvc, m).RegisterRoutes(api)
	cataloghttp.NewCatalogHandler(catalogSvc).RegisterRoutes(api)

	authed := api.Group("")
	authed.Use(authhttp.AuthRequired(authSvc))
	carthttp.NewCartHandler(cartSvc, catalogSvc, m).RegisterRoutes(authed)
	orderhttp.NewOrderHandler(orderSvc, cartSvc).RegisterRoutes(authed)

	runServer(ctx, cfg, engine)
}

func newEngine(cfg *config.Config, m *metrics.Metrics) *gin.Engine {
	if cfg.Environment == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(middleware.GinRecoveryMiddleware())
	engine.Use(middleware.GinLoggingMiddleware())
	engine.Use(middleware.GinCORSMiddleware())
	if cfg.Metrics.Enabled {
		engine.Use(middleware.GinMetricsMiddleware(m))
	}

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.Burst, cfg.RateLimit.QPS)
		engine.Use(middleware.GinRateLimitMiddleware(limiter))
	}

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": cfg.ServiceName})
	})
	if cfg.Metrics.Enabled {
		engine.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}
	return engine
}

func runServer(ctx context.Context, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	go func() {
		logger.Info(ctx, "HTTP server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal(ctx, "HTTP server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "Server shutdown failed", "error", err)
	}
	logger.Info(ctx, "Server exited")
}
