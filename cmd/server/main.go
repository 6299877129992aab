package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shop-service/internal/config"
	httpapi "shop-service/internal/controllers/http"
	"shop-service/internal/infra/mysql"
	"shop-service/internal/infra/rabbitmq"
	"shop-service/internal/infra/session"
	mysqlrepo "shop-service/internal/repository/mysql"
	"shop-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		zap.NewExample().Fatal("config", zap.Error(err))
	}

	logger := newLogger(cfg)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := mysql.Open(ctx, cfg.MySQL, logger)
	if err != nil {
		logger.Fatal("db: connect", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})
	defer redisClient.Close()

	var publisher rabbitmq.PublisherInterface = &rabbitmq.LogPublisher{Logger: logger.Named("notify")}
	if cfg.RabbitMQURL != "" {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, cfg.NotifyExchange, logger)
		if err != nil {
			logger.Fatal("failed to init publisher", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	} else {
		logger.Warn("RABBITMQ_URL not set, notifications are only logged")
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	svc := newServices(cfg, db, redisClient, publisher, logger)

	go svc.Checkout.RunReconciler(ctx, cfg.ReconcileInterval)
	go func() {
		if err := svc.Catalog.Warmup(ctx); err != nil {
			logger.Warn("failed to warm up catalog cache", zap.Error(err))
			return
		}
		logger.Info("catalog cache warmed up")
	}()

	handler := httpapi.NewHandler(svc, session.NewRedisStore(redisClient, cfg.SessionTTL), httpapi.Options{
		CookieName:   cfg.SessionCookie,
		CookieTTL:    cfg.SessionTTL,
		SecureCookie: cfg.SecureCookie,
		CORSOrigin:   cfg.CORSOrigin,
		UploadDir:    cfg.UploadDir,
	}, logger.Named("http"))
	handler.SetHealthCheck(func(ctx context.Context) error {
		if err := mysql.Ping(ctx, db); err != nil {
			return err
		}
		return redisClient.Ping(ctx).Err()
	})

	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting shop service", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server run", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	if err := svc.Checkout.Drain(shutdownCtx); err != nil {
		logger.Warn("orders still finalizing, left to the reconciler", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	build := zap.NewProduction
	if cfg.Development() {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic(err)
	}
	return logger
}

func newServices(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, publisher rabbitmq.PublisherInterface, logger *zap.Logger) httpapi.Services {
	orders := mysqlrepo.NewOrderRepository(db, logger)
	products := mysqlrepo.NewProductRepository(db, logger)
	customers := mysqlrepo.NewCustomerRepository(db, logger)
	deliveries := mysqlrepo.NewDeliveryRepository(db, logger)
	discounts := mysqlrepo.NewDiscountRepository(db, logger)

	stock := services.NewStockService(products, logger)
	stock.SetImageDir(cfg.UploadDir)

	catalog := services.NewCatalogService(mysqlrepo.NewCategoryRepository(db, logger), discounts, deliveries, logger)
	catalog.SetRedisClient(redisClient)
	catalog.SetImageDir(cfg.UploadDir)

	checkout := services.NewCheckoutService(orders, customers, deliveries, discounts, publisher,
		services.MailSettings{From: cfg.MailFrom, Cc: cfg.MailCc}, logger)
	checkout.SetReconcileGrace(cfg.ReconcileGrace)

	return httpapi.Services{
		Orders:     services.NewOrderService(orders, deliveries, discounts, logger),
		Checkout:   checkout,
		Stock:      stock,
		Catalog:    catalog,
		Customers:  services.NewCustomerService(customers, logger),
		Favourites: services.NewFavouriteService(mysqlrepo.NewFavouriteRepository(db, logger), logger),
	}
}
