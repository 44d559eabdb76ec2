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

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/storeline/storefront/internal/account"
	"github.com/storeline/storefront/internal/cache"
	"github.com/storeline/storefront/internal/catalog"
	"github.com/storeline/storefront/internal/config"
	"github.com/storeline/storefront/internal/domain"
	storehttp "github.com/storeline/storefront/internal/http"
	"github.com/storeline/storefront/internal/session"
	"github.com/storeline/storefront/internal/shipping"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Catalog: Postgres when configured, otherwise the built-in demo set.
	store := catalog.NewMemoryStore()
	var persister session.StockPersister
	if cfg.PostgresHost != "" {
		creds := &catalog.Credentials{
			Host:              cfg.PostgresHost,
			Port:              cfg.PostgresPort,
			User:              cfg.PostgresUser,
			Password:          cfg.PostgresPassword,
			DBName:            cfg.PostgresDB,
			MigrationsDirPath: cfg.MigrationsDirPath,
		}
		repo, err := catalog.NewRepository(creds)
		if err != nil {
			logger.Fatal("failed to connect to postgres", zap.Error(err))
		}
		defer repo.Close()

		if err := repo.RunMigrations(creds); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
		if err := repo.SeedProducts(ctx, defaultCatalog()); err != nil {
			logger.Fatal("failed to seed catalog", zap.Error(err))
		}

		products, err := repo.LoadProducts(ctx)
		if err != nil {
			logger.Fatal("failed to load catalog", zap.Error(err))
		}
		for _, p := range products {
			if err := store.SetProduct(p); err != nil {
				logger.Fatal("invalid catalog product", zap.String("id", p.ID), zap.Error(err))
			}
		}
		persister = repo
		logger.Info("catalog loaded from postgres", zap.Int("products", len(products)))
	} else {
		for _, p := range defaultCatalog() {
			if err := store.SetProduct(p); err != nil {
				logger.Fatal("invalid catalog product", zap.String("id", p.ID), zap.Error(err))
			}
		}
		logger.Info("catalog seeded in memory")
	}

	// Cart view cache, optional.
	var viewCache cache.ViewCache
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis connection failed", zap.Error(err))
		}
		viewCache = cache.NewRedisCache(redisClient)
		logger.Info("redis ping succeeded", zap.String("addr", cfg.RedisAddr))
	}

	// Shipment notifier: Kafka when brokers are configured, log otherwise.
	var notifier shipping.Notifier
	if len(cfg.KafkaBrokers) > 0 {
		kafkaNotifier := shipping.NewKafkaNotifier(cfg.ShipmentTopic, cfg.KafkaBrokers...)
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
		logger.Info("shipment notifications via kafka",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.ShipmentTopic))
	} else {
		notifier = shipping.NewLogNotifier(logger)
	}

	acc, err := account.New(cfg.CustomerName, cfg.CustomerBalance)
	if err != nil {
		logger.Fatal("invalid customer account", zap.Error(err))
	}

	sess := session.New(session.Config{
		Store:     store,
		Account:   acc,
		Notifier:  notifier,
		RatePerKg: cfg.ShippingRatePerKg,
		Cache:     viewCache,
		Persister: persister,
		Logger:    logger,
	})
	logger.Info("session started",
		zap.String("session_id", sess.ID),
		zap.String("customer", acc.Name()),
		zap.Float64("balance", acc.Balance()))

	router := storehttp.NewRouter(sess, logger, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("storefront listening", zap.String("port", cfg.HTTPPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down storefront")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	logger.Info("storefront stopped")
}

// defaultCatalog is the demo product set used when no database provides one.
func defaultCatalog() []domain.Product {
	fresh := time.Now().Add(3 * 24 * time.Hour)
	stale := time.Now().Add(-24 * time.Hour)
	return []domain.Product{
		{ID: "p1", Name: "Cheese", Price: 100, Stock: 10, ExpiresAt: &fresh, Shippable: true, WeightGrams: 700},
		{ID: "p2", Name: "Biscuits", Price: 50, Stock: 15, ExpiresAt: &stale, Shippable: true, WeightGrams: 500},
		{ID: "p3", Name: "TV", Price: 10000, Stock: 5, Shippable: true, WeightGrams: 15000},
		{ID: "p4", Name: "Mobile", Price: 500, Stock: 20},
	}
}
