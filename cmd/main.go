package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/shenikar/geo_alert_dispatch/internal/config"
	"github.com/shenikar/geo_alert_dispatch/internal/delivery"
	"github.com/shenikar/geo_alert_dispatch/internal/geo"
	v1 "github.com/shenikar/geo_alert_dispatch/internal/handler/http/v1"
	"github.com/shenikar/geo_alert_dispatch/internal/repository"
	"github.com/shenikar/geo_alert_dispatch/internal/service"
	"github.com/shenikar/geo_alert_dispatch/internal/webhook"
	"github.com/shenikar/geo_alert_dispatch/pkg/logger"
	"github.com/shenikar/geo_alert_dispatch/pkg/metrics"
	"github.com/shenikar/geo_alert_dispatch/pkg/postgres"
	redisclient "github.com/shenikar/geo_alert_dispatch/pkg/redis"
	"github.com/sirupsen/logrus"

	_ "github.com/shenikar/geo_alert_dispatch/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Geo Alert Dispatch API
// @version 1.0
// @description Dispatches emergency alerts to devices in the affected edge region.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func runMigrations(cfg *config.Config, log *logrus.Logger) error {
	log.Info("Running database migrations...")

	migrationURL := cfg.DatabaseURL
	if !strings.HasPrefix(migrationURL, "pgx5://") {
		migrationURL = strings.Replace(migrationURL, "postgres://", "pgx5://", 1)
	}

	m, err := migrate.New(
		"file://migrations",
		migrationURL,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Info("Database migrations applied successfully")
	return nil
}

// loadRegions возвращает таблицу регионов из файла или встроенную по умолчанию
func loadRegions(cfg *config.Config, log *logrus.Logger) (*geo.Table, error) {
	if cfg.RegionTablePath == "" {
		log.Info("Using built-in region table")
		return geo.DefaultTable(), nil
	}
	table, err := geo.LoadTable(cfg.RegionTablePath)
	if err != nil {
		return nil, err
	}
	log.WithField("path", cfg.RegionTablePath).Info("Region table loaded")
	return table, nil
}

func main() {
	// Загрузка конфигурации
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация логгера
	log := logger.New(cfg.LogLevel)

	// Контекст для graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	regions, err := loadRegions(cfg, log)
	if err != nil {
		log.Fatalf("Failed to load region table: %v", err)
	}

	// Запуск миграций
	if err := runMigrations(cfg, log); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	// Подключение к PostgreSQL
	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()
	log.Info("Successfully connected to PostgreSQL")

	// Инициализация Redis клиента
	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Info("Successfully connected to Redis")

	// Инициализация издателя вебхуков
	webhookPublisher := webhook.NewRedisWebhookPublisher(redisClient)

	// Инициализация и запуск воркера вебхуков
	webhookWorker := webhook.NewWebhookWorker(redisClient, log, cfg)
	webhookWorker.Start(ctx)

	// Инициализация хранилищ
	gateway := repository.NewGateway(
		repository.NewRedisTargetStore(redisClient),
		repository.NewPostgresAnalyticsStore(dbpool),
	)

	// Клиент push-провайдера
	pushClient := delivery.NewHTTPClient(cfg.PushProviderURL, cfg.PushProviderKey, cfg.DeliveryTimeout)
	if cfg.PushProviderURL == "" {
		log.Warn("PUSH_PROVIDER_URL is not configured, every delivery attempt will fail")
	}

	dispatchMetrics := metrics.NewDispatchMetrics()

	// Инициализация сервисов
	alertService := service.NewAlertService(gateway, pushClient, webhookPublisher, regions, log, cfg, dispatchMetrics)

	// Ограничитель частоты входящих событий
	limiterStore, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{
		Prefix: "alert_dispatch_limiter",
	})
	if err != nil {
		log.Fatalf("Failed to create rate limiter store: %v", err)
	}
	dispatchGate, err := v1.RateLimitMiddleware(limiterStore, cfg.RateLimit, log)
	if err != nil {
		log.Fatalf("Failed to create rate limiter: %v", err)
	}

	// Инициализация хэндлеров
	handler := v1.NewHandler(alertService, log, cfg)

	// Настройка Gin роутера
	router := gin.Default()
	api := router.Group("/")
	handler.RegisterRoutes(api, dispatchGate, dispatchMetrics.Handler())

	// Добавление маршрута для Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Запуск HTTP-сервера
	serverAddr := fmt.Sprintf(":%s", cfg.HTTPPort)

	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	// Запуск сервера в горутине
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting HTTP server: %v", err)
		}
	}()
	log.WithFields(logrus.Fields{
		"port":    cfg.HTTPPort,
		"region":  cfg.EdgeRegion,
		"version": cfg.AppVersion,
	}).Info("HTTP server started")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Received shutdown signal, shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Дожидаемся запущенного обслуживания
	handler.Wait()
	log.Info("Server gracefully stopped")
}
