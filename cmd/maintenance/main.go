// Команда maintenance выполняет одно обслуживание хранилища и завершается.
// Предназначена для запуска внешним планировщиком (cron, Kubernetes CronJob).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/shenikar/geo_alert_dispatch/internal/config"
	"github.com/shenikar/geo_alert_dispatch/internal/geo"
	"github.com/shenikar/geo_alert_dispatch/internal/repository"
	"github.com/shenikar/geo_alert_dispatch/internal/service"
	"github.com/shenikar/geo_alert_dispatch/pkg/logger"
	"github.com/shenikar/geo_alert_dispatch/pkg/postgres"
	redisclient "github.com/shenikar/geo_alert_dispatch/pkg/redis"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	regions := geo.DefaultTable()
	if cfg.RegionTablePath != "" {
		if regions, err = geo.LoadTable(cfg.RegionTablePath); err != nil {
			log.Fatalf("Failed to load region table: %v", err)
		}
	}

	dbpool, err := postgres.NewPostgresDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer dbpool.Close()

	redisClient, err := redisclient.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	gateway := repository.NewGateway(
		repository.NewRedisTargetStore(redisClient),
		repository.NewPostgresAnalyticsStore(dbpool),
	)

	job := service.NewMaintenance(gateway, regions.Names(), log, cfg.AnalyticsRetention, cfg.TargetRetention, cfg.StoreTimeout)
	report := job.Run(ctx)

	if len(report.Errors) > 0 {
		log.WithField("errors", report.Errors).Error("Maintenance finished with errors")
		// defer не выполнится после os.Exit
		dbpool.Close()
		redisClient.Close()
		os.Exit(1)
	}
}
