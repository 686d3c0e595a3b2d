package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/config"
	"github.com/shenikar/geo_alert_dispatch/internal/delivery"
	"github.com/shenikar/geo_alert_dispatch/internal/filter"
	"github.com/shenikar/geo_alert_dispatch/internal/geo"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
	"github.com/shenikar/geo_alert_dispatch/internal/webhook"
	"github.com/shenikar/geo_alert_dispatch/pkg/metrics"
	"github.com/sirupsen/logrus"
)

var (
	// ErrInvalidEvent - событие не прошло проверку и отклонено до обращения к хранилищу
	ErrInvalidEvent = errors.New("invalid emergency event")
	// ErrNoTargets - в регионе нет зарегистрированных получателей.
	// Возвращается вместе с результатом и не считается сбоем.
	ErrNoTargets = errors.New("no targets registered for region")
)

// AlertService определяет контракт бизнес-логики рассылки оповещений
type AlertService interface {
	Dispatch(ctx context.Context, event *models.EmergencyEvent) (*models.DispatchResult, error)
	GetMetrics(ctx context.Context, rng string) (*models.MetricsSummary, error)
	RunMaintenance(ctx context.Context) *models.MaintenanceReport
}

type alertService struct {
	store        Gateway
	regions      *geo.Table
	dispatcher   *BatchDispatcher
	analytics    *AnalyticsRecorder
	maintenance  *Maintenance
	publisher    webhook.WebhookPublisher
	metrics      *metrics.DispatchMetrics
	logger       *logrus.Logger
	storeTimeout time.Duration
	now          func() time.Time
}

// NewAlertService собирает сервис рассылки из хранилища, клиента доставки и таблицы регионов
func NewAlertService(
	store Gateway,
	client delivery.Client,
	publisher webhook.WebhookPublisher,
	regions *geo.Table,
	logger *logrus.Logger,
	cfg *config.Config,
	m *metrics.DispatchMetrics,
) AlertService {
	if regions == nil {
		regions = geo.DefaultTable()
	}
	return &alertService{
		store:        store,
		regions:      regions,
		dispatcher:   NewBatchDispatcher(client, logger, m, cfg.BatchSize, cfg.MaxConcurrentBatches, cfg.DeliveryTimeout),
		analytics:    NewAnalyticsRecorder(store, logger, cfg.StoreTimeout),
		maintenance:  NewMaintenance(store, regions.Names(), logger, cfg.AnalyticsRetention, cfg.TargetRetention, cfg.StoreTimeout),
		publisher:    publisher,
		metrics:      m,
		logger:       logger,
		storeTimeout: cfg.StoreTimeout,
		now:          time.Now,
	}
}

// ValidateEvent проверяет обязательные поля события
func ValidateEvent(event *models.EmergencyEvent) error {
	if event == nil {
		return fmt.Errorf("%w: event is required", ErrInvalidEvent)
	}
	if event.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidEvent)
	}
	if !event.Severity.Valid() {
		return fmt.Errorf("%w: unknown severity %q", ErrInvalidEvent, event.Severity)
	}
	loc := event.Location
	if math.IsNaN(loc.Latitude) || loc.Latitude < -90 || loc.Latitude > 90 {
		return fmt.Errorf("%w: latitude out of range", ErrInvalidEvent)
	}
	if math.IsNaN(loc.Longitude) || loc.Longitude < -180 || loc.Longitude > 180 {
		return fmt.Errorf("%w: longitude out of range", ErrInvalidEvent)
	}
	return nil
}

// Dispatch рассылает событие получателям его региона.
//
// Ошибки отдельных доставок не возвращаются как error: они попадают в DispatchResult.Errors.
// Для пустого региона возвращается результат вместе с ErrNoTargets.
func (s *alertService) Dispatch(ctx context.Context, event *models.EmergencyEvent) (*models.DispatchResult, error) {
	start := s.now()
	if err := ValidateEvent(event); err != nil {
		return nil, err
	}
	if event.Timestamp == 0 {
		event.Timestamp = start.UnixMilli()
	}

	region := s.regions.RegionFor(event.Location.Latitude, event.Location.Longitude)
	log := s.logger.WithFields(logrus.Fields{
		"service":  "alert",
		"method":   "Dispatch",
		"event_id": event.ID,
		"severity": event.Severity,
		"region":   region,
	})
	log.Info("Dispatching emergency event")

	loadCtx, cancel := withTimeout(ctx, s.storeTimeout)
	targets, err := s.store.LoadTargets(loadCtx, region)
	cancel()
	if err != nil {
		log.WithError(err).Error("Failed to load targets")
		return nil, fmt.Errorf("service: could not load targets for region %s: %w", region, err)
	}

	if len(targets) == 0 {
		log.Warn("No targets registered for region")
		return &models.DispatchResult{
			Success:         false,
			Errors:          make([]string, 0),
			ExecutionTimeMs: s.now().Sub(start).Milliseconds(),
			Region:          region,
		}, ErrNoTargets
	}

	partition := filter.Partition(targets, event, start)
	for reason, count := range partition.SkipCounts() {
		s.metrics.ObserveSkip(string(reason), count)
	}

	batch := s.dispatcher.Dispatch(ctx, event, partition.Eligible)

	result := &models.DispatchResult{
		Success:         batch.Reached > 0,
		TargetsReached:  batch.Reached,
		TargetsSkipped:  len(partition.Skipped) + batch.Failed,
		TargetsFailed:   batch.Failed,
		Errors:          batch.Errors,
		ExecutionTimeMs: s.now().Sub(start).Milliseconds(),
		Region:          region,
	}

	// итог фиксируется даже если клиент уже отключился
	detached := context.WithoutCancel(ctx)
	if err := s.analytics.Record(detached, event, result, start); err != nil {
		log.WithError(err).Error("Failed to record dispatch analytics")
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(detached, webhook.NewDispatchEvent(event, result, s.now())); err != nil {
			log.WithError(err).Error("Failed to publish dispatch webhook")
		}
	}
	s.metrics.ObserveDispatch(region, result.TargetsReached, result.TargetsSkipped, result.TargetsFailed)

	log.WithFields(logrus.Fields{
		"loaded":            len(targets),
		"reached":           result.TargetsReached,
		"skipped":           result.TargetsSkipped,
		"failed":            result.TargetsFailed,
		"execution_time_ms": result.ExecutionTimeMs,
	}).Info("Dispatch completed")
	return result, nil
}

// GetMetrics возвращает агрегат аналитики за окно rng
func (s *alertService) GetMetrics(ctx context.Context, rng string) (*models.MetricsSummary, error) {
	return s.analytics.Summary(ctx, rng)
}

// RunMaintenance выполняет обслуживание хранилища и возвращает отчет
func (s *alertService) RunMaintenance(ctx context.Context) *models.MaintenanceReport {
	return s.maintenance.Run(ctx)
}
