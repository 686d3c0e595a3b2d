package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// DefaultMetricsRange - окно агрегации, если клиент его не указал
const DefaultMetricsRange = "24h"

// ErrInvalidRange возвращается для неизвестного окна агрегации
var ErrInvalidRange = errors.New("invalid metrics range")

var metricsRanges = map[string]time.Duration{
	"1h":  time.Hour,
	"24h": 24 * time.Hour,
	"7d":  7 * 24 * time.Hour,
}

// ParseRange переводит окно агрегации в длительность. Пустая строка означает окно по умолчанию.
func ParseRange(rng string) (string, time.Duration, error) {
	if rng == "" {
		rng = DefaultMetricsRange
	}
	d, ok := metricsRanges[rng]
	if !ok {
		return "", 0, fmt.Errorf("%w: %q (expected 1h, 24h or 7d)", ErrInvalidRange, rng)
	}
	return rng, d, nil
}

// AnalyticsRecorder сохраняет итоги рассылок и строит по ним агрегаты
type AnalyticsRecorder struct {
	store        AnalyticsStore
	logger       *logrus.Logger
	storeTimeout time.Duration
	now          func() time.Time
}

// NewAnalyticsRecorder создает AnalyticsRecorder
func NewAnalyticsRecorder(store AnalyticsStore, logger *logrus.Logger, storeTimeout time.Duration) *AnalyticsRecorder {
	return &AnalyticsRecorder{
		store:        store,
		logger:       logger,
		storeTimeout: storeTimeout,
		now:          time.Now,
	}
}

// NewAnalyticsRecord собирает запись аналитики по итогам рассылки
func NewAnalyticsRecord(event *models.EmergencyEvent, result *models.DispatchResult, runAt time.Time) models.AnalyticsRecord {
	return models.AnalyticsRecord{
		ID:              uuid.NewString(),
		EventID:         event.ID,
		EventType:       event.Type,
		Severity:        event.Severity,
		Timestamp:       runAt.UnixMilli(),
		Region:          result.Region,
		TargetsReached:  result.TargetsReached,
		TargetsSkipped:  result.TargetsSkipped,
		ErrorCount:      len(result.Errors),
		ExecutionTimeMs: result.ExecutionTimeMs,
	}
}

// Record сохраняет одну запись по ключу (eventId, runAt)
func (r *AnalyticsRecorder) Record(ctx context.Context, event *models.EmergencyEvent, result *models.DispatchResult, runAt time.Time) error {
	rec := NewAnalyticsRecord(event, result, runAt)

	ctx, cancel := withTimeout(ctx, r.storeTimeout)
	defer cancel()

	if err := r.store.PutAnalytics(ctx, rec.EventID, rec.Timestamp, rec); err != nil {
		return fmt.Errorf("service: could not record analytics: %w", err)
	}
	return nil
}

// Summary возвращает агрегат за окно rng, отсчитанное от текущего момента
func (r *AnalyticsRecorder) Summary(ctx context.Context, rng string) (*models.MetricsSummary, error) {
	name, window, err := ParseRange(rng)
	if err != nil {
		return nil, err
	}

	log := r.logger.WithFields(logrus.Fields{
		"service": "analytics",
		"method":  "Summary",
		"range":   name,
	})

	ctx, cancel := withTimeout(ctx, r.storeTimeout)
	defer cancel()

	records, err := r.store.ListAnalytics(ctx, r.now().Add(-window))
	if err != nil {
		log.WithError(err).Error("Failed to list analytics records")
		return nil, fmt.Errorf("service: could not list analytics: %w", err)
	}

	summary := Aggregate(records)
	summary.Range = name
	log.WithField("dispatches", summary.TotalDispatches).Debug("Analytics aggregated")
	return &summary, nil
}

// Aggregate считает сводные показатели по набору записей
func Aggregate(records []models.AnalyticsRecord) models.MetricsSummary {
	summary := models.MetricsSummary{
		TotalDispatches:    len(records),
		RegionDistribution: make(map[string]int),
	}
	if len(records) == 0 {
		return summary
	}

	var execTotal int64
	var skipped int
	for _, rec := range records {
		execTotal += rec.ExecutionTimeMs
		summary.TotalTargetsReached += rec.TargetsReached
		skipped += rec.TargetsSkipped
		summary.RegionDistribution[rec.Region]++
	}

	summary.AvgExecutionTimeMs = float64(execTotal) / float64(len(records))
	if total := summary.TotalTargetsReached + skipped; total > 0 {
		summary.SuccessRate = float64(summary.TotalTargetsReached) / float64(total)
	}
	return summary
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
