package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

const defaultRetention = 30 * 24 * time.Hour

// Maintenance удаляет устаревшую аналитику и неактивных получателей.
// Запускается внешним планировщиком, собственного таймера нет.
type Maintenance struct {
	store              Gateway
	regions            []string
	logger             *logrus.Logger
	analyticsRetention time.Duration
	targetRetention    time.Duration
	storeTimeout       time.Duration
	now                func() time.Time
}

// NewMaintenance создает задачу обслуживания для перечисленных регионов
func NewMaintenance(store Gateway, regions []string, logger *logrus.Logger, analyticsRetention, targetRetention, storeTimeout time.Duration) *Maintenance {
	if analyticsRetention <= 0 {
		analyticsRetention = defaultRetention
	}
	if targetRetention <= 0 {
		targetRetention = defaultRetention
	}
	return &Maintenance{
		store:              store,
		regions:            regions,
		logger:             logger,
		analyticsRetention: analyticsRetention,
		targetRetention:    targetRetention,
		storeTimeout:       storeTimeout,
		now:                time.Now,
	}
}

// Run выполняет оба шага независимо друг от друга. Ошибки попадают в отчет и лог,
// но не прерывают работу.
func (m *Maintenance) Run(ctx context.Context) *models.MaintenanceReport {
	log := m.logger.WithFields(logrus.Fields{
		"service": "maintenance",
		"method":  "Run",
	})
	log.Info("Maintenance started")

	report := &models.MaintenanceReport{Errors: make([]string, 0)}
	now := m.now()

	deleted, errs := m.pruneAnalytics(ctx, now.Add(-m.analyticsRetention))
	report.AnalyticsDeleted = deleted
	report.Errors = append(report.Errors, errs...)

	for _, region := range m.regions {
		pruned, err := m.pruneTargets(ctx, region, now.Add(-m.targetRetention))
		if err != nil {
			log.WithError(err).WithField("region", region).Error("Failed to prune targets")
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		report.TargetsPruned += pruned
		report.RegionsProcessed++
	}

	log.WithFields(logrus.Fields{
		"analytics_deleted": report.AnalyticsDeleted,
		"targets_pruned":    report.TargetsPruned,
		"regions_processed": report.RegionsProcessed,
		"errors":            len(report.Errors),
	}).Info("Maintenance finished")
	return report
}

func (m *Maintenance) pruneAnalytics(ctx context.Context, cutoff time.Time) (int, []string) {
	log := m.logger.WithFields(logrus.Fields{
		"service": "maintenance",
		"method":  "pruneAnalytics",
	})

	listCtx, cancel := withTimeout(ctx, m.storeTimeout)
	records, err := m.store.ListAnalytics(listCtx, time.Time{})
	cancel()
	if err != nil {
		log.WithError(err).Error("Failed to list analytics records")
		return 0, []string{fmt.Sprintf("analytics: %v", err)}
	}

	cutoffMs := cutoff.UnixMilli()
	deleted := 0
	errs := make([]string, 0)
	for _, rec := range records {
		if rec.Timestamp >= cutoffMs {
			continue
		}
		delCtx, cancel := withTimeout(ctx, m.storeTimeout)
		err := m.store.DeleteAnalytics(delCtx, rec.Key())
		cancel()
		if err != nil {
			log.WithError(err).WithField("key", rec.Key()).Warn("Failed to delete analytics record")
			errs = append(errs, fmt.Sprintf("analytics %s: %v", rec.Key(), err))
			continue
		}
		deleted++
	}
	return deleted, errs
}

func (m *Maintenance) pruneTargets(ctx context.Context, region string, cutoff time.Time) (int, error) {
	loadCtx, cancel := withTimeout(ctx, m.storeTimeout)
	targets, err := m.store.LoadTargets(loadCtx, region)
	cancel()
	if err != nil {
		return 0, fmt.Errorf("region %s: load targets: %w", region, err)
	}

	kept := make([]models.AlertTarget, 0, len(targets))
	for _, t := range targets {
		if !t.LastActive().Before(cutoff) {
			kept = append(kept, t)
		}
	}
	pruned := len(targets) - len(kept)
	if pruned == 0 {
		return 0, nil
	}

	saveCtx, cancel := withTimeout(ctx, m.storeTimeout)
	defer cancel()
	if err := m.store.SaveTargets(saveCtx, region, kept); err != nil {
		return 0, fmt.Errorf("region %s: save targets: %w", region, err)
	}
	return pruned, nil
}
