package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/delivery"
	"github.com/shenikar/geo_alert_dispatch/internal/filter"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
	"github.com/sirupsen/logrus"
)

// 2026-01-15 15:00 UTC
var testNow = time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC)

// clientFunc позволяет описать клиента доставки функцией
type clientFunc func(ctx context.Context, req delivery.Request) error

func (f clientFunc) Send(ctx context.Context, req delivery.Request) error {
	return f(ctx, req)
}

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах
	return logger
}

func newTestEvent(severity models.Severity) *models.EmergencyEvent {
	return &models.EmergencyEvent{
		ID:          "evt-1",
		Type:        "fire",
		Severity:    severity,
		Title:       "Пожар",
		Message:     "Пожар на Манхэттене",
		Location:    models.Location{Latitude: 40.7128, Longitude: -74.0060, RadiusMeters: 2000},
		TrustWeight: 0.9,
		Timestamp:   testNow.UnixMilli(),
	}
}

// newTestTarget возвращает получателя примерно в 500 м от события, допущенного для события high
func newTestTarget(id string) models.AlertTarget {
	return models.AlertTarget{
		UserID:    "user-" + id,
		DeviceID:  "device-" + id,
		PushToken: "token-" + id,
		Location: models.UserLocation{
			UserID:         "user-" + id,
			Latitude:       40.7128 + 0.0045,
			Longitude:      -74.0060,
			AccuracyMeters: 20,
			IsActive:       true,
		},
		Preferences: models.Preferences{
			EmergencyTypes:    []string{"fire", "flood"},
			MinSeverity:       models.SeverityMedium,
			MaxDistanceMeters: 1000,
			QuietHours: models.QuietHours{
				Enabled:  true,
				Start:    "22:00",
				End:      "07:00",
				Timezone: "UTC",
			},
		},
		LastActiveAt: testNow.Add(-time.Hour).UnixMilli(),
	}
}

func newTestTargets(n int) []models.AlertTarget {
	targets := make([]models.AlertTarget, n)
	for i := range targets {
		targets[i] = newTestTarget(fmt.Sprintf("%d", i))
	}
	return targets
}

func eligibleOutcomes(targets []models.AlertTarget) []filter.Outcome {
	out := make([]filter.Outcome, len(targets))
	for i, t := range targets {
		out[i] = filter.Outcome{Target: t, DistanceMeters: 500}
	}
	return out
}
