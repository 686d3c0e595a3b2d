package service

import (
	"context"
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

// TargetStore определяет контракт для работы со списками получателей по регионам.
// Пустой регион - это пустой список, а не ошибка.
type TargetStore interface {
	LoadTargets(ctx context.Context, region string) ([]models.AlertTarget, error)
	SaveTargets(ctx context.Context, region string, targets []models.AlertTarget) error
}

// AnalyticsStore определяет контракт для хранения записей аналитики рассылок
type AnalyticsStore interface {
	PutAnalytics(ctx context.Context, eventID string, timestamp int64, record models.AnalyticsRecord) error
	// ListAnalytics возвращает записи с Timestamp не раньше since
	ListAnalytics(ctx context.Context, since time.Time) ([]models.AnalyticsRecord, error)
	DeleteAnalytics(ctx context.Context, key string) error
}

// Gateway - единая точка доступа к внешнему хранилищу
type Gateway interface {
	TargetStore
	AnalyticsStore
}
