package repository

import (
	"context"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

const analyticsKeyPrefix = "analytics:"

// MemoryStore - хранилище в памяти процесса для тестов и локального запуска.
// Хранит копии списков, поэтому вызывающий код не может изменить сохраненное состояние.
type MemoryStore struct {
	cache *gocache.Cache
}

// NewMemoryStore создает пустое хранилище без срока жизни записей
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// LoadTargets возвращает копию списка получателей региона
func (s *MemoryStore) LoadTargets(ctx context.Context, region string) ([]models.AlertTarget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, found := s.cache.Get(TargetsKey(region))
	if !found {
		return []models.AlertTarget{}, nil
	}
	return cloneTargets(value.([]models.AlertTarget)), nil
}

// SaveTargets сохраняет копию списка получателей региона
func (s *MemoryStore) SaveTargets(ctx context.Context, region string, targets []models.AlertTarget) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.Set(TargetsKey(region), cloneTargets(targets), gocache.NoExpiration)
	return nil
}

// PutAnalytics сохраняет запись по ключу (eventId, timestamp)
func (s *MemoryStore) PutAnalytics(ctx context.Context, eventID string, timestamp int64, record models.AnalyticsRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	record.EventID = eventID
	record.Timestamp = timestamp
	s.cache.Set(models.AnalyticsKey(eventID, timestamp), record, gocache.NoExpiration)
	return nil
}

// ListAnalytics возвращает записи с Timestamp не раньше since, по возрастанию времени
func (s *MemoryStore) ListAnalytics(ctx context.Context, since time.Time) ([]models.AnalyticsRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sinceMs := since.UnixMilli()
	records := make([]models.AnalyticsRecord, 0)
	for key, item := range s.cache.Items() {
		if !strings.HasPrefix(key, analyticsKeyPrefix) {
			continue
		}
		rec := item.Object.(models.AnalyticsRecord)
		if rec.Timestamp >= sinceMs {
			records = append(records, rec)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].Timestamp != records[j].Timestamp {
			return records[i].Timestamp < records[j].Timestamp
		}
		return records[i].EventID < records[j].EventID
	})
	return records, nil
}

// DeleteAnalytics удаляет запись по ключу
func (s *MemoryStore) DeleteAnalytics(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.cache.Delete(key)
	return nil
}

func cloneTargets(targets []models.AlertTarget) []models.AlertTarget {
	out := make([]models.AlertTarget, len(targets))
	copy(out, targets)
	for i := range out {
		out[i].Preferences.EmergencyTypes = append([]string(nil), targets[i].Preferences.EmergencyTypes...)
	}
	return out
}
