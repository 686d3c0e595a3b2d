package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

const (
	webhookQueueKey = "webhook_events"
)

// DispatchEvent - данные вебхука о завершенной рассылке
type DispatchEvent struct {
	EventID         string          `json:"event_id"`
	EventType       string          `json:"event_type"`
	Severity        models.Severity `json:"severity"`
	Region          string          `json:"region"`
	Success         bool            `json:"success"`
	TargetsReached  int             `json:"targets_reached"`
	TargetsSkipped  int             `json:"targets_skipped"`
	TargetsFailed   int             `json:"targets_failed"`
	ErrorCount      int             `json:"error_count"`
	ExecutionTimeMs int64           `json:"execution_time_ms"`
	Timestamp       time.Time       `json:"timestamp"`
}

// NewDispatchEvent собирает событие вебхука из итогов рассылки
func NewDispatchEvent(event *models.EmergencyEvent, result *models.DispatchResult, at time.Time) DispatchEvent {
	return DispatchEvent{
		EventID:         event.ID,
		EventType:       event.Type,
		Severity:        event.Severity,
		Region:          result.Region,
		Success:         result.Success,
		TargetsReached:  result.TargetsReached,
		TargetsSkipped:  result.TargetsSkipped,
		TargetsFailed:   result.TargetsFailed,
		ErrorCount:      len(result.Errors),
		ExecutionTimeMs: result.ExecutionTimeMs,
		Timestamp:       at,
	}
}

// WebhookPublisher - интерфейс для публикации вебхуков
type WebhookPublisher interface {
	Publish(ctx context.Context, event DispatchEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher, использующая Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish публикует событие вебхука в очередь Redis
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event DispatchEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook event: %w", err)
	}

	// LPUSH в левую часть списка, воркер забирает справа через BRPOP
	if err := p.redisClient.LPush(ctx, webhookQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish webhook event to Redis: %w", err)
	}
	return nil
}
