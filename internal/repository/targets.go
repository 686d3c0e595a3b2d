package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

// TargetsKey возвращает ключ списка получателей региона
func TargetsKey(region string) string {
	return fmt.Sprintf("targets:%s", region)
}

// RedisTargetStore хранит списки получателей в Redis: один JSON-массив на регион
type RedisTargetStore struct {
	redisClient *redis.Client
}

// NewRedisTargetStore создает RedisTargetStore
func NewRedisTargetStore(redisClient *redis.Client) *RedisTargetStore {
	return &RedisTargetStore{
		redisClient: redisClient,
	}
}

// LoadTargets читает список получателей региона. Отсутствующий ключ - пустой список.
func (r *RedisTargetStore) LoadTargets(ctx context.Context, region string) ([]models.AlertTarget, error) {
	val, err := r.redisClient.Get(ctx, TargetsKey(region)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.AlertTarget{}, nil
		}
		return nil, fmt.Errorf("failed to load targets for region %s: %w", region, err)
	}

	targets := make([]models.AlertTarget, 0)
	if err := json.Unmarshal(val, &targets); err != nil {
		return nil, fmt.Errorf("failed to unmarshal targets for region %s: %w", region, err)
	}
	return targets, nil
}

// SaveTargets целиком перезаписывает список получателей региона
func (r *RedisTargetStore) SaveTargets(ctx context.Context, region string, targets []models.AlertTarget) error {
	if targets == nil {
		targets = []models.AlertTarget{}
	}
	val, err := json.Marshal(targets)
	if err != nil {
		return fmt.Errorf("failed to marshal targets for region %s: %w", region, err)
	}
	if err := r.redisClient.Set(ctx, TargetsKey(region), val, 0).Err(); err != nil {
		return fmt.Errorf("failed to save targets for region %s: %w", region, err)
	}
	return nil
}
