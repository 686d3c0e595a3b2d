package repository

// Gateway объединяет хранилище получателей (Redis) и хранилище аналитики (PostgreSQL)
type Gateway struct {
	*RedisTargetStore
	*PostgresAnalyticsStore
}

// NewGateway создает Gateway
func NewGateway(targets *RedisTargetStore, analytics *PostgresAnalyticsStore) *Gateway {
	return &Gateway{
		RedisTargetStore:       targets,
		PostgresAnalyticsStore: analytics,
	}
}
