package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

// PostgresAnalyticsStore хранит записи аналитики рассылок в PostgreSQL
type PostgresAnalyticsStore struct {
	db *pgxpool.Pool
}

// NewPostgresAnalyticsStore создает PostgresAnalyticsStore
func NewPostgresAnalyticsStore(db *pgxpool.Pool) *PostgresAnalyticsStore {
	return &PostgresAnalyticsStore{
		db: db,
	}
}

// PutAnalytics сохраняет запись по ключу (eventId, timestamp). Повторная запись с тем же ключом перезаписывает прежнюю.
func (r *PostgresAnalyticsStore) PutAnalytics(ctx context.Context, eventID string, timestamp int64, record models.AnalyticsRecord) error {
	query := `
		INSERT INTO dispatch_analytics (
			key, id, event_id, event_type, severity, run_at, region,
			targets_reached, targets_skipped, error_count, execution_time_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (key) DO UPDATE SET
			id = EXCLUDED.id,
			event_type = EXCLUDED.event_type,
			severity = EXCLUDED.severity,
			region = EXCLUDED.region,
			targets_reached = EXCLUDED.targets_reached,
			targets_skipped = EXCLUDED.targets_skipped,
			error_count = EXCLUDED.error_count,
			execution_time_ms = EXCLUDED.execution_time_ms;
	`
	_, err := r.db.Exec(ctx, query,
		models.AnalyticsKey(eventID, timestamp),
		record.ID,
		eventID,
		record.EventType,
		string(record.Severity),
		timestamp,
		record.Region,
		record.TargetsReached,
		record.TargetsSkipped,
		record.ErrorCount,
		record.ExecutionTimeMs,
	)
	if err != nil {
		return fmt.Errorf("failed to put analytics record: %w", err)
	}
	return nil
}

// ListAnalytics возвращает записи, начиная с момента since, в порядке времени запуска
func (r *PostgresAnalyticsStore) ListAnalytics(ctx context.Context, since time.Time) ([]models.AnalyticsRecord, error) {
	query := `
		SELECT
			id,
			event_id,
			event_type,
			severity,
			run_at,
			region,
			targets_reached,
			targets_skipped,
			error_count,
			execution_time_ms
		FROM dispatch_analytics
		WHERE run_at >= $1
		ORDER BY run_at ASC;
	`
	rows, err := r.db.Query(ctx, query, since.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to list analytics records: %w", err)
	}
	defer rows.Close()

	records := make([]models.AnalyticsRecord, 0)
	for rows.Next() {
		var rec models.AnalyticsRecord
		var severity string
		err := rows.Scan(
			&rec.ID,
			&rec.EventID,
			&rec.EventType,
			&severity,
			&rec.Timestamp,
			&rec.Region,
			&rec.TargetsReached,
			&rec.TargetsSkipped,
			&rec.ErrorCount,
			&rec.ExecutionTimeMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics row: %w", err)
		}
		rec.Severity = models.Severity(severity)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error analytics iteration: %w", err)
	}
	return records, nil
}

// DeleteAnalytics удаляет запись по ключу. Отсутствие записи не считается ошибкой.
func (r *PostgresAnalyticsStore) DeleteAnalytics(ctx context.Context, key string) error {
	query := `DELETE FROM dispatch_analytics WHERE key = $1;`
	if _, err := r.db.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete analytics record %s: %w", key, err)
	}
	return nil
}
