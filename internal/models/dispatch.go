package models

import "fmt"

// DispatchResult - итог одной рассылки по событию. После создания не изменяется.
//
// TargetsReached + TargetsSkipped всегда равно числу загруженных для региона получателей:
// неудачные попытки доставки учитываются в TargetsSkipped и дополнительно в TargetsFailed.
type DispatchResult struct {
	Success         bool     `json:"success"`
	TargetsReached  int      `json:"targetsReached"`
	TargetsSkipped  int      `json:"targetsSkipped"`
	TargetsFailed   int      `json:"targetsFailed"`
	Errors          []string `json:"errors"`
	ExecutionTimeMs int64    `json:"executionTimeMs"`
	Region          string   `json:"region"`
}

// AnalyticsRecord - запись аналитики, сохраняемая после каждой рассылки
type AnalyticsRecord struct {
	ID              string   `json:"id"`
	EventID         string   `json:"eventId"`
	EventType       string   `json:"eventType"`
	Severity        Severity `json:"severity"`
	Timestamp       int64    `json:"timestamp"` // epoch ms, момент запуска рассылки
	Region          string   `json:"region"`
	TargetsReached  int      `json:"targetsReached"`
	TargetsSkipped  int      `json:"targetsSkipped"`
	ErrorCount      int      `json:"errorCount"`
	ExecutionTimeMs int64    `json:"executionTimeMs"`
}

// AnalyticsKey формирует ключ записи по паре (eventId, runTimestamp)
func AnalyticsKey(eventID string, timestamp int64) string {
	return fmt.Sprintf("analytics:%s:%d", eventID, timestamp)
}

// Key возвращает ключ записи
func (r *AnalyticsRecord) Key() string {
	return AnalyticsKey(r.EventID, r.Timestamp)
}

// MetricsSummary - агрегат аналитики за временное окно
type MetricsSummary struct {
	Range               string         `json:"range"`
	TotalDispatches     int            `json:"totalDispatches"`
	AvgExecutionTimeMs  float64        `json:"avgExecutionTimeMs"`
	TotalTargetsReached int            `json:"totalTargetsReached"`
	SuccessRate         float64        `json:"successRate"`
	RegionDistribution  map[string]int `json:"regionDistribution"`
}

// MaintenanceReport - результат одного запуска обслуживания
type MaintenanceReport struct {
	AnalyticsDeleted int      `json:"analyticsDeleted"`
	TargetsPruned    int      `json:"targetsPruned"`
	RegionsProcessed int      `json:"regionsProcessed"`
	Errors           []string `json:"errors,omitempty"`
}
