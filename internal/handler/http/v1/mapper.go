package v1

import "github.com/shenikar/geo_alert_dispatch/internal/models"

// EventRequestToModel преобразует DTO события в доменную модель.
// Вызывается только после валидации, поэтому Location не nil.
func EventRequestToModel(dto EmergencyEventRequest) *models.EmergencyEvent {
	return &models.EmergencyEvent{
		ID:       dto.ID,
		Type:     dto.Type,
		Severity: models.Severity(dto.Severity),
		Title:    dto.Title,
		Message:  dto.Message,
		Location: models.Location{
			Latitude:     *dto.Location.Latitude,
			Longitude:    *dto.Location.Longitude,
			RadiusMeters: dto.Location.RadiusMeters,
		},
		TrustWeight:    dto.TrustWeight,
		Timestamp:      dto.Timestamp,
		RequiresAction: dto.RequiresAction,
	}
}

// ModelToDispatchResponse преобразует итог рассылки в DTO для ответа
func ModelToDispatchResponse(model *models.DispatchResult) *DispatchResponse {
	errs := model.Errors
	if errs == nil {
		errs = []string{}
	}
	return &DispatchResponse{
		Success:         model.Success,
		TargetsReached:  model.TargetsReached,
		TargetsSkipped:  model.TargetsSkipped,
		TargetsFailed:   model.TargetsFailed,
		Errors:          errs,
		ExecutionTimeMs: model.ExecutionTimeMs,
		Region:          model.Region,
	}
}

// ModelToMetricsResponse преобразует агрегат аналитики в DTO для ответа
func ModelToMetricsResponse(model *models.MetricsSummary) *MetricsResponse {
	return &MetricsResponse{
		Range:               model.Range,
		TotalDispatches:     model.TotalDispatches,
		AvgExecutionTimeMs:  model.AvgExecutionTimeMs,
		TotalTargetsReached: model.TotalTargetsReached,
		SuccessRate:         model.SuccessRate,
		RegionDistribution:  model.RegionDistribution,
	}
}
