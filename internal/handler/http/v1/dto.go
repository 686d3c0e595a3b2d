package v1

// LocationRequest DTO точки события
// @Description DTO точки события
type LocationRequest struct {
	Latitude     *float64 `json:"latitude" validate:"required,latitude"`
	Longitude    *float64 `json:"longitude" validate:"required,longitude"`
	RadiusMeters float64  `json:"radiusMeters" validate:"gte=0"`
}

// EmergencyEventRequest DTO для рассылки экстренного события
// @Description DTO для рассылки экстренного события
type EmergencyEventRequest struct {
	ID             string           `json:"id" validate:"required,max=255"`
	Type           string           `json:"type" validate:"max=64"`
	Severity       string           `json:"severity" validate:"required,oneof=low medium high critical"`
	Title          string           `json:"title"`
	Message        string           `json:"message"`
	Location       *LocationRequest `json:"location" validate:"required"`
	TrustWeight    float64          `json:"trustWeight" validate:"gte=0,lte=1"`
	Timestamp      int64            `json:"timestamp" validate:"gte=0"`
	RequiresAction bool             `json:"requiresAction"`
}

// DispatchResponse DTO для ответа с итогами рассылки
// @Description DTO для ответа с итогами рассылки
type DispatchResponse struct {
	Success         bool     `json:"success"`
	TargetsReached  int      `json:"targetsReached"`
	TargetsSkipped  int      `json:"targetsSkipped"`
	TargetsFailed   int      `json:"targetsFailed"`
	Errors          []string `json:"errors"`
	ExecutionTimeMs int64    `json:"executionTimeMs"`
	Region          string   `json:"region"`
}

// MetricsResponse DTO для ответа с агрегатами аналитики
// @Description DTO для ответа с агрегатами аналитики
type MetricsResponse struct {
	Range               string         `json:"range"`
	TotalDispatches     int            `json:"totalDispatches"`
	AvgExecutionTimeMs  float64        `json:"avgExecutionTimeMs"`
	TotalTargetsReached int            `json:"totalTargetsReached"`
	SuccessRate         float64        `json:"successRate"`
	RegionDistribution  map[string]int `json:"regionDistribution"`
}

// HealthResponse DTO для ответа о состоянии сервиса
// @Description DTO для ответа о состоянии сервиса
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp int64  `json:"timestamp"`
	Region    string `json:"region"`
	Version   string `json:"version"`
}
