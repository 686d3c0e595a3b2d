package models

import "time"

// Severity - уровень серьезности экстренного события
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank возвращает порядковый номер уровня: low=0 < medium=1 < high=2 < critical=3.
// Для неизвестного значения возвращается -1.
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 0
	case SeverityMedium:
		return 1
	case SeverityHigh:
		return 2
	case SeverityCritical:
		return 3
	}
	return -1
}

// Valid сообщает, является ли значение одним из известных уровней
func (s Severity) Valid() bool {
	return s.Rank() >= 0
}

// Location - точка события и радиус его действия
type Location struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radiusMeters"`
}

// EmergencyEvent - экстренное событие, поступающее из внешнего потока сообщений.
// После отправки не изменяется.
type EmergencyEvent struct {
	ID             string   `json:"id"`
	Type           string   `json:"type"`
	Severity       Severity `json:"severity"`
	Title          string   `json:"title"`
	Message        string   `json:"message"`
	Location       Location `json:"location"`
	TrustWeight    float64  `json:"trustWeight"`
	Timestamp      int64    `json:"timestamp"` // epoch ms
	RequiresAction bool     `json:"requiresAction"`
}

// Time возвращает время события
func (e *EmergencyEvent) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// IsCritical - критические события обходят тихие часы и доставляются с высоким приоритетом
func (e *EmergencyEvent) IsCritical() bool {
	return e.Severity == SeverityCritical
}
