// Package filter решает для каждого получателя, отправлять ли ему оповещение о событии.
//
// Предикаты проверяются в фиксированном порядке и останавливаются на первом
// сработавшем, поэтому у каждого пропущенного получателя ровно одна причина.
package filter

import (
	"time"

	"github.com/shenikar/geo_alert_dispatch/internal/geo"
	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

// SkipReason - код причины, по которой получатель исключен из рассылки
type SkipReason string

const (
	ReasonInactiveUser       SkipReason = "inactive_user"
	ReasonTypePreference     SkipReason = "type_preference"
	ReasonSeverityPreference SkipReason = "severity_preference"
	ReasonQuietHours         SkipReason = "quiet_hours"
	ReasonDistance           SkipReason = "distance"
	ReasonPoorLocation       SkipReason = "poor_location"
)

// Reasons перечисляет причины в порядке проверки
var Reasons = []SkipReason{
	ReasonInactiveUser,
	ReasonTypePreference,
	ReasonSeverityPreference,
	ReasonQuietHours,
	ReasonDistance,
	ReasonPoorLocation,
}

const (
	// InactiveAfter - после этого срока без активности устройство не получает оповещения
	InactiveAfter = 7 * 24 * time.Hour
	// MaxAccuracyMeters - координаты с худшей точностью не годятся для оповещений по близости
	MaxAccuracyMeters = 1000.0
)

// Outcome - результат проверки одного получателя: либо допущен (Reason пустой),
// либо пропущен с единственной причиной.
type Outcome struct {
	Target         models.AlertTarget
	Reason         SkipReason
	DistanceMeters float64
}

// Eligible сообщает, допущен ли получатель к рассылке
func (o Outcome) Eligible() bool {
	return o.Reason == ""
}

// Result - два непересекающихся списка: допущенные и пропущенные получатели
type Result struct {
	Eligible []Outcome
	Skipped  []Outcome
}

// SkipCounts возвращает количество пропущенных по каждой причине
func (r Result) SkipCounts() map[SkipReason]int {
	counts := make(map[SkipReason]int, len(Reasons))
	for _, o := range r.Skipped {
		counts[o.Reason]++
	}
	return counts
}

// Evaluate проверяет одного получателя. Чистая функция от (target, event, now).
func Evaluate(target models.AlertTarget, event *models.EmergencyEvent, now time.Time) Outcome {
	return evaluate(target, event, now, nil)
}

func evaluate(target models.AlertTarget, event *models.EmergencyEvent, now time.Time, z zones) Outcome {
	out := Outcome{Target: target}

	if now.Sub(target.LastActive()) > InactiveAfter {
		out.Reason = ReasonInactiveUser
		return out
	}

	if !target.Preferences.AcceptsType(event.Type) {
		out.Reason = ReasonTypePreference
		return out
	}

	if event.Severity.Rank() < target.Preferences.MinSeverity.Rank() {
		out.Reason = ReasonSeverityPreference
		return out
	}

	if !event.IsCritical() && inQuietHours(target.Preferences.QuietHours, event.Time(), z) {
		out.Reason = ReasonQuietHours
		return out
	}

	out.DistanceMeters = geo.DistanceMeters(
		event.Location.Latitude, event.Location.Longitude,
		target.Location.Latitude, target.Location.Longitude,
	)
	if out.DistanceMeters > target.Preferences.MaxDistanceMeters {
		out.Reason = ReasonDistance
		return out
	}

	if target.Location.AccuracyMeters > MaxAccuracyMeters {
		out.Reason = ReasonPoorLocation
		return out
	}

	return out
}

// Partition разбивает получателей на допущенных и пропущенных, сохраняя исходный порядок
func Partition(targets []models.AlertTarget, event *models.EmergencyEvent, now time.Time) Result {
	res := Result{
		Eligible: make([]Outcome, 0, len(targets)),
		Skipped:  make([]Outcome, 0),
	}
	z := make(zones)
	for _, t := range targets {
		o := evaluate(t, event, now, z)
		if o.Eligible() {
			res.Eligible = append(res.Eligible, o)
		} else {
			res.Skipped = append(res.Skipped, o)
		}
	}
	return res
}
