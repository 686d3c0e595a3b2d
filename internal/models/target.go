package models

import "time"

// UserLocation - последнее известное местоположение пользователя
type UserLocation struct {
	UserID         string  `json:"userId"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	AccuracyMeters float64 `json:"accuracyMeters"`
	Timestamp      int64   `json:"timestamp"` // epoch ms
	IsActive       bool    `json:"isActive"`
}

// QuietHours - окно локального времени, в которое доставляются только критические события.
// Start и End задаются в формате "HH:MM", Timezone - имя зоны IANA.
type QuietHours struct {
	Enabled  bool   `json:"enabled"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Timezone string `json:"timezone"`
}

// Preferences - пользовательские настройки получения оповещений
type Preferences struct {
	EmergencyTypes    []string   `json:"emergencyTypes"`
	MinSeverity       Severity   `json:"minSeverity"`
	QuietHours        QuietHours `json:"quietHours"`
	MaxDistanceMeters float64    `json:"maxDistanceMeters"`
}

// AcceptsType проверяет, подписан ли пользователь на тип события
func (p *Preferences) AcceptsType(eventType string) bool {
	for _, t := range p.EmergencyTypes {
		if t == eventType {
			return true
		}
	}
	return false
}

// AlertTarget - зарегистрированное устройство, которому можно отправить push-уведомление
type AlertTarget struct {
	UserID       string       `json:"userId"`
	DeviceID     string       `json:"deviceId"`
	PushToken    string       `json:"pushToken"`
	Location     UserLocation `json:"location"`
	Preferences  Preferences  `json:"preferences"`
	LastActiveAt int64        `json:"lastActiveAt"` // epoch ms
}

// LastActive возвращает время последней активности устройства
func (t *AlertTarget) LastActive() time.Time {
	return time.UnixMilli(t.LastActiveAt)
}
