package filter

import (
	"fmt"
	"time"
	_ "time/tzdata" // зоны IANA нужны и в образах без /usr/share/zoneinfo

	"github.com/shenikar/geo_alert_dispatch/internal/models"
)

// loadLocation подменяется в тестах
var loadLocation = time.LoadLocation

// zones хранит уже разобранные часовые пояса в пределах одного прохода Partition.
// time.LoadLocation каждый раз заново читает базу зон.
type zones map[string]*time.Location

// lookup возвращает зону по имени, неизвестная зона превращается в UTC.
// Nil-карта работает без кэширования.
func (z zones) lookup(name string) *time.Location {
	if loc, ok := z[name]; ok {
		return loc
	}
	loc, err := loadLocation(name)
	if err != nil {
		loc = time.UTC
	}
	if z != nil {
		z[name] = loc
	}
	return loc
}

// InQuietHours сообщает, попадает ли момент at в тихие часы по локальному времени получателя.
// Окно полуоткрытое [start, end); если start > end, окно переходит через полночь.
// Неизвестная зона трактуется как UTC, неразборчивое время отключает тихие часы.
func InQuietHours(qh models.QuietHours, at time.Time) bool {
	return inQuietHours(qh, at, nil)
}

func inQuietHours(qh models.QuietHours, at time.Time, z zones) bool {
	if !qh.Enabled {
		return false
	}

	start, err := parseClock(qh.Start)
	if err != nil {
		return false
	}
	end, err := parseClock(qh.End)
	if err != nil {
		return false
	}
	if start == end {
		return false
	}

	local := at.In(z.lookup(qh.Timezone))
	minute := local.Hour()*60 + local.Minute()

	if start < end {
		return minute >= start && minute < end
	}
	return minute >= start || minute < end
}

// parseClock переводит "HH:MM" в минуты от полуночи
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
