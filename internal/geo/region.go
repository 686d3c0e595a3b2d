package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// DefaultRegionName - регион, в который попадают координаты вне всех прямоугольников
const DefaultRegionName = "global"

// RegionBounds - прямоугольник широты/долготы в градусах
type RegionBounds struct {
	Name   string  `json:"name"`
	MinLat float64 `json:"minLat"`
	MaxLat float64 `json:"maxLat"`
	MinLng float64 `json:"minLng"`
	MaxLng float64 `json:"maxLng"`
}

// rect переводит границы в s2.Rect
func (b RegionBounds) rect() s2.Rect {
	return s2.Rect{
		Lat: r1.Interval{
			Lo: (s1.Angle(b.MinLat) * s1.Degree).Radians(),
			Hi: (s1.Angle(b.MaxLat) * s1.Degree).Radians(),
		},
		Lng: s1.IntervalFromEndpoints(
			(s1.Angle(b.MinLng) * s1.Degree).Radians(),
			(s1.Angle(b.MaxLng) * s1.Degree).Radians(),
		),
	}
}

type region struct {
	name string
	rect s2.Rect
}

// Table - упорядоченный набор регионов. Координата относится к первому прямоугольнику,
// который ее содержит; если таких нет - к региону по умолчанию.
type Table struct {
	defaultName string
	regions     []region
}

// TableConfig - представление таблицы регионов в конфигурационном файле
type TableConfig struct {
	Default string         `json:"default"`
	Regions []RegionBounds `json:"regions"`
}

// DefaultRegions - прямоугольники по умолчанию в порядке приоритета
var DefaultRegions = []RegionBounds{
	{Name: "us-east", MinLat: 24, MaxLat: 50, MinLng: -90, MaxLng: -66},
	{Name: "us-west", MinLat: 24, MaxLat: 50, MinLng: -125, MaxLng: -90},
	{Name: "sa-east", MinLat: -56, MaxLat: 12, MinLng: -82, MaxLng: -34},
	{Name: "eu-west", MinLat: 35, MaxLat: 60, MinLng: -10, MaxLng: 15},
	{Name: "eu-central", MinLat: 35, MaxLat: 60, MinLng: 15, MaxLng: 40},
	{Name: "asia-east", MinLat: 20, MaxLat: 50, MinLng: 100, MaxLng: 150},
	{Name: "asia-southeast", MinLat: -10, MaxLat: 20, MinLng: 95, MaxLng: 130},
	{Name: "oceania", MinLat: -48, MaxLat: -10, MinLng: 110, MaxLng: 180},
}

// NewTable проверяет границы и собирает таблицу
func NewTable(cfg TableConfig) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	defaultName := cfg.Default
	if defaultName == "" {
		defaultName = DefaultRegionName
	}

	t := &Table{defaultName: defaultName, regions: make([]region, 0, len(cfg.Regions))}
	for _, b := range cfg.Regions {
		t.regions = append(t.regions, region{name: b.Name, rect: b.rect()})
	}
	return t, nil
}

// DefaultTable возвращает таблицу со встроенными регионами
func DefaultTable() *Table {
	t, err := NewTable(TableConfig{Default: DefaultRegionName, Regions: DefaultRegions})
	if err != nil {
		panic(fmt.Sprintf("geo: invalid built-in region table: %v", err))
	}
	return t
}

// LoadTable читает таблицу регионов из JSON-файла
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read region table: %w", err)
	}
	var cfg TableConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse region table: %w", err)
	}
	return NewTable(cfg)
}

// Validate проверяет, что прямоугольники корректны и не пересекаются внутренностями.
// Общие границы допустимы: их разрешает порядок приоритета.
func (c TableConfig) Validate() error {
	seen := make(map[string]bool, len(c.Regions)+1)
	if c.Default != "" {
		seen[c.Default] = true
	} else {
		seen[DefaultRegionName] = true
	}

	for i, b := range c.Regions {
		if b.Name == "" {
			return fmt.Errorf("region #%d: empty name", i)
		}
		if seen[b.Name] {
			return fmt.Errorf("region %q: duplicate name", b.Name)
		}
		seen[b.Name] = true

		if b.MinLat < -90 || b.MaxLat > 90 || b.MinLat > b.MaxLat {
			return fmt.Errorf("region %q: invalid latitude range [%v, %v]", b.Name, b.MinLat, b.MaxLat)
		}
		if b.MinLng < -180 || b.MaxLng > 180 || b.MinLng > b.MaxLng {
			return fmt.Errorf("region %q: invalid longitude range [%v, %v]", b.Name, b.MinLng, b.MaxLng)
		}
	}

	for i := 0; i < len(c.Regions); i++ {
		for j := i + 1; j < len(c.Regions); j++ {
			a, b := c.Regions[i], c.Regions[j]
			if overlaps(a, b) {
				return fmt.Errorf("regions %q and %q overlap", a.Name, b.Name)
			}
		}
	}
	return nil
}

func overlaps(a, b RegionBounds) bool {
	ra, rb := a.rect(), b.rect()
	return ra.Lat.InteriorIntersects(rb.Lat) && ra.Lng.InteriorIntersects(rb.Lng)
}

// RegionFor возвращает регион для координаты. Функция тотальная: любая пара,
// включая NaN и значения вне диапазона, попадает ровно в один регион.
func (t *Table) RegionFor(lat, lng float64) string {
	ll := s2.LatLngFromDegrees(lat, lng)
	if !ll.IsValid() {
		return t.defaultName
	}
	for _, r := range t.regions {
		if r.rect.ContainsLatLng(ll) {
			return r.name
		}
	}
	return t.defaultName
}

// Names возвращает все регионы в порядке приоритета, регион по умолчанию - последним
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.regions)+1)
	for _, r := range t.regions {
		names = append(names, r.name)
	}
	return append(names, t.defaultName)
}

// Default возвращает имя региона по умолчанию
func (t *Table) Default() string {
	return t.defaultName
}

var defaultTable = DefaultTable()

// RegionFor определяет регион по встроенной таблице
func RegionFor(lat, lng float64) string {
	return defaultTable.RegionFor(lat, lng)
}
