package geo

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	assert.Equal(t, 0.0, DistanceMeters(40.7128, -74.0060, 40.7128, -74.0060))
	assert.Equal(t, 0.0, DistanceMeters(-33.86, 151.2, -33.86, 151.2))
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	points := [][2]float64{
		{40.7128, -74.0060},
		{51.5074, -0.1278},
		{-33.8688, 151.2093},
		{35.6762, 139.6503},
		{0, 0},
	}
	for _, a := range points {
		for _, b := range points {
			ab := DistanceMeters(a[0], a[1], b[0], b[1])
			ba := DistanceMeters(b[0], b[1], a[0], a[1])
			assert.InDelta(t, ab, ba, 1e-6)
		}
	}
}

func TestDistanceMeters_KnownValues(t *testing.T) {
	// Нью-Йорк - Лондон, около 5570 км
	d := DistanceMeters(40.7128, -74.0060, 51.5074, -0.1278)
	assert.InDelta(t, 5570000, d, 10000)

	// один градус долготы на экваторе
	d = DistanceMeters(0, 0, 0, 1)
	assert.InDelta(t, EarthRadiusMeters*math.Pi/180, d, 0.01)
}

func TestDistanceMeters_NaN(t *testing.T) {
	assert.True(t, math.IsNaN(DistanceMeters(math.NaN(), 0, 10, 10)))
}

func TestRegionFor_DefaultTable(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     string
	}{
		{"new york", 40.7128, -74.0060, "us-east"},
		{"los angeles", 34.0522, -118.2437, "us-west"},
		{"sao paulo", -23.5505, -46.6333, "sa-east"},
		{"paris", 48.8566, 2.3522, "eu-west"},
		{"warsaw", 52.2297, 21.0122, "eu-central"},
		{"tokyo", 35.6762, 139.6503, "asia-east"},
		{"singapore", 1.3521, 103.8198, "asia-southeast"},
		{"sydney", -33.8688, 151.2093, "oceania"},
		{"mid atlantic", 30, -40, DefaultRegionName},
		{"north pole", 90, 0, DefaultRegionName},
		{"shared edge goes to earlier region", 30, -90, "us-east"},
		{"nan", math.NaN(), 10, DefaultRegionName},
		{"out of range", 200, 400, DefaultRegionName},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RegionFor(tt.lat, tt.lng))
		})
	}
}

func TestRegionFor_TotalAndDeterministic(t *testing.T) {
	table := DefaultTable()
	known := make(map[string]bool)
	for _, n := range table.Names() {
		known[n] = true
	}

	for lat := -90.0; lat <= 90; lat += 2.5 {
		for lng := -180.0; lng <= 180; lng += 2.5 {
			first := table.RegionFor(lat, lng)
			require.True(t, known[first], "unknown region %q for (%v, %v)", first, lat, lng)
			require.Equal(t, first, table.RegionFor(lat, lng))
		}
	}
}

func TestNames_DefaultLast(t *testing.T) {
	names := DefaultTable().Names()
	require.Len(t, names, len(DefaultRegions)+1)
	assert.Equal(t, "us-east", names[0])
	assert.Equal(t, DefaultRegionName, names[len(names)-1])
}

func TestTableConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     TableConfig
		wantErr string
	}{
		{
			name: "valid with shared edge",
			cfg: TableConfig{Regions: []RegionBounds{
				{Name: "a", MinLat: 0, MaxLat: 10, MinLng: 0, MaxLng: 10},
				{Name: "b", MinLat: 0, MaxLat: 10, MinLng: 10, MaxLng: 20},
			}},
		},
		{
			name: "overlap",
			cfg: TableConfig{Regions: []RegionBounds{
				{Name: "a", MinLat: 0, MaxLat: 10, MinLng: 0, MaxLng: 10},
				{Name: "b", MinLat: 5, MaxLat: 15, MinLng: 5, MaxLng: 15},
			}},
			wantErr: "overlap",
		},
		{
			name:    "empty name",
			cfg:     TableConfig{Regions: []RegionBounds{{MinLat: 0, MaxLat: 1, MinLng: 0, MaxLng: 1}}},
			wantErr: "empty name",
		},
		{
			name: "duplicate",
			cfg: TableConfig{Regions: []RegionBounds{
				{Name: "a", MinLat: 0, MaxLat: 1, MinLng: 0, MaxLng: 1},
				{Name: "a", MinLat: 5, MaxLat: 6, MinLng: 5, MaxLng: 6},
			}},
			wantErr: "duplicate",
		},
		{
			name:    "name clashes with default",
			cfg:     TableConfig{Regions: []RegionBounds{{Name: DefaultRegionName, MinLat: 0, MaxLat: 1, MinLng: 0, MaxLng: 1}}},
			wantErr: "duplicate",
		},
		{
			name:    "bad latitude",
			cfg:     TableConfig{Regions: []RegionBounds{{Name: "a", MinLat: -100, MaxLat: 1, MinLng: 0, MaxLng: 1}}},
			wantErr: "latitude",
		},
		{
			name:    "inverted longitude",
			cfg:     TableConfig{Regions: []RegionBounds{{Name: "a", MinLat: 0, MaxLat: 1, MinLng: 10, MaxLng: 1}}},
			wantErr: "longitude",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	data := `{"default":"elsewhere","regions":[{"name":"box","minLat":0,"maxLat":10,"minLng":0,"maxLng":10}]}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, "box", table.RegionFor(5, 5))
	assert.Equal(t, "elsewhere", table.RegionFor(-5, -5))
	assert.Equal(t, "elsewhere", table.Default())
	assert.Equal(t, []string{"box", "elsewhere"}, table.Names())
}

func TestLoadTable_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "regions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"regions":[`), 0o600))

	_, err := LoadTable(path)
	assert.ErrorContains(t, err, "failed to parse region table")

	_, err = LoadTable(filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to read region table")
}
