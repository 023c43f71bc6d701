package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestComputeNormalizationStats_EmptyFleetUsesFloors(t *testing.T) {
	stats := ComputeNormalizationStats(nil, testNow)

	assert.Equal(t, NormalizationStats{
		MaxCCTV:                 5,
		MaxSecurityEmployees:    10,
		MaxDaysSinceMaintenance: 365,
		MaxFacilitySize:         100000,
		MaxDocks:                10,
	}, stats)
}

func TestComputeNormalizationStats_FloorsSmallFleet(t *testing.T) {
	fleet := []FacilityRecord{{
		Cameras:           [CameraZones]float64{2, 0, 0, 0, 0},
		SecurityEmployees: 3,
		LastMaintenance:   datePtr(2024, time.April, 1),
		SizeSqft:          5000,
		NumberOfDocks:     4,
	}}

	stats := ComputeNormalizationStats(fleet, testNow)

	assert.Equal(t, MinMaxCCTV, stats.MaxCCTV)
	assert.Equal(t, MinMaxSecurityEmployees, stats.MaxSecurityEmployees)
	assert.Equal(t, MinMaxDaysSinceMaintenance, stats.MaxDaysSinceMaintenance)
	assert.Equal(t, MinMaxFacilitySize, stats.MaxFacilitySize)
	assert.Equal(t, MinMaxDocks, stats.MaxDocks)
}

func TestComputeNormalizationStats_ObservedMaximaAboveFloors(t *testing.T) {
	fleet := []FacilityRecord{
		{
			Cameras:           [CameraZones]float64{4, 4, 4, 4, 4},
			SecurityEmployees: 12,
			LastMaintenance:   datePtr(2022, time.April, 26),
			SizeSqft:          250000,
			NumberOfDocks:     8,
		},
		{
			Cameras:           [CameraZones]float64{1, 2, 3, 0, 0},
			SecurityEmployees: 30,
			SizeSqft:          90000,
			NumberOfDocks:     24,
		},
	}

	stats := ComputeNormalizationStats(fleet, testNow)

	assert.Equal(t, 20.0, stats.MaxCCTV)
	assert.Equal(t, 30.0, stats.MaxSecurityEmployees)
	assert.Equal(t, 731.0, stats.MaxDaysSinceMaintenance)
	assert.Equal(t, 250000.0, stats.MaxFacilitySize)
	assert.Equal(t, 24.0, stats.MaxDocks)
}

func TestComputeNormalizationStats_SkipsMissingAndFutureDates(t *testing.T) {
	fleet := []FacilityRecord{
		{LastMaintenance: nil},
		{LastMaintenance: datePtr(2025, time.January, 1)},
	}

	stats := ComputeNormalizationStats(fleet, testNow)

	assert.Equal(t, MinMaxDaysSinceMaintenance, stats.MaxDaysSinceMaintenance)
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"same day", time.Date(2024, time.April, 26, 0, 0, 0, 0, time.UTC), 0},
		{"same day later hour", time.Date(2024, time.April, 26, 23, 59, 0, 0, time.UTC), 0},
		{"yesterday", time.Date(2024, time.April, 25, 23, 0, 0, 0, time.UTC), 1},
		{"across leap day", time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC), 58},
		{"one year", time.Date(2023, time.April, 26, 0, 0, 0, 0, time.UTC), 366},
		{"future", time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC), -10},
		{"other location uses its own calendar date", time.Date(2024, time.April, 25, 22, 0, 0, 0, time.FixedZone("PDT", -7*3600)), 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysSince(tc.date, testNow))
		})
	}
}
