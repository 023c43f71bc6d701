package domain

import "time"

// Floors applied to the observed fleet maxima so sparse or all-zero fleets
// never divide by zero.
const (
	MinMaxCCTV                 = 5.0
	MinMaxSecurityEmployees    = 10.0
	MinMaxDaysSinceMaintenance = 365.0
	MinMaxFacilitySize         = 100000.0
	MinMaxDocks                = 10.0
)

// NormalizationStats holds the per-metric fleet maxima used to scale raw
// counts into [0,1]. It is recomputed for every scan and never persisted.
type NormalizationStats struct {
	MaxCCTV                 float64
	MaxSecurityEmployees    float64
	MaxDaysSinceMaintenance float64
	MaxFacilitySize         float64
	MaxDocks                float64
}

// ComputeNormalizationStats scans the fleet once and returns the maxima of
// each raw metric, each raised to its floor. Facilities without a
// maintenance date do not contribute to the maintenance maximum.
func ComputeNormalizationStats(facilities []FacilityRecord, now time.Time) NormalizationStats {
	var stats NormalizationStats
	for _, f := range facilities {
		stats.MaxCCTV = max(stats.MaxCCTV, f.TotalCCTV())
		stats.MaxSecurityEmployees = max(stats.MaxSecurityEmployees, f.SecurityEmployees)
		if f.LastMaintenance != nil {
			days := float64(DaysSince(*f.LastMaintenance, now))
			stats.MaxDaysSinceMaintenance = max(stats.MaxDaysSinceMaintenance, days)
		}
		stats.MaxFacilitySize = max(stats.MaxFacilitySize, f.SizeSqft)
		stats.MaxDocks = max(stats.MaxDocks, f.NumberOfDocks)
	}

	stats.MaxCCTV = max(stats.MaxCCTV, MinMaxCCTV)
	stats.MaxSecurityEmployees = max(stats.MaxSecurityEmployees, MinMaxSecurityEmployees)
	stats.MaxDaysSinceMaintenance = max(stats.MaxDaysSinceMaintenance, MinMaxDaysSinceMaintenance)
	stats.MaxFacilitySize = max(stats.MaxFacilitySize, MinMaxFacilitySize)
	stats.MaxDocks = max(stats.MaxDocks, MinMaxDocks)
	return stats
}

const secondsPerDay = 24 * 60 * 60

// DaysSince returns the number of whole calendar days from date to now.
// Both instants are reduced to their calendar date in their own location
// first. A future date yields a negative count.
func DaysSince(date, now time.Time) int {
	y, m, d := date.Date()
	ny, nm, nd := now.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	to := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return int((to.Unix() - from.Unix()) / secondsPerDay)
}
