package domain

import (
	"math"
	"time"
)

// Weight constants for the safety index. They must sum to 1.0.
const (
	WeightCCTV        = 0.25
	WeightSecurity    = 0.20
	WeightMaintenance = 0.15
	WeightEfficiency  = 0.15
	WeightAutomation  = 0.10
	WeightStatus      = 0.10
	WeightSize        = 0.03
	WeightDocks       = 0.02
)

// weightTotal is evaluated at compile time, so it is exactly 1.
const weightTotal = WeightCCTV + WeightSecurity + WeightMaintenance + WeightEfficiency +
	WeightAutomation + WeightStatus + WeightSize + WeightDocks

// Score bounds.
const (
	MinScore = 0.0
	MaxScore = 100.0
)

// Breakdown carries every intermediate value of one facility's score.
// Sub-scores are each in [0,1] before weighting.
type Breakdown struct {
	CCTV        float64
	Security    float64
	Maintenance float64
	Efficiency  float64
	Automation  float64
	Status      float64
	Size        float64
	Docks       float64

	// BaseIndex is the weighted sum on a 0-100 scale.
	BaseIndex float64

	// LocationAdjustment is the additive city term, roughly ±10.
	LocationAdjustment float64

	// Score is clamp(BaseIndex+LocationAdjustment, 0, 100) rounded to two
	// decimals.
	Score float64
}

// Scorer computes facility safety scores. It is pure: the same record,
// stats and instant always yield the same score.
type Scorer struct {
	cities CityRanks
}

// NewScorer creates a Scorer using the given city rank table.
func NewScorer(cities CityRanks) *Scorer {
	return &Scorer{cities: cities}
}

// Score returns the facility's safety score in [0,100] with two-decimal
// precision. now is the instant maintenance recency is measured against.
func (s *Scorer) Score(f FacilityRecord, stats NormalizationStats, now time.Time) float64 {
	return s.Breakdown(f, stats, now).Score
}

// Breakdown computes the score and returns all intermediate values.
//
// Formula:
//
//	base  = 100 * Σ weight_i * clamp01(subscore_i)
//	final = round2(clamp(base + (rank/100 - 0.5) * 20, 0, 100))
//
// Malformed or missing inputs lower the affected sub-score; they never fail.
func (s *Scorer) Breakdown(f FacilityRecord, stats NormalizationStats, now time.Time) Breakdown {
	b := Breakdown{
		CCTV:        clamp01(ratio(f.TotalCCTV(), stats.MaxCCTV)),
		Security:    clamp01(ratio(f.SecurityEmployees, stats.MaxSecurityEmployees)),
		Maintenance: maintenanceScore(f.LastMaintenance, stats.MaxDaysSinceMaintenance, now),
		Efficiency:  clamp01(f.EfficiencyScore / 100),
		Automation:  clamp01(f.AutomationLevel),
		Status:      StatusScore(f.ScoringStatus()),
		Size:        clamp01(1 - ratio(f.SizeSqft, stats.MaxFacilitySize)),
		Docks:       clamp01(1 - ratio(f.NumberOfDocks, stats.MaxDocks)),
	}

	b.BaseIndex = (WeightCCTV*b.CCTV +
		WeightSecurity*b.Security +
		WeightMaintenance*b.Maintenance +
		WeightEfficiency*b.Efficiency +
		WeightAutomation*b.Automation +
		WeightStatus*b.Status +
		WeightSize*b.Size +
		WeightDocks*b.Docks) * 100

	b.LocationAdjustment = s.cities.Adjustment(f.Location)
	b.Score = round2(clamp(b.BaseIndex+b.LocationAdjustment, MinScore, MaxScore))
	return b
}

// StatusScore maps an operating status to its sub-score. Unrecognized
// values score as inactive.
func StatusScore(status string) float64 {
	switch status {
	case StatusOperational:
		return 1.0
	case StatusUnderMaintenance:
		return 0.5
	case StatusInactive:
		return 0.0
	default:
		return 0.0
	}
}

// maintenanceScore is 1 for maintenance today, falling linearly to 0 at the
// fleet maximum. A missing date scores 0.
func maintenanceScore(last *time.Time, maxDays float64, now time.Time) float64 {
	if last == nil {
		return 0
	}
	days := float64(DaysSince(*last, now))
	return clamp01(1 - ratio(days, maxDays))
}

// ratio divides v by limit, returning 0 for a non-positive limit. Stats
// built by ComputeNormalizationStats never have one.
func ratio(v, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return v / limit
}

// clamp01 restricts v to the range [0, 1].
func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// clamp maps NaN to lo so a malformed input can never escape the range.
func clamp(value, lo, hi float64) float64 {
	if math.IsNaN(value) || value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
