package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrFacilityNotFound is returned by stores when no document exists for an id.
var ErrFacilityNotFound = errors.New("facility not found")

// Document field names as stored by the upstream facility system. The mixed
// casing is part of the external contract and must not be normalized.
const (
	FieldName                = "name"
	FieldLocation            = "location"
	FieldLatitude            = "latitude"
	FieldLongitude           = "longitude"
	FieldSecurityEmployees   = "Security_employees"
	FieldLastMaintenanceDate = "last_maintenance_date"
	FieldNextMaintenanceDate = "next_maintenance_date"
	FieldEfficiencyScore     = "efficiency_score"
	FieldAutomationLevel     = "automation_level"
	FieldStatus              = "status"
	FieldSizeSqft            = "size_sqft"
	FieldNumberOfDocks       = "NumberOfDocks"
	FieldCategory            = "category"
	FieldSafetyScore         = "safety_score"
	FieldLastScoreUpdate     = "last_score_update"
)

// CameraZones is the number of independent CCTV zone counters per facility
// (CCTV1 through CCTV5).
const CameraZones = 5

// CameraField returns the document field name for camera zone i (1-based).
func CameraField(i int) string {
	return fmt.Sprintf("CCTV%d", i)
}

// Operating status values recognized by the scorer.
const (
	StatusOperational      = "Operational"
	StatusUnderMaintenance = "Under Maintenance"
	StatusInactive         = "Inactive"
)

// DateLayout is the calendar-date form used for maintenance dates.
const DateLayout = "2006-01-02"

// Document is a facility as held by the store: an opaque id plus its raw
// field map.
type Document struct {
	ID     string
	Fields map[string]any
}

// FacilityRecord is the typed view of a facility document.
type FacilityRecord struct {
	ID        string
	Name      string
	Location  string // city name, free text
	Category  string
	Latitude  float64
	Longitude float64

	Cameras           [CameraZones]float64
	SecurityEmployees float64

	// Nil when the document carries no usable date.
	LastMaintenance *time.Time
	NextMaintenance *time.Time

	EfficiencyScore float64 // expected 0-100
	AutomationLevel float64 // expected 0-1
	// Status is the stored value. StatusMissing is set when the document
	// has no status or a null one; such a facility scores as operational.
	Status        string
	StatusMissing bool
	SizeSqft      float64
	NumberOfDocks float64

	// Written by the scan; nil / zero until the facility is first scored.
	SafetyScore     *float64
	LastScoreUpdate time.Time
}

// TotalCCTV sums the five camera zone counts.
func (f FacilityRecord) TotalCCTV() float64 {
	var total float64
	for _, n := range f.Cameras {
		total += n
	}
	return total
}

// ScoringStatus is the status the scorer rates.
func (f FacilityRecord) ScoringStatus() string {
	if f.StatusMissing {
		return StatusOperational
	}
	return f.Status
}

// StatusValue returns the stored status, or nil when the document had none.
func (f FacilityRecord) StatusValue() *string {
	if f.StatusMissing {
		return nil
	}
	status := f.Status
	return &status
}

// HasCoordinates reports whether the record carries a non-zero position.
func (f FacilityRecord) HasCoordinates() bool {
	return f.Latitude != 0 || f.Longitude != 0
}

// Fields renders the record back into a document field map. Dates are
// written in DateLayout; unset optional fields are omitted.
func (f FacilityRecord) Fields() map[string]any {
	fields := map[string]any{
		FieldName:              f.Name,
		FieldLocation:          f.Location,
		FieldCategory:          f.Category,
		FieldLatitude:          f.Latitude,
		FieldLongitude:         f.Longitude,
		FieldSecurityEmployees: f.SecurityEmployees,
		FieldEfficiencyScore:   f.EfficiencyScore,
		FieldAutomationLevel:   f.AutomationLevel,
		FieldSizeSqft:          f.SizeSqft,
		FieldNumberOfDocks:     f.NumberOfDocks,
	}
	for i, n := range f.Cameras {
		fields[CameraField(i+1)] = n
	}
	if f.LastMaintenance != nil {
		fields[FieldLastMaintenanceDate] = f.LastMaintenance.Format(DateLayout)
	}
	if f.NextMaintenance != nil {
		fields[FieldNextMaintenanceDate] = f.NextMaintenance.Format(DateLayout)
	}
	if !f.StatusMissing {
		fields[FieldStatus] = f.Status
	}
	if f.SafetyScore != nil {
		fields[FieldSafetyScore] = *f.SafetyScore
	}
	if !f.LastScoreUpdate.IsZero() {
		fields[FieldLastScoreUpdate] = f.LastScoreUpdate
	}
	return fields
}

// ScoredFacility is one entry of a scan result: the facility's presentation
// metadata together with the score computed for it.
type ScoredFacility struct {
	ID          string
	Name        string
	Location    string
	Latitude    float64
	Longitude   float64
	SafetyScore float64
	// Status is the stored value, reported as null when StatusMissing.
	Status        string
	StatusMissing bool
	Category      string
}

// StatusValue returns the stored status, or nil when the document had none.
func (sf ScoredFacility) StatusValue() *string {
	if sf.StatusMissing {
		return nil
	}
	status := sf.Status
	return &status
}

// NewScoredFacility builds a scan result entry from a record and its score.
func NewScoredFacility(f FacilityRecord, score float64) ScoredFacility {
	return ScoredFacility{
		ID:          f.ID,
		Name:        f.Name,
		Location:    f.Location,
		Latitude:    f.Latitude,
		Longitude:   f.Longitude,
		SafetyScore:   score,
		Status:        f.Status,
		StatusMissing: f.StatusMissing,
		Category:      f.Category,
	}
}

// ScoreUpdate returns the partial field update a scan writes for one facility.
func ScoreUpdate(score float64, at time.Time) map[string]any {
	return map[string]any{
		FieldSafetyScore:     score,
		FieldLastScoreUpdate: at,
	}
}
