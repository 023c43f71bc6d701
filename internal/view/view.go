// Package view shapes scan results and stored facilities into the JSON
// payloads served by the API.
package view

import (
	"sort"
	"time"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
)

// FacilityNotFoundMessage is the error text returned for an unknown id.
const FacilityNotFoundMessage = "Facility not found"

// MapEntry is one facility on the map view.
type MapEntry struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Location    string  `json:"location"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	SafetyScore float64 `json:"safety_score"`
	Status      *string `json:"status"`
	Category    string  `json:"category"`
}

// ListEntry is a map entry with its 1-based position by descending score.
type ListEntry struct {
	Rank int `json:"rank"`
	MapEntry
}

// MapResponse is the payload of the map refresh endpoint.
type MapResponse struct {
	Success    bool       `json:"success"`
	Timestamp  string     `json:"timestamp"`
	Count      int        `json:"count"`
	Facilities []MapEntry `json:"facilities"`
}

// ListResponse is the payload of the list refresh endpoint.
type ListResponse struct {
	Success    bool        `json:"success"`
	Timestamp  string      `json:"timestamp"`
	Count      int         `json:"count"`
	Facilities []ListEntry `json:"facilities"`
}

// FacilityDetail is the full read-only view of one stored facility.
type FacilityDetail struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Location            string   `json:"location"`
	Category            string   `json:"category"`
	SafetyScore         *float64 `json:"safety_score"`
	Status              *string  `json:"status"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	SizeSqft            float64  `json:"size_sqft"`
	AutomationLevel     float64  `json:"automation_level"`
	EfficiencyScore     float64  `json:"efficiency_score"`
	SecurityEmployees   float64  `json:"security_employees"`
	NumberOfDocks       float64  `json:"number_of_docks"`
	TotalCCTVCameras    float64  `json:"total_cctv_cameras"`
	LastMaintenanceDate string   `json:"last_maintenance_date"`
	NextMaintenanceDate string   `json:"next_maintenance_date"`
	LastScoreUpdate     string   `json:"last_score_update"`
}

// DetailResponse is the payload of the facility detail endpoint.
type DetailResponse struct {
	Success  bool           `json:"success"`
	Facility FacilityDetail `json:"facility"`
}

// ErrorResponse is returned with every non-2xx API status.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewMapResponse keeps the scan order.
func NewMapResponse(facilities []domain.ScoredFacility, at time.Time) MapResponse {
	entries := make([]MapEntry, len(facilities))
	for i, sf := range facilities {
		entries[i] = newMapEntry(sf)
	}
	return MapResponse{
		Success:    true,
		Timestamp:  formatTimestamp(at),
		Count:      len(entries),
		Facilities: entries,
	}
}

// NewListResponse orders facilities by descending score and numbers them
// from 1. Equal scores keep their scan order.
func NewListResponse(facilities []domain.ScoredFacility, at time.Time) ListResponse {
	entries := make([]ListEntry, len(facilities))
	for i, sf := range facilities {
		entries[i] = ListEntry{MapEntry: newMapEntry(sf)}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].SafetyScore > entries[j].SafetyScore
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return ListResponse{
		Success:    true,
		Timestamp:  formatTimestamp(at),
		Count:      len(entries),
		Facilities: entries,
	}
}

// NewDetailResponse renders a stored facility. The camera total is summed
// from the zone counts rather than read from storage.
func NewDetailResponse(f domain.FacilityRecord) DetailResponse {
	d := FacilityDetail{
		ID:                f.ID,
		Name:              f.Name,
		Location:          f.Location,
		Category:          f.Category,
		SafetyScore:       f.SafetyScore,
		Status:            f.StatusValue(),
		Latitude:          f.Latitude,
		Longitude:         f.Longitude,
		SizeSqft:          f.SizeSqft,
		AutomationLevel:   f.AutomationLevel,
		EfficiencyScore:   f.EfficiencyScore,
		SecurityEmployees: f.SecurityEmployees,
		NumberOfDocks:     f.NumberOfDocks,
		TotalCCTVCameras:  f.TotalCCTV(),
	}
	if f.LastMaintenance != nil {
		d.LastMaintenanceDate = f.LastMaintenance.Format(domain.DateLayout)
	}
	if f.NextMaintenance != nil {
		d.NextMaintenanceDate = f.NextMaintenance.Format(domain.DateLayout)
	}
	if !f.LastScoreUpdate.IsZero() {
		d.LastScoreUpdate = formatTimestamp(f.LastScoreUpdate)
	}
	return DetailResponse{Success: true, Facility: d}
}

// NewErrorResponse wraps msg in the API error envelope.
func NewErrorResponse(msg string) ErrorResponse {
	return ErrorResponse{Success: false, Error: msg}
}

func newMapEntry(sf domain.ScoredFacility) MapEntry {
	return MapEntry{
		ID:          sf.ID,
		Name:        sf.Name,
		Location:    sf.Location,
		Latitude:    sf.Latitude,
		Longitude:   sf.Longitude,
		SafetyScore: sf.SafetyScore,
		Status:      sf.StatusValue(),
		Category:    sf.Category,
	}
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
