package domain

import "time"

// ScoreEvent announces one facility's freshly written score to downstream
// consumers. All events of a scan share ScanID and ScoredAt.
type ScoreEvent struct {
	ScanID      string    `json:"scan_id"`
	FacilityID  string    `json:"id"`
	Name        string    `json:"name"`
	Location    string    `json:"location"`
	SafetyScore float64   `json:"safety_score"`
	Status      *string   `json:"status"`
	ScoredAt    time.Time `json:"scored_at"`
}

// NewScoreEvent builds the event for one scan result entry.
func NewScoreEvent(scanID string, sf ScoredFacility, at time.Time) ScoreEvent {
	return ScoreEvent{
		ScanID:      scanID,
		FacilityID:  sf.ID,
		Name:        sf.Name,
		Location:    sf.Location,
		SafetyScore: sf.SafetyScore,
		Status:      sf.StatusValue(),
		ScoredAt:    at,
	}
}
