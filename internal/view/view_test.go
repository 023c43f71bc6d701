package view

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/couchcryptid/facility-safety-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.April, 26, 15, 10, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func scanResult() []domain.ScoredFacility {
	return []domain.ScoredFacility{
		{ID: "a", Name: "Alpha", Location: "Austin", SafetyScore: 61.5, Status: "Operational"},
		{ID: "b", Name: "Bravo", Location: "Boston", SafetyScore: 88.25, Status: "Inactive"},
		{ID: "c", Name: "Charlie", Location: "Chicago", SafetyScore: 61.5, Status: "Operational"},
		{ID: "d", Name: "Delta", Location: "Denver", SafetyScore: 99, Status: "Under Maintenance"},
	}
}

func TestNewMapResponse_KeepsScanOrder(t *testing.T) {
	resp := NewMapResponse(scanResult(), testNow)

	assert.True(t, resp.Success)
	assert.Equal(t, "2024-04-26T15:10:00Z", resp.Timestamp)
	assert.Equal(t, 4, resp.Count)
	ids := make([]string, len(resp.Facilities))
	for i, f := range resp.Facilities {
		ids[i] = f.ID
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids)
}

func TestNewListResponse_SortsAndRanks(t *testing.T) {
	input := scanResult()

	resp := NewListResponse(input, testNow)

	type ranked struct {
		Rank  int
		ID    string
		Score float64
	}
	got := make([]ranked, len(resp.Facilities))
	for i, f := range resp.Facilities {
		got[i] = ranked{f.Rank, f.ID, f.SafetyScore}
	}
	want := []ranked{
		{1, "d", 99},
		{2, "b", 88.25},
		{3, "a", 61.5},
		{4, "c", 61.5},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 4, resp.Count)
	assert.Equal(t, "a", input[0].ID, "input must not be reordered")
}

func TestNewListResponse_JSONShape(t *testing.T) {
	resp := NewListResponse(scanResult()[:1], testNow)

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var body struct {
		Facilities []map[string]any `json:"facilities"`
	}
	require.NoError(t, json.Unmarshal(data, &body))
	require.Len(t, body.Facilities, 1)
	entry := body.Facilities[0]
	for _, key := range []string{"rank", "id", "name", "location", "latitude", "longitude", "safety_score", "status", "category"} {
		assert.Contains(t, entry, key)
	}
	assert.Equal(t, 1.0, entry["rank"])
}

func TestEmptyResponsesEncodeEmptyArrays(t *testing.T) {
	mapJSON, err := json.Marshal(NewMapResponse(nil, testNow))
	require.NoError(t, err)
	assert.Contains(t, string(mapJSON), `"facilities":[]`)
	assert.Contains(t, string(mapJSON), `"count":0`)

	listJSON, err := json.Marshal(NewListResponse(nil, testNow))
	require.NoError(t, err)
	assert.Contains(t, string(listJSON), `"facilities":[]`)
}

func TestNewDetailResponse(t *testing.T) {
	last := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	score := 72.4
	rec := domain.FacilityRecord{
		ID:                "fac-1",
		Name:              "Harbor",
		Location:          "Seattle",
		Category:          "Cold Storage",
		Latitude:          47.6,
		Longitude:         -122.3,
		Cameras:           [domain.CameraZones]float64{1, 2, 3, 4, 5},
		SecurityEmployees: 6,
		LastMaintenance:   &last,
		EfficiencyScore:   80,
		AutomationLevel:   0.5,
		Status:            "Operational",
		SizeSqft:          50000,
		NumberOfDocks:     4,
		SafetyScore:       &score,
		LastScoreUpdate:   testNow,
	}

	resp := NewDetailResponse(rec)

	assert.True(t, resp.Success)
	want := FacilityDetail{
		ID:                  "fac-1",
		Name:                "Harbor",
		Location:            "Seattle",
		Category:            "Cold Storage",
		SafetyScore:         &score,
		Status:              strPtr("Operational"),
		Latitude:            47.6,
		Longitude:           -122.3,
		SizeSqft:            50000,
		AutomationLevel:     0.5,
		EfficiencyScore:     80,
		SecurityEmployees:   6,
		NumberOfDocks:       4,
		TotalCCTVCameras:    15,
		LastMaintenanceDate: "2024-03-01",
		LastScoreUpdate:     "2024-04-26T15:10:00Z",
	}
	if diff := cmp.Diff(want, resp.Facility); diff != "" {
		t.Fatalf("detail mismatch (-want +got):\n%s", diff)
	}
}

func TestNewDetailResponse_NeverScored(t *testing.T) {
	resp := NewDetailResponse(domain.FacilityRecord{ID: "fresh"})

	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"safety_score":null`)
	assert.Contains(t, string(data), `"last_maintenance_date":""`)
	assert.Contains(t, string(data), `"last_score_update":""`)
}

func TestMissingStatusRendersNull(t *testing.T) {
	doc := domain.Document{ID: "fac-bare", Fields: map[string]any{"name": "Bare"}}
	rec := domain.DecodeFacility(doc)
	sf := domain.NewScoredFacility(rec, 15)

	mapEntry := NewMapResponse([]domain.ScoredFacility{sf}, testNow).Facilities[0]
	assert.Nil(t, mapEntry.Status)
	assert.Nil(t, NewListResponse([]domain.ScoredFacility{sf}, testNow).Facilities[0].Status)

	data, err := json.Marshal(NewDetailResponse(rec))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":null`)
}

func TestPresentStatusRenderedVerbatim(t *testing.T) {
	for _, status := range []string{"", "Mothballed", "Inactive"} {
		rec := domain.DecodeFacility(domain.Document{ID: "fac", Fields: map[string]any{"status": status}})
		entry := NewMapResponse([]domain.ScoredFacility{domain.NewScoredFacility(rec, 0)}, testNow).Facilities[0]
		require.NotNil(t, entry.Status, status)
		assert.Equal(t, status, *entry.Status)
	}
}

func TestNewErrorResponse(t *testing.T) {
	data, err := json.Marshal(NewErrorResponse(FacilityNotFoundMessage))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"Facility not found"}`, string(data))
}
