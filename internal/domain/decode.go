package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// DecodeFacility converts a raw document into a FacilityRecord. It never
// fails: absent or malformed numbers decode as zero, unusable dates as nil,
// and an absent or null status as StatusMissing.
func DecodeFacility(doc Document) FacilityRecord {
	fields := doc.Fields
	rec := FacilityRecord{
		ID:                doc.ID,
		Name:              stringField(fields, FieldName),
		Location:          stringField(fields, FieldLocation),
		Category:          stringField(fields, FieldCategory),
		Latitude:          numberField(fields, FieldLatitude),
		Longitude:         numberField(fields, FieldLongitude),
		SecurityEmployees: numberField(fields, FieldSecurityEmployees),
		LastMaintenance:   dateField(fields, FieldLastMaintenanceDate),
		NextMaintenance:   dateField(fields, FieldNextMaintenanceDate),
		EfficiencyScore:   numberField(fields, FieldEfficiencyScore),
		AutomationLevel:   numberField(fields, FieldAutomationLevel),
		SizeSqft:          numberField(fields, FieldSizeSqft),
		NumberOfDocks:     numberField(fields, FieldNumberOfDocks),
	}
	rec.Status, rec.StatusMissing = statusField(fields)
	for i := range rec.Cameras {
		rec.Cameras[i] = numberField(fields, CameraField(i+1))
	}
	if score, ok := toFloat(fields[FieldSafetyScore]); ok {
		rec.SafetyScore = &score
	}
	if ts := dateField(fields, FieldLastScoreUpdate); ts != nil {
		rec.LastScoreUpdate = *ts
	}
	return rec
}

// statusField distinguishes an absent or null status from a present one. A
// present string is kept verbatim; any other present value decodes as "".
func statusField(fields map[string]any) (status string, missing bool) {
	v, ok := fields[FieldStatus]
	if !ok || v == nil {
		return "", true
	}
	s, _ := v.(string)
	return s, false
}

func stringField(fields map[string]any, key string) string {
	switch v := fields[key].(type) {
	case string:
		return v
	case nil:
		return ""
	case json.Number:
		return v.String()
	default:
		return ""
	}
}

// numberField returns the field as float64, or 0 when it is absent or not numeric.
func numberField(fields map[string]any, key string) float64 {
	v, ok := toFloat(fields[key])
	if !ok {
		return 0
	}
	return v
}

// toFloat coerces numeric values, rejecting NaN and infinities.
func toFloat(v any) (float64, bool) {
	f, ok := coerceFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func coerceFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// dateField accepts a native time or a YYYY-MM-DD / RFC 3339 string and
// returns nil for anything else.
func dateField(fields map[string]any, key string) *time.Time {
	switch v := fields[key].(type) {
	case time.Time:
		if v.IsZero() {
			return nil
		}
		return &v
	case *time.Time:
		if v == nil || v.IsZero() {
			return nil
		}
		t := *v
		return &t
	case string:
		return ParseDate(v)
	default:
		return nil
	}
}

// ParseDate parses a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp.
// It returns nil for empty or unparseable input.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{DateLayout, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
