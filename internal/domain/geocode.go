package domain

import (
	"context"
	"log/slog"
)

// ResolveCoordinates fills in coordinates for a scan result entry that has
// none, using a forward geocode of its city name. The entry is returned
// unchanged when geocoder is nil, the entry already has coordinates, it has
// no city, or geocoding fails (graceful degradation).
func ResolveCoordinates(ctx context.Context, sf ScoredFacility, geocoder Geocoder, logger *slog.Logger) ScoredFacility {
	if geocoder == nil {
		return sf
	}
	if sf.Latitude != 0 || sf.Longitude != 0 || sf.Location == "" {
		return sf
	}

	result, err := geocoder.ForwardGeocode(ctx, sf.Location)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"facility_id", sf.ID,
			"location", sf.Location,
			"error", err,
		)
		return sf
	}
	if result.Lat == 0 && result.Lon == 0 {
		return sf
	}

	sf.Latitude = result.Lat
	sf.Longitude = result.Lon
	return sf
}
