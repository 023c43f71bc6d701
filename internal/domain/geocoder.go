package domain

import "context"

// GeocodingResult contains location data returned by a geocoding provider.
type GeocodingResult struct {
	Lat              float64
	Lon              float64
	FormattedAddress string
	Confidence       float64 // provider confidence, 0 to 1
}

// Geocoder resolves free-text city names to coordinates.
type Geocoder interface {
	// ForwardGeocode converts a city name to coordinates. An empty result
	// with a nil error means the provider found nothing.
	ForwardGeocode(ctx context.Context, city string) (GeocodingResult, error)
}
