package location

import (
	"context"
	"log"
	"os"

	"googlemaps.github.io/maps"
)

// Geocoding context: reports come from the Miami pilot deployment, so an
// ambiguous address is first tried against the county.
const geocodeContext = ", Miami-Dade County, Florida, USA"

type geocoderClient struct {
	client *maps.Client
}

func newGeocoderFromEnv() *geocoderClient {
	apiKey := os.Getenv("MAPS_CREDENTIALS")
	if apiKey == "" {
		return nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		log.Printf("Failed to create maps client, geocoding disabled: %v", err)
		return nil
	}
	return &geocoderClient{client: client}
}

type geocodeResult struct {
	Lat        float64
	Lon        float64
	Confidence float64
}

// geocode resolves an address to coordinates, first with the regional
// context appended, then plain.
func (g *geocoderClient) geocode(ctx context.Context, address string) (geocodeResult, bool) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address + geocodeContext})
	if err == nil && len(results) > 0 {
		loc := results[0].Geometry.Location
		return geocodeResult{Lat: loc.Lat, Lon: loc.Lng, Confidence: 0.8}, true
	}
	if err != nil {
		log.Printf("Geocoding error for %q: %v", address, err)
	}

	results, err = g.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil || len(results) == 0 {
		return geocodeResult{}, false
	}
	loc := results[0].Geometry.Location
	return geocodeResult{Lat: loc.Lat, Lon: loc.Lng, Confidence: 0.6}, true
}
