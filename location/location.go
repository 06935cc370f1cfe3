// Package location extracts coordinates from freeform report text. It is an
// optional collaborator: every path degrades to a zero-confidence result and
// report creation never depends on it.
package location

import (
	"context"
	"regexp"
	"strings"
)

// Info is the structured result of a location extraction attempt.
type Info struct {
	Lat         float64  `json:"lat,omitempty"`
	Lon         float64  `json:"lon,omitempty"`
	HasCoords   bool     `json:"has_coords"`
	Address     string   `json:"address,omitempty"`
	Confidence  float64  `json:"confidence"`
	Method      string   `json:"method"`
	Entities    []string `json:"entities,omitempty"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type Extractor struct {
	nlp      *nlpClient
	geocoder *geocoderClient
}

// NewFromEnv builds an extractor with whichever external services have
// credentials configured. Missing credentials just disable that pass.
func NewFromEnv(ctx context.Context) *Extractor {
	return &Extractor{
		nlp:      newNLPClientFromEnv(ctx),
		geocoder: newGeocoderFromEnv(),
	}
}

// Location phrase patterns, tried in order of specificity.
var locationPatterns = []*regexp.Regexp{
	// Business + street
	regexp.MustCompile(`(?i)at\s+([^,\n]+(?:cvs|walgreens|walmart|target|hospital|clinic|school|university|mall|plaza|center)[^,\n]*)`),
	regexp.MustCompile(`(?i)at\s+([^,\n]+(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln|way|place|pl)[^,\n]*)`),
	// Street address
	regexp.MustCompile(`(?i)(\d+\s+[^,\n]+(?:street|st|avenue|ave|road|rd|boulevard|blvd|drive|dr|lane|ln))`),
	// Intersection
	regexp.MustCompile(`(?i)(?:at|near)\s+([^,\n]+(?:and|&|intersection)[^,\n]+)`),
	// Landmark
	regexp.MustCompile(`(?i)(?:at|near)\s+([^,\n]*(?:hospital|clinic|school|university|airport|station|park|mall|center|plaza|building)[^,\n]*)`),
}

var businessKeywords = []string{
	"cvs", "walgreens", "walmart", "target", "publix",
	"hospital", "clinic", "urgent care", "emergency room",
	"school", "university", "college", "library",
	"mall", "plaza", "center", "airport", "station",
}

var vagueTerms = []string{"here", "there", "this place", "that place", "over there", "nearby"}

// Extract runs pattern matching, then the optional entity pass, then
// geocoding when an address was found without coordinates.
func (e *Extractor) Extract(ctx context.Context, text string) Info {
	if strings.TrimSpace(text) == "" {
		return Info{Method: "none"}
	}

	info := e.extractWithEntities(ctx, text)
	if info.Confidence < 0.3 {
		if fallback := extractWithPatterns(text); fallback.Confidence > info.Confidence {
			info = fallback
		}
	}

	if info.Address != "" && !info.HasCoords && e.geocoder != nil {
		if geocoded, ok := e.geocoder.geocode(ctx, info.Address); ok {
			info.Lat = geocoded.Lat
			info.Lon = geocoded.Lon
			info.HasCoords = true
			if geocoded.Confidence > info.Confidence {
				info.Confidence = geocoded.Confidence
			}
			info.Method += "+geocoding"
		}
	}

	info.Suggestions = SuggestImprovements(text)
	if info.Method == "" {
		info.Method = "none"
	}
	return info
}

func (e *Extractor) extractWithEntities(ctx context.Context, text string) Info {
	if e.nlp == nil {
		return Info{Method: "none"}
	}
	entities, err := e.nlp.locationEntities(ctx, text)
	if err != nil || len(entities) == 0 {
		return Info{Method: "none"}
	}

	confidence := 0.7
	if len(entities) > 1 {
		confidence = 0.6
	}
	return Info{
		Address:    entities[0],
		Confidence: confidence,
		Method:     "entity_extraction",
		Entities:   entities,
	}
}

func extractWithPatterns(text string) Info {
	var locations []string
	confidence := 0.0

	for _, pattern := range locationPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			candidate := strings.TrimSpace(match[1])
			if len(candidate) > 3 {
				locations = append(locations, candidate)
				if confidence < 0.5 {
					confidence = 0.5
				}
			}
		}
	}

	lower := strings.ToLower(text)
	for _, keyword := range businessKeywords {
		if strings.Contains(lower, keyword) {
			pattern := regexp.MustCompile(`(?i)([^.!?]*` + regexp.QuoteMeta(keyword) + `[^.!?]*)`)
			for _, match := range pattern.FindAllStringSubmatch(text, -1) {
				candidate := strings.TrimSpace(match[1])
				if len(candidate) > len(keyword)+5 {
					locations = append(locations, candidate)
					if confidence < 0.4 {
						confidence = 0.4
					}
				}
			}
			break
		}
	}

	if len(locations) == 0 {
		return Info{Method: "none"}
	}

	// Prefer the most detailed match.
	best := locations[0]
	for _, loc := range locations[1:] {
		if len(loc) > len(best) {
			best = loc
		}
	}
	return Info{
		Address:    best,
		Confidence: confidence,
		Method:     "pattern_matching",
		Entities:   dedupeStrings(locations),
	}
}

// SuggestImprovements points out vague or underspecified descriptions.
func SuggestImprovements(text string) []string {
	var suggestions []string
	lower := strings.ToLower(text)

	for _, term := range vagueTerms {
		if strings.Contains(lower, term) {
			suggestions = append(suggestions,
				"Try to be more specific than 'here' or 'there' - include street names or landmarks")
			break
		}
	}
	if len(strings.Fields(text)) < 3 {
		suggestions = append(suggestions,
			"Add more location details like street names, cross streets, or nearby landmarks")
	}
	return suggestions
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
