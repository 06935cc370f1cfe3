package types

import "fmt"

type Category string

const (
	Food    Category = "food"
	Water   Category = "water"
	Medical Category = "medical"
	Shelter Category = "shelter"
	Other   Category = "other"
)

// ReportIn is the ingress payload for a new disaster report.
type ReportIn struct {
	Description string  `json:"description" binding:"required"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Urgency     int     `json:"urgency"`
}

// Validate rejects out-of-range urgency before the report enters the core.
func (r ReportIn) Validate() error {
	if r.Urgency < 1 || r.Urgency > 5 {
		return fmt.Errorf("urgency must be between 1 and 5, got %d", r.Urgency)
	}
	return nil
}

type Report struct {
	ID                string   `json:"id"`
	Description       string   `json:"description"`
	Lat               float64  `json:"lat"`
	Lon               float64  `json:"lon"`
	Urgency           int      `json:"urgency"`
	Category          Category `json:"category"`
	MatchedResourceID string   `json:"matched_resource_id,omitempty"`
}

type Resource struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Type     Category `json:"type"`
	Lat      float64  `json:"lat"`
	Lon      float64  `json:"lon"`
	Capacity int      `json:"capacity"`
	Notes    string   `json:"notes,omitempty"`
}

// PriorityResult is the outcome of a single priority classification.
// Produced fresh per call, never mutated afterwards.
type PriorityResult struct {
	Priority       int      `json:"priority"`
	Confidence     float64  `json:"confidence"`
	Reasoning      string   `json:"reasoning"`
	KeyIndicators  []string `json:"key_indicators"`
	Recommendation string   `json:"recommendations"`
	Source         string   `json:"source"`

	// Set only by Q&A reclassification.
	BasePriority int `json:"base_priority,omitempty"`
	QABoost      int `json:"qa_boost,omitempty"`
}

// QAPair is one clarifying question together with the caller's answer.
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// ConversationSession tracks one low-confidence classification round-trip.
// It is consumed once by reclassification and not persisted.
type ConversationSession struct {
	OriginalDescription string   `json:"original_description"`
	QAPairs             []QAPair `json:"qa_pairs"`
	BasePriority        int      `json:"base_priority"`
	Boost               int      `json:"boost"`
}
