package types

import "encoding/json"

// Event type discriminators as they appear on the wire.
const (
	EventReportCreated     = "ReportCreated"
	EventReportCategorized = "ReportCategorized"
	EventResourceMatched   = "ResourceMatched"
	EventReport            = "report"
	EventMatch             = "match"
)

// Event is the interface for everything flowing over the buses. The five
// concrete kinds below are the complete set; nothing else is published.
type Event interface {
	EventType() string
	event() // marker method
}

// ReportCreatedEvent announces a freshly ingested report to the agents.
type ReportCreatedEvent struct {
	Report Report `json:"report"`
}

func (ReportCreatedEvent) EventType() string { return EventReportCreated }
func (ReportCreatedEvent) event()            {}

// ReportCategorizedEvent is published by the categorizer agent.
type ReportCategorizedEvent struct {
	ReportID string   `json:"report_id"`
	Category Category `json:"category"`
}

func (ReportCategorizedEvent) EventType() string { return EventReportCategorized }
func (ReportCategorizedEvent) event()            {}

// ResourceMatchedEvent is published by the matcher agent. The store applies
// it; the agents themselves never mutate state.
type ResourceMatchedEvent struct {
	ReportID   string `json:"report_id"`
	ResourceID string `json:"resource_id"`
}

func (ResourceMatchedEvent) EventType() string { return EventResourceMatched }
func (ResourceMatchedEvent) event()            {}

// ReportEvent mirrors a new report onto the UI stream.
type ReportEvent struct {
	Report Report `json:"report"`
}

func (ReportEvent) EventType() string { return EventReport }
func (ReportEvent) event()            {}

// MatchEvent is terminal observer output emitted after a match is applied.
// Agents never consume it.
type MatchEvent struct {
	ReportID   string `json:"report_id"`
	ResourceID string `json:"resource_id"`
	Capacity   int    `json:"capacity"`
}

func (MatchEvent) EventType() string { return EventMatch }
func (MatchEvent) event()            {}

// EncodeEvent flattens an event into its wire form: the event's own fields
// plus the "type" discriminator.
func EncodeEvent(e Event) ([]byte, error) {
	fields, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, err
	}
	m["type"] = json.RawMessage(`"` + e.EventType() + `"`)
	return json.Marshal(m)
}

// a2aEnvelope tolerates the loose shapes external agents send: fields either
// flat on the message or nested under "body".
type a2aEnvelope struct {
	Type       string          `json:"type"`
	Body       json.RawMessage `json:"body"`
	Report     *Report         `json:"report"`
	ReportID   string          `json:"report_id"`
	ResourceID string          `json:"resource_id"`
	Category   Category        `json:"category"`
}

// DecodeEvent parses an inbound a2a message into its typed event. Unknown
// types return (nil, nil); the caller drops them.
func DecodeEvent(raw []byte) (Event, error) {
	var env a2aEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if len(env.Body) > 0 {
		var body a2aEnvelope
		if err := json.Unmarshal(env.Body, &body); err == nil {
			if body.Report != nil {
				env.Report = body.Report
			}
			if body.ReportID != "" {
				env.ReportID = body.ReportID
			}
			if body.ResourceID != "" {
				env.ResourceID = body.ResourceID
			}
			if body.Category != "" {
				env.Category = body.Category
			}
		}
	}

	switch env.Type {
	case EventReportCreated:
		if env.Report == nil {
			return nil, nil
		}
		return ReportCreatedEvent{Report: *env.Report}, nil
	case EventReportCategorized:
		return ReportCategorizedEvent{ReportID: env.ReportID, Category: env.Category}, nil
	case EventResourceMatched:
		return ResourceMatchedEvent{ReportID: env.ReportID, ResourceID: env.ResourceID}, nil
	default:
		return nil, nil
	}
}
