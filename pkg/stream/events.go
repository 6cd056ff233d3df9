package stream

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"
)

// Kind enumerates the event types meaningful to downstream consumers.
type Kind string

const (
	// KindProgress carries completed/total counters for the running batch.
	KindProgress Kind = "progress"
	// KindPlacement carries a fully-formed placement result.
	KindPlacement Kind = "placement"
	// KindError is a terminal error message for the run.
	KindError Kind = "error"
	// KindComplete marks the batch finished with no further events.
	KindComplete Kind = "complete"
)

// Schedule is the resolved scheduling for a placement. Adjusted signals
// the generation service moved the requested time.
type Schedule struct {
	ScheduledAt string `json:"scheduledAt,omitempty"`
	Time        string `json:"time,omitempty"`
	Adjusted    bool   `json:"adjusted,omitempty"`
}

// Placement fills in a specific placeholder's final scheduling and content
// fields. Its id always matches a pre-created placeholder draft id; the
// consumer must already hold a draft with the same id.
type Placement struct {
	ID         string   `json:"id" validate:"required"`
	DayID      string   `json:"dayId" validate:"required"`
	Schedule   Schedule `json:"schedule"`
	Platform   string   `json:"platform,omitempty"`
	Title      string   `json:"title,omitempty"`
	Summary    string   `json:"summary,omitempty"`
	Caption    string   `json:"caption,omitempty"`
	Format     string   `json:"format,omitempty"`
	Objective  string   `json:"objective,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	MediaCount int      `json:"mediaCount,omitempty"`
}

// Event is one decoded line of the generation stream.
type Event struct {
	Type      Kind       `json:"type" validate:"required,oneof=progress placement error complete"`
	Completed int        `json:"completed,omitempty"`
	Total     int        `json:"total,omitempty"`
	Stage     string     `json:"stage,omitempty"`
	Placement *Placement `json:"placement,omitempty" validate:"required_if=Type placement"`
	Message   string     `json:"message,omitempty"`
}

// PlacementRequest describes one placeholder to generate content for.
type PlacementRequest struct {
	ID          string `json:"id"`
	DayID       string `json:"dayId"`
	ScheduledAt string `json:"scheduledAt"`
	Time        string `json:"time"`
	Platform    string `json:"platform"`
	AccountID   string `json:"accountId,omitempty"`
	Source      string `json:"source"`
	Format      string `json:"format,omitempty"`
	Topic       string `json:"topic,omitempty"`
	SeedID      string `json:"seedId"`
}

// Request is the full generation payload carried by one streaming call.
type Request struct {
	BrandProfileID     string             `json:"brandProfileId"`
	WeekStart          string             `json:"weekStart"`
	Timezone           string             `json:"timezone"`
	Placements         []PlacementRequest `json:"placements"`
	PlatformAccountIDs map[string]string  `json:"platformAccountIds,omitempty"`
	Options            map[string]any     `json:"options,omitempty"`
}

var validate = validator.New()

// DecodeLine parses a single NDJSON line into an event and checks it
// against the event-shape contract. Lines that fail either step are
// expected noise and reported via ok=false.
func DecodeLine(line []byte) (Event, bool) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return Event{}, false
	}
	if err := validate.Struct(ev); err != nil {
		return Event{}, false
	}
	return ev, true
}
