package catalog

import (
	"context"
	"strings"
)

// SourceType discriminates where a seed came from.
type SourceType string

const (
	// SourceTrend is a trending-topic signal.
	SourceTrend SourceType = "trend"
	// SourceQuestion is an audience-question signal.
	SourceQuestion SourceType = "question"
	// SourceEvent is a calendar-event signal.
	SourceEvent SourceType = "event"
)

// Seed is a reference to an externally-sourced signal selected for content
// generation. Seeds are not owned entities; they mirror the signals
// service's records.
type Seed struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
}

// Source classifies the seed by inspecting its tags. Anything not tagged
// as a question or event is treated as a trend.
func (s Seed) Source() SourceType {
	return ClassifyTags(s.Tags)
}

// ClassifyTags maps a tag set to a seed source discriminant.
func ClassifyTags(tags []string) SourceType {
	for _, t := range tags {
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "question":
			return SourceQuestion
		case "event":
			return SourceEvent
		}
	}
	return SourceTrend
}

// ParseSource validates an inbound discriminant string. Unrecognized
// values return false so callers can reject heterogeneous payloads
// silently.
func ParseSource(s string) (SourceType, bool) {
	switch SourceType(strings.ToLower(strings.TrimSpace(s))) {
	case SourceTrend:
		return SourceTrend, true
	case SourceQuestion:
		return SourceQuestion, true
	case SourceEvent:
		return SourceEvent, true
	}
	return "", false
}

// Signals is the external catalogue collaborator supplying seed records.
type Signals interface {
	Seeds(ctx context.Context) ([]Seed, error)
}

// Accounts maps platform keys to the account ids used verbatim in
// generation requests. Supplied by the integrations collaborator.
type Accounts map[string]string

// ByID indexes a seed list for lookup during scheduling.
func ByID(seeds []Seed) map[string]Seed {
	indexed := make(map[string]Seed, len(seeds))
	for _, s := range seeds {
		if s.ID == "" {
			continue
		}
		indexed[s.ID] = s
	}
	return indexed
}
