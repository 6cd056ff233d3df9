package draft

import "strings"

// Status describes where a draft is in its lifecycle.
type Status string

const (
	// StatusDraft is a fully formed draft awaiting review or scheduling.
	StatusDraft Status = "draft"
	// StatusScheduled is a draft locked to its slot.
	StatusScheduled Status = "scheduled"
	// StatusStreaming is a draft with a generation request in flight.
	StatusStreaming Status = "streaming"
	// StatusPlaceholder is a pre-generation stub carrying a seed reference.
	StatusPlaceholder Status = "placeholder"
)

// Draft is a single schedulable unit of content. It lives in exactly one
// day's slot list or on the unscheduled list, never both.
type Draft struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Summary         string   `json:"summary,omitempty"`
	Time            string   `json:"time"`
	DateLabel       string   `json:"dateLabel"`
	Status          Status   `json:"status"`
	Platforms       []string `json:"platforms,omitempty"`
	Format          string   `json:"format,omitempty"`
	Objective       string   `json:"objective,omitempty"`
	Caption         string   `json:"caption,omitempty"`
	Tags            []string `json:"tags,omitempty"`
	MediaCount      int      `json:"mediaCount"`
	Progress        *int     `json:"progress,omitempty"`
	SeedTrendID     string   `json:"seedTrendId,omitempty"`
	TargetAccountID string   `json:"targetAccountId,omitempty"`
	Adjusted        bool     `json:"adjusted,omitempty"`
}

// New creates a placeholder draft for the given slot.
func New(id, title, timeLabel, dateLabel string) *Draft {
	return &Draft{
		ID:        id,
		Title:     title,
		Time:      timeLabel,
		DateLabel: dateLabel,
		Status:    StatusPlaceholder,
	}
}

// IsPlaceholder reports whether the draft is still awaiting generation.
func (d *Draft) IsPlaceholder() bool {
	return d.Status == StatusPlaceholder
}

// HasSeed reports whether the draft carries a seed back-reference, meaning
// it participates in generation dispatch.
func (d *Draft) HasSeed() bool {
	return d.SeedTrendID != ""
}

// HasTag reports whether the draft carries the given free-form tag.
func (d *Draft) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// SetProgress records generation progress, clamped to 0..100.
func (d *Draft) SetProgress(p int) {
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	d.Progress = &p
}

// Clone returns a deep copy so store snapshots stay isolated from callers.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	out := *d
	if d.Platforms != nil {
		out.Platforms = append([]string(nil), d.Platforms...)
	}
	if d.Tags != nil {
		out.Tags = append([]string(nil), d.Tags...)
	}
	if d.Progress != nil {
		p := *d.Progress
		out.Progress = &p
	}
	return &out
}
