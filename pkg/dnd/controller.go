package dnd

import (
	"encoding/json"
	"time"

	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/draft"
	"tableflip.dev/cadence/pkg/schedule"
	"tableflip.dev/cadence/pkg/weeknav"
)

// Payload keys. The same JSON payload is written under both identifiers so
// internal drop targets and cross-surface consumers can each read it.
const (
	PayloadKey       = "application/x-cadence-card"
	PayloadKeyCompat = "text/plain"
)

// Payload is the serialized form of a signal card dragged in from outside
// the calendar.
type Payload struct {
	Type    string `json:"type"`
	TrendID string `json:"trendId"`
	Title   string `json:"title"`
	Time    string `json:"time,omitempty"`
}

// EncodePayload renders the payload under both transfer keys.
func EncodePayload(p Payload) map[string]string {
	data, err := json.Marshal(p)
	if err != nil {
		return nil
	}
	return map[string]string{
		PayloadKey:       string(data),
		PayloadKeyCompat: string(data),
	}
}

// DecodePayload reads a payload from either transfer key.
func DecodePayload(data map[string]string) (Payload, bool) {
	for _, key := range []string{PayloadKey, PayloadKeyCompat} {
		raw, ok := data[key]
		if !ok || raw == "" {
			continue
		}
		var p Payload
		if err := json.Unmarshal([]byte(raw), &p); err == nil {
			return p, true
		}
	}
	return Payload{}, false
}

// State is the drag gesture phase.
type State int

const (
	// Idle means no drag gesture is in progress.
	Idle State = iota
	// Dragging means a draft is held for relocation.
	Dragging
)

// Controller mediates the two drop surfaces feeding the store: the
// internal reorder gesture and the external payload channel. Gestures are
// purely synchronous; the controller carries no locking of its own and is
// driven from the UI event loop.
type Controller struct {
	store    *calendar.Store
	rotation schedule.Rotation

	state    State
	activeID string

	now func() time.Time
}

// NewController creates a controller over the given store.
func NewController(store *calendar.Store, rotation schedule.Rotation) *Controller {
	return &Controller{
		store:    store,
		rotation: rotation,
		now:      time.Now,
	}
}

// State returns the current gesture phase.
func (c *Controller) State() State {
	return c.state
}

// Start begins an internal reorder gesture for the draft id. The draft is
// resolved from the flattened slot list and held for overlay rendering
// only; it stays in the store until drop. Unknown ids leave the controller
// idle.
func (c *Controller) Start(draftID string) bool {
	for _, d := range c.store.FlattenedSlots() {
		if d.ID == draftID {
			c.state = Dragging
			c.activeID = draftID
			return true
		}
	}
	return false
}

// Active returns the draft currently held by the gesture.
func (c *Controller) Active() (*draft.Draft, bool) {
	if c.state != Dragging {
		return nil, false
	}
	d, _, ok := c.store.FindDraft(c.activeID)
	return d, ok
}

// Drop completes the gesture over the given drop-zone id. A valid day
// target moves the draft; anything else is a no-op. The active reference
// is always cleared regardless of outcome.
func (c *Controller) Drop(targetDayID string) {
	id := c.activeID
	c.state = Idle
	c.activeID = ""
	if id == "" || targetDayID == "" {
		return
	}
	c.store.MoveDraft(id, targetDayID)
}

// Cancel abandons the gesture without mutating the store.
func (c *Controller) Cancel() {
	c.state = Idle
	c.activeID = ""
}

// DropPayload ingests an external signal-card payload dropped onto a day
// and materializes a new placeholder draft with a computed time slot.
// Unrecognized discriminants and payloads without an id are rejected
// silently; heterogeneous drag sources make that expected noise.
func (c *Controller) DropPayload(dayID string, data map[string]string) *draft.Draft {
	p, ok := DecodePayload(data)
	if !ok {
		return nil
	}
	source, ok := catalog.ParseSource(p.Type)
	if !ok || p.TrendID == "" {
		return nil
	}

	snap := c.store.Snapshot()
	var day *calendar.Day
	for i := range snap.Days {
		if snap.Days[i].ID == dayID {
			day = &snap.Days[i]
			break
		}
	}
	if day == nil {
		return nil
	}

	dropTime := p.Time
	if dropTime == "" {
		dropTime = weeknav.DefaultTime
	}
	timeLabel := dropTime
	if len(day.Slots) > 0 {
		timeLabel = schedule.NextOpenSlot(*day, dropTime)
	}

	d := draft.New(schedule.DroppedDraftID(c.now()), p.Title, timeLabel, day.DateLabel)
	d.Platforms = []string{c.rotation.PlatformForDay(dayID)}
	d.SeedTrendID = p.TrendID
	d.Tags = []string{p.TrendID}
	switch source {
	case catalog.SourceQuestion:
		d.Tags = append(d.Tags, "question")
	case catalog.SourceEvent:
		d.Tags = append(d.Tags, "event")
	}
	c.store.AddDraft(dayID, d)
	return d
}
