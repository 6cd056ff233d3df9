package calendar

import (
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/cadence/pkg/draft"
)

// Day is one calendar date in the visible week. Slot order is derived by
// the scheduler's sort, not stored.
type Day struct {
	ID             string         `json:"id"`
	Label          string         `json:"label"`
	DateLabel      string         `json:"dateLabel"`
	SuggestedTimes []string       `json:"suggestedTimes,omitempty"`
	Slots          []*draft.Draft `json:"slots"`
}

// Snapshot exposes a consistent copy of the current calendar state.
type Snapshot struct {
	Days          []Day
	Unscheduled   []*draft.Draft
	SelectedID    string
	MultiSelected []string
	Ghosts        map[string]int
	SelectedSeeds []string
}

// Store is the canonical in-memory calendar state for a planning session.
// All mutation goes through it so rendering, drag-drop, and streaming
// consumers observe one consistent snapshot. Mutations emit typed events
// on a buffered channel; state lives locally and consumers read snapshots
// without hitting any backing service.
type Store struct {
	component ComponentID

	mu sync.RWMutex

	days        []Day
	unscheduled []*draft.Draft

	selectedID string
	multi      []string

	ghosts map[string]int
	seeds  []string

	eventCh chan tea.Msg
}

// NewStore creates an empty store that will emit events using the provided
// ComponentID (falls back to "calendar" if empty).
func NewStore(component ComponentID) *Store {
	if component == "" {
		component = ComponentID("calendar")
	}
	return &Store{
		component: component,
		ghosts:    make(map[string]int),
		eventCh:   make(chan tea.Msg, 64),
	}
}

// Events exposes the store event channel for Bubble Tea subscriptions.
func (s *Store) Events() <-chan tea.Msg {
	return s.eventCh
}

// SetDays replaces the full day set, used on week change or initial load.
// Ghost counters for days that no longer exist are discarded.
func (s *Store) SetDays(days []Day) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.days = cloneDays(days)
	keep := make(map[string]int, len(s.ghosts))
	for _, d := range s.days {
		if n, ok := s.ghosts[d.ID]; ok {
			keep[d.ID] = n
		}
	}
	s.ghosts = keep
	s.emit(DaysReplacedMsg{Component: s.component, Count: len(s.days)})
}

// Snapshot returns a deep copy of the current state. The returned data
// should be treated as immutable by callers.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ghosts := make(map[string]int, len(s.ghosts))
	for k, v := range s.ghosts {
		ghosts[k] = v
	}
	return Snapshot{
		Days:          cloneDays(s.days),
		Unscheduled:   cloneDrafts(s.unscheduled),
		SelectedID:    s.selectedID,
		MultiSelected: append([]string(nil), s.multi...),
		Ghosts:        ghosts,
		SelectedSeeds: append([]string(nil), s.seeds...),
	}
}

// FindDraft locates a draft by id in any day or the unscheduled list and
// returns a copy plus the owning day id ("" for unscheduled).
func (s *Store) FindDraft(id string) (*draft.Draft, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if d, dayID := s.locate(id); d != nil {
		return d.Clone(), dayID, true
	}
	return nil, "", false
}

// FlattenedSlots returns all days' drafts concatenated in day order,
// the sequence used for keyboard navigation.
func (s *Store) FlattenedSlots() []*draft.Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*draft.Draft, 0)
	for _, day := range s.days {
		for _, d := range day.Slots {
			out = append(out, d.Clone())
		}
	}
	return out
}

// MoveDraft relocates a draft to the target day, re-labeling its date to
// match. The removal and insert happen under one lock so the draft is never
// observable in two places. Unknown draft or day ids degrade to a no-op;
// ids can legitimately go stale mid-stream when the week changes.
func (s *Store) MoveDraft(draftID, targetDayID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveLocked(draftID, targetDayID)
}

// AddDraft upserts a draft. If a draft with the same id already exists
// anywhere it is replaced in place, which lets placeholder creation and
// placeholder promotion share one call. Otherwise the draft is appended to
// the named day's slots; an unknown day id is a no-op.
func (s *Store) AddDraft(dayID string, d *draft.Draft) {
	if d == nil || d.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := d.Clone()
	if existing, owner := s.locate(d.ID); existing != nil {
		s.replaceLocked(d.ID, stored)
		s.emit(DraftChangeMsg{
			Component: s.component,
			Action:    ChangeUpdate,
			DayID:     owner,
			Draft:     refOf(stored),
		})
		return
	}
	idx := s.dayIndex(dayID)
	if idx < 0 {
		return
	}
	s.days[idx].Slots = append(s.days[idx].Slots, stored)
	s.emit(DraftChangeMsg{
		Component: s.component,
		Action:    ChangeCreate,
		DayID:     dayID,
		Draft:     refOf(stored),
	})
}

// AddUnscheduled places a draft on the unscheduled list (upsert by id).
func (s *Store) AddUnscheduled(d *draft.Draft) {
	if d == nil || d.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := d.Clone()
	if existing, _ := s.locate(d.ID); existing != nil {
		s.replaceLocked(d.ID, stored)
	} else {
		s.unscheduled = append(s.unscheduled, stored)
	}
	s.emit(DraftChangeMsg{
		Component: s.component,
		Action:    ChangeUpdate,
		Draft:     refOf(stored),
	})
}

// UpdateDraft applies a pure transformation to the draft matching the id,
// wherever it lives. Missing ids are a no-op.
func (s *Store) UpdateDraft(draftID string, fn func(*draft.Draft) *draft.Draft) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, owner := s.locate(draftID)
	if existing == nil {
		return
	}
	updated := fn(existing.Clone())
	if updated == nil {
		return
	}
	updated.ID = draftID
	s.replaceLocked(draftID, updated)
	s.emit(DraftChangeMsg{
		Component: s.component,
		Action:    ChangeUpdate,
		DayID:     owner,
		Draft:     refOf(updated),
	})
}

// BulkMoveDrafts relocates each draft to the target day as one batch under
// a single lock. Selection is intentionally untouched; callers clear it
// after the batch completes.
func (s *Store) BulkMoveDrafts(draftIDs []string, targetDayID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range draftIDs {
		s.moveLocked(id, targetDayID)
	}
}

// BulkDeleteDrafts removes each draft from whichever list holds it.
func (s *Store) BulkDeleteDrafts(draftIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range draftIDs {
		if removed, owner := s.removeLocked(id); removed != nil {
			s.emit(DraftChangeMsg{
				Component: s.component,
				Action:    ChangeDelete,
				DayID:     owner,
				Draft:     refOf(removed),
			})
		}
	}
}

// SetSelectedDraftID sets the exclusive primary selection and clears the
// multi-select set: a plain click always collapses to one selected item.
func (s *Store) SetSelectedDraftID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
	s.multi = nil
	s.emitSelection()
}

// ToggleDraftSelection toggles membership in the multi-select set without
// touching the primary selection.
func (s *Store) ToggleDraftSelection(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.multi {
		if existing == id {
			s.multi = append(s.multi[:i], s.multi[i+1:]...)
			s.emitSelection()
			return
		}
	}
	s.multi = append(s.multi, id)
	s.emitSelection()
}

// ClearDraftSelection clears both selection forms unconditionally.
func (s *Store) ClearDraftSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" && len(s.multi) == 0 {
		return
	}
	s.selectedID = ""
	s.multi = nil
	s.emitSelection()
}

// SetGhosts sets the in-flight loading counter for a day, clamped to >= 0.
func (s *Store) SetGhosts(dayID string, count int) {
	if count < 0 {
		count = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ghosts[dayID] = count
	s.emit(GhostChangeMsg{Component: s.component, DayID: dayID, Count: count})
}

// DecrementGhosts drops a day's ghost counter by one as a streamed result
// lands, never going below zero.
func (s *Store) DecrementGhosts(dayID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.ghosts[dayID] - 1
	if n < 0 {
		n = 0
	}
	s.ghosts[dayID] = n
	s.emit(GhostChangeMsg{Component: s.component, DayID: dayID, Count: n})
}

// ToggleTrend adds or removes a seed id from the selected-seed set. Adds
// beyond maxSelections are rejected without error; the UI is expected to
// disable further selection once the cap is visible.
func (s *Store) ToggleTrend(id string, maxSelections int) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, existing := range s.seeds {
		if existing == id {
			s.seeds = append(s.seeds[:i], s.seeds[i+1:]...)
			s.emit(SeedToggleMsg{Component: s.component, SeedID: id, Selected: false})
			return
		}
	}
	if maxSelections > 0 && len(s.seeds) >= maxSelections {
		return
	}
	s.seeds = append(s.seeds, id)
	s.emit(SeedToggleMsg{Component: s.component, SeedID: id, Selected: true})
}

func (s *Store) moveLocked(draftID, targetDayID string) {
	idx := s.dayIndex(targetDayID)
	if idx < 0 {
		return
	}
	removed, _ := s.removeLocked(draftID)
	if removed == nil {
		return
	}
	removed.DateLabel = s.days[idx].DateLabel
	s.days[idx].Slots = append(s.days[idx].Slots, removed)
	s.emit(DraftChangeMsg{
		Component: s.component,
		Action:    ChangeMove,
		DayID:     targetDayID,
		Draft:     refOf(removed),
	})
}

func (s *Store) locate(id string) (*draft.Draft, string) {
	if id == "" {
		return nil, ""
	}
	for di := range s.days {
		for _, d := range s.days[di].Slots {
			if d.ID == id {
				return d, s.days[di].ID
			}
		}
	}
	for _, d := range s.unscheduled {
		if d.ID == id {
			return d, ""
		}
	}
	return nil, ""
}

func (s *Store) replaceLocked(id string, updated *draft.Draft) {
	for di := range s.days {
		for si, d := range s.days[di].Slots {
			if d.ID == id {
				s.days[di].Slots[si] = updated
				return
			}
		}
	}
	for i, d := range s.unscheduled {
		if d.ID == id {
			s.unscheduled[i] = updated
			return
		}
	}
}

func (s *Store) removeLocked(id string) (*draft.Draft, string) {
	for di := range s.days {
		for si, d := range s.days[di].Slots {
			if d.ID == id {
				s.days[di].Slots = append(s.days[di].Slots[:si], s.days[di].Slots[si+1:]...)
				return d, s.days[di].ID
			}
		}
	}
	for i, d := range s.unscheduled {
		if d.ID == id {
			s.unscheduled = append(s.unscheduled[:i], s.unscheduled[i+1:]...)
			return d, ""
		}
	}
	return nil, ""
}

func (s *Store) dayIndex(id string) int {
	for idx, day := range s.days {
		if strings.EqualFold(day.ID, id) {
			return idx
		}
	}
	return -1
}

func (s *Store) emitSelection() {
	s.emit(SelectionChangeMsg{
		Component: s.component,
		Primary:   s.selectedID,
		Multi:     append([]string(nil), s.multi...),
	})
}

func (s *Store) emit(msg tea.Msg) {
	select {
	case s.eventCh <- msg:
	default:
	}
}

func refOf(d *draft.Draft) DraftRef {
	return DraftRef{ID: d.ID, Title: d.Title, Status: d.Status}
}

func cloneDays(days []Day) []Day {
	if len(days) == 0 {
		return nil
	}
	out := make([]Day, len(days))
	for i := range days {
		out[i] = days[i]
		out[i].SuggestedTimes = append([]string(nil), days[i].SuggestedTimes...)
		out[i].Slots = cloneDrafts(days[i].Slots)
	}
	return out
}

func cloneDrafts(list []*draft.Draft) []*draft.Draft {
	if len(list) == 0 {
		return nil
	}
	out := make([]*draft.Draft, len(list))
	for i, d := range list {
		out[i] = d.Clone()
	}
	return out
}
