package selection

import (
	"tableflip.dev/cadence/pkg/calendar"
)

// Controller implements single-select, shift-extend multi-select, and
// keyboard navigation over the flattened, time-ordered sequence of all
// visible draft slots. It is driven synchronously from the UI event loop
// and keeps no state beyond the anchor of the last gesture.
type Controller struct {
	store *calendar.Store
}

// NewController creates a selection controller over the given store.
func NewController(store *calendar.Store) *Controller {
	return &Controller{store: store}
}

// Click replaces the primary selection and clears multi-select: a click
// without modifier always collapses to exactly one selected item.
func (c *Controller) Click(id string) {
	c.store.SetSelectedDraftID(id)
}

// ShiftClick toggles membership in the multi-select set without touching
// the primary selection.
func (c *Controller) ShiftClick(id string) {
	c.store.ToggleDraftSelection(id)
}

// Escape clears both selection forms unconditionally.
func (c *Controller) Escape() {
	c.store.ClearDraftSelection()
}

// Move shifts the selection one position through the flattened slot list.
// The anchor is the primary selection, or the last multi-selected id when
// the primary is empty. At either end of the list the move is a no-op; the
// list does not wrap. With shift held the new position extends the
// multi-select, otherwise it becomes the single selection.
func (c *Controller) Move(delta int, shift bool) {
	flattened := c.store.FlattenedSlots()
	if len(flattened) == 0 {
		return
	}
	anchor := c.anchor()
	if anchor == "" {
		// Nothing selected yet; land on an end of the list.
		if delta > 0 {
			c.applyAt(flattened[0].ID, shift)
		} else {
			c.applyAt(flattened[len(flattened)-1].ID, shift)
		}
		return
	}
	idx := -1
	for i, d := range flattened {
		if d.ID == anchor {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := idx + delta
	if next < 0 || next >= len(flattened) {
		return
	}
	c.applyAt(flattened[next].ID, shift)
}

func (c *Controller) applyAt(id string, shift bool) {
	if shift {
		c.store.ToggleDraftSelection(id)
		return
	}
	c.store.SetSelectedDraftID(id)
}

func (c *Controller) anchor() string {
	snap := c.store.Snapshot()
	if snap.SelectedID != "" {
		return snap.SelectedID
	}
	if n := len(snap.MultiSelected); n > 0 {
		return snap.MultiSelected[n-1]
	}
	return ""
}

// Selected returns the ids affected by a bulk action: the multi-select set
// when present, otherwise the primary selection.
func (c *Controller) Selected() []string {
	snap := c.store.Snapshot()
	if len(snap.MultiSelected) > 0 {
		return snap.MultiSelected
	}
	if snap.SelectedID != "" {
		return []string{snap.SelectedID}
	}
	return nil
}
