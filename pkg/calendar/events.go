package calendar

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/cadence/pkg/draft"
)

// ComponentID identifies the store instance emitting events.
type ComponentID string

// ChangeType enumerates supported change actions.
type ChangeType string

const (
	// ChangeCreate indicates a new draft was created.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an existing draft changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates a draft was removed.
	ChangeDelete ChangeType = "delete"
	// ChangeMove indicates a draft relocated to another day.
	ChangeMove ChangeType = "move"
)

// DraftRef captures the fields needed to identify a draft in events.
type DraftRef struct {
	ID     string
	Title  string
	Status draft.Status
}

// DraftChangeMsg announces lifecycle changes to drafts regardless of their
// origin (user gesture, auto-sort, streamed placement).
type DraftChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	DayID     string
	Draft     DraftRef
}

// Describe renders the change in a human-friendly format for logs.
func (m DraftChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q day:%q draft:%q status:%q`, m.Action, m.DayID, m.Draft.ID, m.Draft.Status)
}

// DaysReplacedMsg announces that the full visible day set was swapped, for
// example on week navigation.
type DaysReplacedMsg struct {
	Component ComponentID
	Count     int
}

// Describe implements the logging helper.
func (m DaysReplacedMsg) Describe() string {
	return fmt.Sprintf(`component:%q days:%d`, m.Component, m.Count)
}

// SelectionChangeMsg fires whenever primary or multi selection changes.
type SelectionChangeMsg struct {
	Component ComponentID
	Primary   string
	Multi     []string
}

// Describe implements the logging helper.
func (m SelectionChangeMsg) Describe() string {
	return fmt.Sprintf(`primary:%q multi:%d`, m.Primary, len(m.Multi))
}

// GhostChangeMsg fires when a day's in-flight loading counter changes.
type GhostChangeMsg struct {
	Component ComponentID
	DayID     string
	Count     int
}

// Describe implements the logging helper.
func (m GhostChangeMsg) Describe() string {
	return fmt.Sprintf(`day:%q ghosts:%d`, m.DayID, m.Count)
}

// SeedToggleMsg fires when a seed enters or leaves the selected set.
type SeedToggleMsg struct {
	Component ComponentID
	SeedID    string
	Selected  bool
}

// Describe implements the logging helper.
func (m SeedToggleMsg) Describe() string {
	return fmt.Sprintf(`seed:%q selected:%t`, m.SeedID, m.Selected)
}

// DraftChangeCmd wraps DraftChangeMsg in a tea.Cmd for callers emitting the
// event as part of an Update result.
func DraftChangeCmd(component ComponentID, action ChangeType, dayID string, ref DraftRef) tea.Cmd {
	return func() tea.Msg {
		return DraftChangeMsg{
			Component: component,
			Action:    action,
			DayID:     dayID,
			Draft:     ref,
		}
	}
}
