package app

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/dnd"
	"tableflip.dev/cadence/pkg/schedule"
	"tableflip.dev/cadence/pkg/selection"
	"tableflip.dev/cadence/pkg/weeknav"
)

// Service provides high-level planning operations over one calendar
// session. It wraps the store, scheduler, and gesture controllers so the
// CLI and TUI can share logic.
type Service struct {
	Store     *calendar.Store
	Scheduler *schedule.Scheduler
	Selection *selection.Controller
	DnD       *dnd.Controller
	Navigator *weeknav.Navigator

	log *logrus.Entry
}

// MaxSeedSelections caps how many seeds can be picked for one week.
const MaxSeedSelections = 12

// New assembles a service for the week containing now.
func New(client schedule.Opener, now time.Time) *Service {
	store := calendar.NewStore("")
	rotation := schedule.DefaultRotation()
	nav := weeknav.NewNavigator(now)
	store.SetDays(nav.Week())
	return &Service{
		Store:     store,
		Scheduler: schedule.NewScheduler(store, client, rotation),
		Selection: selection.NewController(store),
		DnD:       dnd.NewController(store, rotation),
		Navigator: nav,
		log:       logrus.WithField("component", "app"),
	}
}

// LoadSeeds fetches the seed catalogue and hands it to the scheduler.
func (s *Service) LoadSeeds(ctx context.Context, signals catalog.Signals) error {
	if signals == nil {
		return errors.New("app: no signals source configured")
	}
	seeds, err := signals.Seeds(ctx)
	if err != nil {
		return err
	}
	s.Scheduler.Seeds = seeds
	s.log.WithField("seeds", len(seeds)).Debug("seed catalogue loaded")
	return nil
}

// ToggleSeed toggles a seed into the selected set, subject to the cap.
func (s *Service) ToggleSeed(id string) {
	s.Store.ToggleTrend(id, MaxSeedSelections)
}

// Plan runs auto-sort for the active week and returns how many
// placeholders it created.
func (s *Service) Plan() int {
	created := s.Scheduler.AutoSort()
	s.log.WithField("created", created).Debug("auto-sort complete")
	return created
}

// Generate dispatches the seeded placeholders and blocks until the stream
// drains.
func (s *Service) Generate(ctx context.Context) error {
	return s.Scheduler.Generate(ctx)
}

// Regenerate re-runs generation for one draft.
func (s *Service) Regenerate(ctx context.Context, draftID string) error {
	return s.Scheduler.Regenerate(ctx, draftID)
}

// MoveSelected relocates every selected draft to the target day and then
// clears the selection; the batch completes before selection changes.
func (s *Service) MoveSelected(targetDayID string) {
	ids := s.Selection.Selected()
	if len(ids) == 0 {
		return
	}
	s.Store.BulkMoveDrafts(ids, targetDayID)
	s.Store.ClearDraftSelection()
}

// DeleteSelected removes every selected draft and clears the selection.
func (s *Service) DeleteSelected() {
	ids := s.Selection.Selected()
	if len(ids) == 0 {
		return
	}
	s.Store.BulkDeleteDrafts(ids)
	s.Store.ClearDraftSelection()
}

// StepWeek navigates the visible week by delta weeks, remembering the
// outgoing week's slots so returning does not rebuild them.
func (s *Service) StepWeek(delta int) {
	s.Navigator.Remember(s.Store.Snapshot().Days)
	s.Store.SetDays(s.Navigator.Step(delta))
}

// WeekLabel returns the display label for the active week.
func (s *Service) WeekLabel() string {
	return weeknav.RangeLabel(s.Navigator.Current())
}
