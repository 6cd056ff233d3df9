package schedule

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/draft"
	"tableflip.dev/cadence/pkg/stream"
	"tableflip.dev/cadence/pkg/weeknav"
)

// RunStatus describes the lifecycle of a generation run.
type RunStatus string

const (
	// RunIdle means no generation has been dispatched yet.
	RunIdle RunStatus = "idle"
	// RunActive means a stream is open and events are being applied.
	RunActive RunStatus = "running"
	// RunComplete means the batch finished cleanly.
	RunComplete RunStatus = "complete"
	// RunError means the run recorded an error (possibly partial success).
	RunError RunStatus = "error"
)

// Run is the observable state of the current generation batch.
type Run struct {
	Status    RunStatus
	Completed int
	Total     int
	Stage     string
	Err       string
}

// ErrNothingToGenerate is returned when dispatch finds no seeded
// placeholders; no network call is made.
var ErrNothingToGenerate = errors.New("schedule: seed the calendar before generating")

// Opener opens a generation stream. Satisfied by *stream.Client.
type Opener interface {
	Open(ctx context.Context, req stream.Request) (<-chan stream.Event, error)
}

// Scheduler bridges what the user selected to what gets streamed to the
// generation backend, and reconciles streamed results into the store.
type Scheduler struct {
	Store    *calendar.Store
	Client   Opener
	Rotation Rotation

	BrandProfileID string
	Timezone       string
	Accounts       catalog.Accounts
	Seeds          []catalog.Seed

	mu  sync.Mutex
	run Run

	log *logrus.Entry
}

// NewScheduler wires a scheduler around the given store and stream client.
func NewScheduler(store *calendar.Store, client Opener, rotation Rotation) *Scheduler {
	return &Scheduler{
		Store:    store,
		Client:   client,
		Rotation: rotation,
		Timezone: "UTC",
		run:      Run{Status: RunIdle},
		log:      logrus.WithField("component", "schedule"),
	}
}

// Run returns a copy of the current run state.
func (s *Scheduler) Run() Run {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.run
}

// AutoSort distributes the store's selected seeds across the week.
func (s *Scheduler) AutoSort() int {
	return AutoSort(s.Store, s.Seeds, s.Rotation)
}

// Generate collects every seeded placeholder across the week, marks each
// streaming, opens one stream for the whole batch, and applies events as
// they arrive. It blocks until the stream drains or ctx is cancelled.
//
// A transport failure here leaves the batch's drafts in streaming status
// pending a manual retry. Single regeneration reverts instead, see
// Regenerate.
func (s *Scheduler) Generate(ctx context.Context) error {
	requests := s.collectBatch()
	if len(requests) == 0 {
		s.setRun(Run{Status: RunError, Err: ErrNothingToGenerate.Error()})
		return ErrNothingToGenerate
	}
	return s.dispatch(ctx, requests, false)
}

// Regenerate re-runs generation for a single existing draft as a batch of
// one. If the stream fails before any event arrives the draft reverts to
// draft status so it is not silently lost.
func (s *Scheduler) Regenerate(ctx context.Context, draftID string) error {
	d, dayID, ok := s.Store.FindDraft(draftID)
	if !ok || dayID == "" {
		return errors.New("schedule: draft not found")
	}
	req, ok := s.requestFor(d, dayID)
	if !ok {
		return errors.New("schedule: draft has no seed to regenerate from")
	}
	return s.dispatch(ctx, []stream.PlacementRequest{req}, true)
}

func (s *Scheduler) dispatch(ctx context.Context, requests []stream.PlacementRequest, single bool) error {
	perDay := make(map[string]int, len(requests))
	for _, r := range requests {
		s.Store.UpdateDraft(r.ID, func(d *draft.Draft) *draft.Draft {
			d.Status = draft.StatusStreaming
			return d
		})
		perDay[r.DayID]++
	}
	for dayID, n := range perDay {
		s.Store.SetGhosts(dayID, n)
	}
	s.setRun(Run{Status: RunActive, Total: len(requests)})

	events, err := s.Client.Open(ctx, stream.Request{
		BrandProfileID:     s.BrandProfileID,
		WeekStart:          s.weekStart(),
		Timezone:           s.Timezone,
		Placements:         requests,
		PlatformAccountIDs: s.Accounts,
	})
	if err != nil {
		if single {
			for _, r := range requests {
				s.Store.UpdateDraft(r.ID, func(d *draft.Draft) *draft.Draft {
					d.Status = draft.StatusDraft
					return d
				})
			}
		}
		for dayID := range perDay {
			s.Store.SetGhosts(dayID, 0)
		}
		s.setRun(Run{Status: RunError, Err: err.Error()})
		s.log.WithError(err).Warn("generation dispatch failed")
		return err
	}

	for ev := range events {
		s.apply(ev)
	}
	s.finish()
	return nil
}

// apply reconciles one streamed event into calendar state. Events keep
// applying after an error event arrives; the loop drains so placements for
// unaffected drafts still land.
func (s *Scheduler) apply(ev stream.Event) {
	switch ev.Type {
	case stream.KindProgress:
		s.mu.Lock()
		s.run.Completed = ev.Completed
		if ev.Total > 0 {
			s.run.Total = ev.Total
		}
		s.run.Stage = ev.Stage
		s.mu.Unlock()
	case stream.KindPlacement:
		if ev.Placement != nil {
			s.applyPlacement(*ev.Placement)
		}
	case stream.KindError:
		s.mu.Lock()
		s.run.Status = RunError
		s.run.Err = ev.Message
		s.mu.Unlock()
		s.log.WithField("message", ev.Message).Warn("generation stream error")
	case stream.KindComplete:
		s.mu.Lock()
		if s.run.Status != RunError {
			s.run.Status = RunComplete
		}
		s.run.Completed = s.run.Total
		s.mu.Unlock()
	}
}

func (s *Scheduler) applyPlacement(p stream.Placement) {
	if _, owner, ok := s.Store.FindDraft(p.ID); ok {
		if owner != "" && p.DayID != "" && owner != p.DayID {
			s.Store.MoveDraft(p.ID, p.DayID)
		}
		s.Store.UpdateDraft(p.ID, func(d *draft.Draft) *draft.Draft {
			return mergePlacement(d, p)
		})
	} else {
		// The user deleted this draft mid-stream; the placement brings it
		// back on its day rather than being dropped.
		resurrected := draft.New(p.ID, p.Title, p.Schedule.Time, "")
		s.Store.AddDraft(p.DayID, mergePlacement(resurrected, p))
	}
	s.Store.DecrementGhosts(p.DayID)
}

func mergePlacement(d *draft.Draft, p stream.Placement) *draft.Draft {
	d.Status = draft.StatusDraft
	if p.Title != "" {
		d.Title = p.Title
	}
	if p.Summary != "" {
		d.Summary = p.Summary
	}
	if p.Caption != "" {
		d.Caption = p.Caption
	}
	if p.Format != "" {
		d.Format = p.Format
	}
	if p.Objective != "" {
		d.Objective = p.Objective
	}
	if p.Platform != "" {
		d.Platforms = []string{p.Platform}
	}
	if len(p.Tags) > 0 {
		d.Tags = append([]string(nil), p.Tags...)
	}
	if p.MediaCount > 0 {
		d.MediaCount = p.MediaCount
	}
	if p.Schedule.Time != "" {
		d.Time = p.Schedule.Time
	}
	d.Adjusted = p.Schedule.Adjusted
	d.Progress = nil
	return d
}

// collectBatch builds one placement request per seeded placeholder across
// all days, in day order.
func (s *Scheduler) collectBatch() []stream.PlacementRequest {
	snap := s.Store.Snapshot()
	requests := make([]stream.PlacementRequest, 0)
	for _, day := range snap.Days {
		for _, d := range day.Slots {
			if !d.IsPlaceholder() || !d.HasSeed() {
				continue
			}
			if req, ok := s.requestFor(d, day.ID); ok {
				requests = append(requests, req)
			}
		}
	}
	return requests
}

func (s *Scheduler) requestFor(d *draft.Draft, dayID string) (stream.PlacementRequest, bool) {
	if d == nil || !d.HasSeed() {
		return stream.PlacementRequest{}, false
	}
	platform := s.Rotation.PlatformForDay(dayID)
	if len(d.Platforms) > 0 {
		platform = d.Platforms[0]
	}
	scheduledAt, err := weeknav.ResolveTimestamp(dayID, d.Time)
	if err != nil {
		return stream.PlacementRequest{}, false
	}
	source := catalog.SourceTrend
	if d.HasTag("question") {
		source = catalog.SourceQuestion
	} else if d.HasTag("event") {
		source = catalog.SourceEvent
	}
	return stream.PlacementRequest{
		ID:          d.ID,
		DayID:       dayID,
		ScheduledAt: scheduledAt,
		Time:        d.Time,
		Platform:    platform,
		AccountID:   s.Accounts[platform],
		Source:      string(source),
		Format:      d.Format,
		Topic:       d.Title,
		SeedID:      d.SeedTrendID,
	}, true
}

func (s *Scheduler) weekStart() string {
	snap := s.Store.Snapshot()
	if len(snap.Days) > 0 {
		return snap.Days[0].ID
	}
	return ""
}

func (s *Scheduler) setRun(r Run) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.run = r
}

func (s *Scheduler) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.run.Status == RunActive {
		s.run.Status = RunComplete
	}
}
