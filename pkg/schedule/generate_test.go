package schedule

import (
	"context"
	"errors"
	"testing"

	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/draft"
	"tableflip.dev/cadence/pkg/stream"
)

type fakeOpener struct {
	events []stream.Event
	err    error

	calls   int
	lastReq stream.Request
}

func (f *fakeOpener) Open(ctx context.Context, req stream.Request) (<-chan stream.Event, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	out := make(chan stream.Event, len(f.events)+1)
	for _, ev := range f.events {
		out <- ev
	}
	close(out)
	return out, nil
}

func seededStore(t *testing.T) *calendar.Store {
	t.Helper()
	store := calendar.NewStore("test")
	store.SetDays(weekDays())
	store.ToggleTrend("t1", 12)
	store.ToggleTrend("t2", 12)
	AutoSort(store, seedCatalogue(), DefaultRotation())
	return store
}

func TestGenerateEmptyBatchFailsFast(t *testing.T) {
	store := calendar.NewStore("test")
	store.SetDays(weekDays())
	opener := &fakeOpener{}
	s := NewScheduler(store, opener, DefaultRotation())

	err := s.Generate(context.Background())
	if !errors.Is(err, ErrNothingToGenerate) {
		t.Fatalf("expected ErrNothingToGenerate, got %v", err)
	}
	if opener.calls != 0 {
		t.Fatalf("dispatch opened a network call for an empty batch")
	}
	if run := s.Run(); run.Status != RunError {
		t.Fatalf("expected error run status, got %s", run.Status)
	}
}

func TestGenerateMarksStreamingAndBuildsBatch(t *testing.T) {
	store := seededStore(t)
	opener := &fakeOpener{events: []stream.Event{{Type: stream.KindComplete}}}
	s := NewScheduler(store, opener, DefaultRotation())
	s.BrandProfileID = "brand-1"

	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opener.lastReq.Placements) != 6 {
		t.Fatalf("expected 6 placements, got %d", len(opener.lastReq.Placements))
	}
	if opener.lastReq.BrandProfileID != "brand-1" {
		t.Fatalf("brand not carried: %+v", opener.lastReq)
	}
	if opener.lastReq.WeekStart != "2026-01-05" {
		t.Fatalf("unexpected week start %s", opener.lastReq.WeekStart)
	}
	for _, p := range opener.lastReq.Placements {
		if p.ScheduledAt == "" || p.Platform == "" || p.Source == "" {
			t.Fatalf("incomplete placement request: %+v", p)
		}
	}
	if run := s.Run(); run.Status != RunComplete {
		t.Fatalf("expected complete run, got %+v", run)
	}
}

func TestGenerateAppliesPlacementsAroundErrors(t *testing.T) {
	store := seededStore(t)
	snap := store.Snapshot()
	p1 := snap.Days[0].Slots[0].ID
	p2 := snap.Days[1].Slots[0].ID

	opener := &fakeOpener{events: []stream.Event{
		{Type: stream.KindProgress, Completed: 1, Total: 2},
		{Type: stream.KindPlacement, Placement: &stream.Placement{
			ID: p1, DayID: "2026-01-05", Caption: "caption one",
			Schedule: stream.Schedule{Time: "10:00 AM", Adjusted: true},
		}},
		{Type: stream.KindError, Message: "x"},
		{Type: stream.KindPlacement, Placement: &stream.Placement{
			ID: p2, DayID: "2026-01-06", Caption: "caption two",
			Schedule: stream.Schedule{Time: "9:00 AM"},
		}},
	}}
	s := NewScheduler(store, opener, DefaultRotation())

	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d1, _, _ := store.FindDraft(p1)
	if d1.Status != draft.StatusDraft || d1.Caption != "caption one" {
		t.Fatalf("first placement not applied: %+v", d1)
	}
	if d1.Time != "10:00 AM" || !d1.Adjusted {
		t.Fatalf("schedule not applied: %+v", d1)
	}

	d2, _, _ := store.FindDraft(p2)
	if d2.Status != draft.StatusDraft || d2.Caption != "caption two" {
		t.Fatalf("placement after error event not applied: %+v", d2)
	}

	run := s.Run()
	if run.Status != RunError || run.Err != "x" {
		t.Fatalf("expected error run with message x, got %+v", run)
	}
}

func TestRegenerateRevertsOnTransportFailure(t *testing.T) {
	store := seededStore(t)
	id := store.Snapshot().Days[0].Slots[0].ID

	opener := &fakeOpener{err: errors.New("connection refused")}
	s := NewScheduler(store, opener, DefaultRotation())

	if err := s.Regenerate(context.Background(), id); err == nil {
		t.Fatalf("expected transport error")
	}

	d, _, _ := store.FindDraft(id)
	if d.Status != draft.StatusDraft {
		t.Fatalf("expected revert to draft, got %s", d.Status)
	}
}

func TestGenerateLeavesBatchStreamingOnTransportFailure(t *testing.T) {
	store := seededStore(t)

	opener := &fakeOpener{err: errors.New("connection refused")}
	s := NewScheduler(store, opener, DefaultRotation())

	if err := s.Generate(context.Background()); err == nil {
		t.Fatalf("expected transport error")
	}

	// Full-batch runs keep in-flight drafts streaming for a manual retry.
	snap := store.Snapshot()
	for _, day := range snap.Days[:6] {
		if got := day.Slots[0].Status; got != draft.StatusStreaming {
			t.Fatalf("day %s: expected streaming, got %s", day.ID, got)
		}
	}
	if run := s.Run(); run.Status != RunError {
		t.Fatalf("expected error run, got %+v", run)
	}
}

func TestPlacementResurrectsDeletedDraft(t *testing.T) {
	store := seededStore(t)
	id := store.Snapshot().Days[0].Slots[0].ID
	store.BulkDeleteDrafts([]string{id})

	opener := &fakeOpener{events: []stream.Event{
		{Type: stream.KindPlacement, Placement: &stream.Placement{
			ID: id, DayID: "2026-01-05", Title: "back again",
			Schedule: stream.Schedule{Time: "9:00 AM"},
		}},
		{Type: stream.KindComplete},
	}}
	s := NewScheduler(store, opener, DefaultRotation())

	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	d, dayID, ok := store.FindDraft(id)
	if !ok {
		t.Fatalf("deleted draft was not resurrected")
	}
	if dayID != "2026-01-05" || d.Status != draft.StatusDraft || d.Title != "back again" {
		t.Fatalf("unexpected resurrected draft: %+v on %s", d, dayID)
	}
}

func TestGhostsDecrementAsPlacementsLand(t *testing.T) {
	store := seededStore(t)
	id := store.Snapshot().Days[0].Slots[0].ID

	opener := &fakeOpener{events: []stream.Event{
		{Type: stream.KindPlacement, Placement: &stream.Placement{
			ID: id, DayID: "2026-01-05",
			Schedule: stream.Schedule{Time: "9:00 AM"},
		}},
		{Type: stream.KindComplete},
	}}
	s := NewScheduler(store, opener, DefaultRotation())
	if err := s.Generate(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.Snapshot().Ghosts["2026-01-05"]; got != 0 {
		t.Fatalf("expected ghost counter drained, got %d", got)
	}
}
