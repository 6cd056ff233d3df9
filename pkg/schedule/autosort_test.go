package schedule

import (
	"testing"

	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/draft"
)

func weekDays() []calendar.Day {
	return []calendar.Day{
		{ID: "2026-01-05", Label: "Mon", DateLabel: "Jan 5", SuggestedTimes: []string{"9:00 AM"}},
		{ID: "2026-01-06", Label: "Tue", DateLabel: "Jan 6", SuggestedTimes: []string{"9:00 AM"}},
		{ID: "2026-01-07", Label: "Wed", DateLabel: "Jan 7", SuggestedTimes: []string{"9:00 AM"}},
		{ID: "2026-01-08", Label: "Thu", DateLabel: "Jan 8", SuggestedTimes: []string{"9:00 AM"}},
		{ID: "2026-01-09", Label: "Fri", DateLabel: "Jan 9", SuggestedTimes: []string{"9:00 AM"}},
		{ID: "2026-01-10", Label: "Sat", DateLabel: "Jan 10", SuggestedTimes: []string{"9:00 AM"}},
		{ID: "2026-01-11", Label: "Sun", DateLabel: "Jan 11", SuggestedTimes: []string{"9:00 AM"}},
	}
}

func seedCatalogue() []catalog.Seed {
	return []catalog.Seed{
		{ID: "t1", Title: "Trend one"},
		{ID: "t2", Title: "Trend two"},
		{ID: "q1", Title: "Question one", Tags: []string{"question"}},
		{ID: "e1", Title: "Event one", Tags: []string{"event"}},
	}
}

func TestAutoSortRoundRobin(t *testing.T) {
	store := calendar.NewStore("test")
	store.SetDays(weekDays())
	store.ToggleTrend("t1", 12)
	store.ToggleTrend("t2", 12)

	created := AutoSort(store, seedCatalogue(), DefaultRotation())
	if created != 7 {
		t.Fatalf("expected 7 created drafts (6 seeded + newsletter), got %d", created)
	}

	snap := store.Snapshot()
	wantSeeds := []string{"t1", "t2", "t1", "t2", "t1", "t2"}
	idx := 0
	for _, day := range snap.Days[:6] {
		if len(day.Slots) != 1 {
			t.Fatalf("day %s: expected 1 slot, got %d", day.ID, len(day.Slots))
		}
		d := day.Slots[0]
		if d.SeedTrendID != wantSeeds[idx] {
			t.Fatalf("day %s: expected seed %s, got %s", day.ID, wantSeeds[idx], d.SeedTrendID)
		}
		if d.Status != draft.StatusPlaceholder {
			t.Fatalf("day %s: expected placeholder status, got %s", day.ID, d.Status)
		}
		if d.Time != "9:00 AM" {
			t.Fatalf("day %s: expected first suggested time, got %s", day.ID, d.Time)
		}
		idx++
	}

	sunday := snap.Days[6]
	if len(sunday.Slots) != 1 {
		t.Fatalf("newsletter day: expected 1 slot, got %d", len(sunday.Slots))
	}
	nl := sunday.Slots[0]
	if nl.Format != NewsletterFormat || nl.Status != draft.StatusDraft || nl.SeedTrendID != "" {
		t.Fatalf("unexpected newsletter draft: %+v", nl)
	}
}

func TestAutoSortIdempotent(t *testing.T) {
	store := calendar.NewStore("test")
	store.SetDays(weekDays())
	store.ToggleTrend("t1", 12)
	store.ToggleTrend("t2", 12)
	rotation := DefaultRotation()

	first := AutoSort(store, seedCatalogue(), rotation)
	second := AutoSort(store, seedCatalogue(), rotation)
	if second != 0 {
		t.Fatalf("expected second run to create nothing, got %d", second)
	}

	snap := store.Snapshot()
	total := 0
	for _, day := range snap.Days {
		total += len(day.Slots)
	}
	if total != first {
		t.Fatalf("expected %d slots after re-run, got %d", first, total)
	}
}

func TestAutoSortFallbackSeeds(t *testing.T) {
	store := calendar.NewStore("test")
	store.SetDays(weekDays())

	created := AutoSort(store, seedCatalogue(), DefaultRotation())
	// 4 available signals rotate over 6 rotation days, plus the newsletter.
	if created != 7 {
		t.Fatalf("expected fallback seeding to fill the week, got %d", created)
	}

	snap := store.Snapshot()
	if got := snap.Days[0].Slots[0].SeedTrendID; got != "t1" {
		t.Fatalf("expected fallback to start with first signal, got %s", got)
	}
}

func TestAutoSortNoSeedsStillPlacesNewsletter(t *testing.T) {
	store := calendar.NewStore("test")
	store.SetDays(weekDays())

	created := AutoSort(store, nil, DefaultRotation())
	if created != 1 {
		t.Fatalf("expected only the newsletter, got %d", created)
	}
}

func TestSeedTypeMarkersCarried(t *testing.T) {
	store := calendar.NewStore("test")
	store.SetDays(weekDays())
	store.ToggleTrend("q1", 12)
	AutoSort(store, seedCatalogue(), DefaultRotation())

	d := store.Snapshot().Days[0].Slots[0]
	if !d.HasTag("question") {
		t.Fatalf("question marker missing from tags: %v", d.Tags)
	}
}

func TestNextOpenSlot(t *testing.T) {
	day := calendar.Day{Slots: []*draft.Draft{
		{ID: "a", Time: "9:00 AM"},
	}}
	if got := NextOpenSlot(day, "9:00 AM"); got != "11:00 AM" {
		t.Fatalf("expected 11:00 AM, got %s", got)
	}

	day.Slots = append(day.Slots, &draft.Draft{ID: "b", Time: "5:00 PM"})
	if got := NextOpenSlot(day, "9:00 AM"); got != "7:00 PM" {
		t.Fatalf("expected 7:00 PM, got %s", got)
	}

	// Wrap past midnight.
	day.Slots = []*draft.Draft{{ID: "c", Time: "11:00 PM"}}
	if got := NextOpenSlot(day, "9:00 AM"); got != "1:00 AM" {
		t.Fatalf("expected 1:00 AM, got %s", got)
	}

	empty := calendar.Day{}
	if got := NextOpenSlot(empty, "2:00 PM"); got != "2:00 PM" {
		t.Fatalf("expected literal fallback, got %s", got)
	}
}

func TestSeededDraftIDDeterministic(t *testing.T) {
	a := SeededDraftID("2026-01-05", "t1")
	b := SeededDraftID("2026-01-05", "t1")
	if a != b {
		t.Fatalf("key function not deterministic: %s vs %s", a, b)
	}
	if a == SeededDraftID("2026-01-06", "t1") {
		t.Fatalf("key function ignores day")
	}
}
