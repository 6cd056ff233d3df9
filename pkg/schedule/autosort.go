package schedule

import (
	"tableflip.dev/cadence/pkg/calendar"
	"tableflip.dev/cadence/pkg/catalog"
	"tableflip.dev/cadence/pkg/draft"
	"tableflip.dev/cadence/pkg/weeknav"
)

const (
	// fallbackSeedCap bounds how many unselected signals auto-sort will
	// pull in when the user selected none.
	fallbackSeedCap = 6

	// NewsletterFormat marks the weekly newsletter slot.
	NewsletterFormat = "newsletter"
)

// AutoSort distributes the selected seeds across the visible week as
// placeholder drafts, one per rotation day, plus a single newsletter draft
// on the newsletter day. Placeholder ids derive from the day/seed pair, so
// re-running over the same selection never duplicates a slot.
func AutoSort(store *calendar.Store, seeds []catalog.Seed, rotation Rotation) int {
	snap := store.Snapshot()

	pool := selectedSeeds(seeds, snap.SelectedSeeds)
	if len(pool) == 0 {
		pool = fallbackSeeds(seeds, fallbackSeedCap)
	}

	created := 0
	cursor := 0
	for _, day := range snap.Days {
		if rotation.IsNewsletterDay(day.ID) {
			if !hasNewsletter(day) {
				store.AddDraft(day.ID, newsletterDraft(day, rotation))
				created++
			}
			continue
		}
		if len(pool) == 0 {
			continue
		}
		seed := pool[cursor%len(pool)]
		cursor++
		id := SeededDraftID(day.ID, seed.ID)
		if hasSlot(day, id) {
			continue
		}
		store.AddDraft(day.ID, seededDraft(id, day, seed, rotation))
		created++
	}
	return created
}

func seededDraft(id string, day calendar.Day, seed catalog.Seed, rotation Rotation) *draft.Draft {
	d := draft.New(id, seed.Title, firstSuggestedTime(day), day.DateLabel)
	d.Platforms = []string{rotation.PlatformForDay(day.ID)}
	d.SeedTrendID = seed.ID
	switch seed.Source() {
	case catalog.SourceQuestion:
		d.Tags = append(d.Tags, "question")
	case catalog.SourceEvent:
		d.Tags = append(d.Tags, "event")
	}
	return d
}

func newsletterDraft(day calendar.Day, rotation Rotation) *draft.Draft {
	d := draft.New(SeededDraftID(day.ID, NewsletterFormat), "Weekly newsletter", rotation.NewsletterTime, day.DateLabel)
	d.Status = draft.StatusDraft
	d.Format = NewsletterFormat
	d.Platforms = []string{"email"}
	return d
}

func firstSuggestedTime(day calendar.Day) string {
	if len(day.SuggestedTimes) > 0 {
		return day.SuggestedTimes[0]
	}
	return weeknav.DefaultTime
}

func hasNewsletter(day calendar.Day) bool {
	for _, d := range day.Slots {
		if d.Format == NewsletterFormat {
			return true
		}
	}
	return false
}

func hasSlot(day calendar.Day, id string) bool {
	for _, d := range day.Slots {
		if d.ID == id {
			return true
		}
	}
	return false
}

func selectedSeeds(seeds []catalog.Seed, selected []string) []catalog.Seed {
	if len(selected) == 0 {
		return nil
	}
	indexed := catalog.ByID(seeds)
	out := make([]catalog.Seed, 0, len(selected))
	for _, id := range selected {
		if s, ok := indexed[id]; ok {
			out = append(out, s)
		}
	}
	return out
}

func fallbackSeeds(seeds []catalog.Seed, cap int) []catalog.Seed {
	if len(seeds) == 0 {
		return nil
	}
	if len(seeds) > cap {
		seeds = seeds[:cap]
	}
	return append([]catalog.Seed(nil), seeds...)
}

// NextOpenSlot computes the insertion time for content landing on a day
// that may already be busy: two hours past the latest existing slot,
// wrapping past midnight, or the fallback label when the day is empty.
func NextOpenSlot(day calendar.Day, fallback string) string {
	latest := -1
	for _, d := range day.Slots {
		if h, ok := weeknav.ParseHour(d.Time); ok && h > latest {
			latest = h
		}
	}
	if latest < 0 {
		if fallback != "" {
			return fallback
		}
		return weeknav.DefaultTime
	}
	return weeknav.FormatHour((latest + 2) % 24)
}
