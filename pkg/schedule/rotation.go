package schedule

import (
	"fmt"
	"time"

	"tableflip.dev/cadence/pkg/weeknav"
)

// Rotation is the fixed weekday→platform assignment used by auto-sort and
// external drops. Days absent from the map fall back to the primary
// platform; the newsletter day is excluded from seed rotation entirely.
type Rotation struct {
	Platforms     map[time.Weekday]string
	NewsletterDay time.Weekday
	// NewsletterTime is the fixed time label for the weekly newsletter slot.
	NewsletterTime string
}

// DefaultRotation alternates the two organic platforms across the week and
// reserves Sunday for the newsletter.
func DefaultRotation() Rotation {
	return Rotation{
		Platforms: map[time.Weekday]string{
			time.Monday:    "instagram",
			time.Tuesday:   "tiktok",
			time.Wednesday: "instagram",
			time.Thursday:  "tiktok",
			time.Friday:    "instagram",
			time.Saturday:  "tiktok",
		},
		NewsletterDay:  time.Sunday,
		NewsletterTime: "8:00 AM",
	}
}

// PrimaryPlatform returns the fallback platform for unmapped days.
func (r Rotation) PrimaryPlatform() string {
	for _, wd := range []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	} {
		if p, ok := r.Platforms[wd]; ok {
			return p
		}
	}
	return ""
}

// PlatformForDay resolves the platform for a normalized day id, defaulting
// to the primary platform when the day is unmapped or unparsable.
func (r Rotation) PlatformForDay(dayID string) string {
	t, err := weeknav.ParseDayID(dayID)
	if err != nil {
		return r.PrimaryPlatform()
	}
	if p, ok := r.Platforms[t.Weekday()]; ok {
		return p
	}
	return r.PrimaryPlatform()
}

// IsNewsletterDay reports whether the day id lands on the newsletter day.
func (r Rotation) IsNewsletterDay(dayID string) bool {
	t, err := weeknav.ParseDayID(dayID)
	if err != nil {
		return false
	}
	return t.Weekday() == r.NewsletterDay
}

// SeededDraftID derives the deterministic placeholder id for a day/seed
// pair. Re-running auto-sort over the same pairing reproduces the same id,
// which is what keeps seeding idempotent.
func SeededDraftID(dayID, seedID string) string {
	return fmt.Sprintf("seeded-%s-%s", dayID, seedID)
}

// DroppedDraftID builds a unique id for a manually dropped seed card. The
// timestamp suffix keeps repeated drops of the same card distinct.
func DroppedDraftID(now time.Time) string {
	return fmt.Sprintf("seeded-%d", now.UnixNano())
}
