package weeknav

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"tableflip.dev/cadence/pkg/calendar"
)

const (
	// DayIDLayout is the normalized day id format.
	DayIDLayout = "2006-01-02"
	// DefaultTime is the time label used when nothing better is known.
	DefaultTime = "9:00 AM"
)

var defaultSuggestedTimes = []string{"9:00 AM", "12:00 PM", "5:00 PM"}

// WeekStart returns the Monday of the week containing t, truncated to
// midnight in t's location.
func WeekStart(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(t.Weekday()) + 6) % 7 // Monday == 0
	return t.AddDate(0, 0, -offset)
}

// DayID renders the normalized id for a date.
func DayID(t time.Time) string {
	return t.Format(DayIDLayout)
}

// ParseDayID parses a normalized day id back into a date.
func ParseDayID(id string) (time.Time, error) {
	return time.Parse(DayIDLayout, id)
}

// DayLabel renders the short weekday label shown on day headers.
func DayLabel(t time.Time) string {
	return t.Format("Mon")
}

// DateLabel renders the human date label carried on drafts.
func DateLabel(t time.Time) string {
	return t.Format("Jan 2")
}

// RangeLabel renders the display label for the week starting at start.
func RangeLabel(start time.Time) string {
	end := start.AddDate(0, 0, 6)
	if start.Month() == end.Month() {
		return fmt.Sprintf("%s – %d, %d", start.Format("Jan 2"), end.Day(), end.Year())
	}
	return fmt.Sprintf("%s – %s, %d", start.Format("Jan 2"), end.Format("Jan 2"), end.Year())
}

// BuildWeek constructs the seven calendar days for the week containing t,
// with empty slot lists and default suggested times.
func BuildWeek(t time.Time) []calendar.Day {
	start := WeekStart(t)
	days := make([]calendar.Day, 0, 7)
	for i := 0; i < 7; i++ {
		d := start.AddDate(0, 0, i)
		days = append(days, calendar.Day{
			ID:             DayID(d),
			Label:          DayLabel(d),
			DateLabel:      DateLabel(d),
			SuggestedTimes: append([]string(nil), defaultSuggestedTimes...),
		})
	}
	return days
}

// Navigator builds week structures and caches them keyed by week start so
// stepping forward and back does not require re-fetching seed data. The
// cached days retain whatever slots the caller stored before navigating
// away.
type Navigator struct {
	mu      sync.Mutex
	current time.Time
	weeks   map[string][]calendar.Day
}

// NewNavigator creates a navigator positioned on the week containing t.
func NewNavigator(t time.Time) *Navigator {
	return &Navigator{
		current: WeekStart(t),
		weeks:   make(map[string][]calendar.Day),
	}
}

// Current returns the active week start.
func (n *Navigator) Current() time.Time {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Week returns the day set for the active week, building it on first use.
func (n *Navigator) Week() []calendar.Day {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.weekLocked()
}

// Remember stores the day set (including populated slots) for the active
// week so it survives navigation.
func (n *Navigator) Remember(days []calendar.Day) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.weeks[DayID(n.current)] = days
}

// Step moves the active week by delta weeks and returns the day set for
// the new position, served from cache when previously built.
func (n *Navigator) Step(delta int) []calendar.Day {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = n.current.AddDate(0, 0, 7*delta)
	return n.weekLocked()
}

func (n *Navigator) weekLocked() []calendar.Day {
	key := DayID(n.current)
	if days, ok := n.weeks[key]; ok {
		return days
	}
	days := BuildWeek(n.current)
	n.weeks[key] = days
	return days
}

// ParseHour extracts the hour (0-23) from a time label like "9:00 AM" or
// "14:30". It returns false for labels it cannot understand.
func ParseHour(label string) (int, bool) {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return 0, false
	}
	upper := strings.ToUpper(trimmed)
	meridiem := ""
	for _, suffix := range []string{"AM", "PM"} {
		if strings.HasSuffix(upper, suffix) {
			meridiem = suffix
			upper = strings.TrimSpace(strings.TrimSuffix(upper, suffix))
			break
		}
	}
	hourPart := upper
	if idx := strings.Index(upper, ":"); idx >= 0 {
		hourPart = upper[:idx]
	}
	hour, err := strconv.Atoi(strings.TrimSpace(hourPart))
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	switch meridiem {
	case "PM":
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return 0, false
	}
	return hour, true
}

// FormatHour renders an hour (0-23) as a 12-hour clock label.
func FormatHour(hour int) string {
	hour = ((hour % 24) + 24) % 24
	meridiem := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		display = hour - 12
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:00 %s", display, meridiem)
}

// ResolveTimestamp combines a day id and a time label into an ISO
// timestamp, defaulting the hour when the label does not parse.
func ResolveTimestamp(dayID, timeLabel string) (string, error) {
	day, err := ParseDayID(dayID)
	if err != nil {
		return "", err
	}
	hour, ok := ParseHour(timeLabel)
	if !ok {
		hour, _ = ParseHour(DefaultTime)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC).Format(time.RFC3339), nil
}
