package schedule

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // portal times are Croatian local time regardless of host zoneinfo
)

// Layouts used by the portal.
const (
	// DateTimeLayout matches a row's date and time cells joined by a space, e.g. "03.06.2024. 10:00".
	DateTimeLayout = "02.01.2006. 15:04"
	// unpaddedLayout also accepts single-digit fields such as "3.6.2024. 9:05".
	unpaddedLayout = "2.1.2006. 15:4"
	// weekLabelLayout renders the date part of the puiDatum picker value.
	weekLabelLayout = "02. 01. 2006."
	// DefaultTimezone is the zone the portal reports class times in.
	DefaultTimezone = "Europe/Zagreb"
	// mondayLabel is "Monday" in the portal's Croatian locale.
	mondayLabel = "ponedjeljak, "
)

// LoadLocation loads the named zone, defaulting to DefaultTimezone when name is empty.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseDateTime combines a row's date ("03.06.2024.") and time ("10:00") into an
// instant in loc. Day, month, hour and minute may be written without zero
// padding, and any run of whitespace separates date from time.
func ParseDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	value := strings.Join(strings.Fields(date+" "+clock), " ")

	t, err := time.ParseInLocation(DateTimeLayout, value, loc)
	if err == nil {
		return t, nil
	}
	if t, fallbackErr := time.ParseInLocation(unpaddedLayout, value, loc); fallbackErr == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("parsing class date %q %q: %w", date, clock, err)
}

// MondayOf returns midnight of the Monday in t's week, in t's location.
func MondayOf(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	d := t.AddDate(0, 0, -offset)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, t.Location())
}

// WeekLabel renders the value the schedule's week picker posts for the week
// starting on monday, e.g. "ponedjeljak, 03. 06. 2024.".
func WeekLabel(monday time.Time) string {
	return mondayLabel + monday.Format(weekLabelLayout)
}
