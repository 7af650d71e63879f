package calendar

import (
	"io"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/iprlic/vern-raspored/internal/schedule"
)

// Option configures Build.
type Option func(*builder)

type builder struct {
	now func() time.Time
}

// WithNow fixes the DTSTAMP of every event to now.
func WithNow(now time.Time) Option {
	return func(b *builder) {
		b.now = func() time.Time { return now }
	}
}

// WithClock sets the function DTSTAMP is read from. It is called once per Build.
func WithClock(clock func() time.Time) Option {
	return func(b *builder) {
		b.now = clock
	}
}

// Build creates a calendar owned by owner with one event per class.
func Build(owner string, classes []schedule.Class, opts ...Option) *ics.Calendar {
	b := builder{now: time.Now}
	for _, opt := range opts {
		opt(&b)
	}
	stamp := b.now()

	cal := ics.NewCalendar()
	cal.SetProductId(owner)
	cal.SetXWRCalName(owner)
	cal.SetMethod(ics.MethodPublish)

	for _, class := range classes {
		addClass(cal, class, stamp)
	}
	return cal
}

func addClass(cal *ics.Calendar, class schedule.Class, stamp time.Time) {
	event := cal.AddEvent(class.ID)
	event.SetDtStampTime(stamp)
	event.SetSummary(class.Name)
	event.SetLocation(class.Location)
	event.SetStartAt(class.DateTime)
	event.SetEndAt(class.End())
	event.SetDescription(class.Description())
}

// Serialize renders cal as iCalendar text with CRLF line endings.
func Serialize(cal *ics.Calendar) string {
	return cal.Serialize(ics.WithNewLineWindows)
}

// Write streams cal to w with CRLF line endings.
func Write(w io.Writer, cal *ics.Calendar) error {
	return cal.SerializeTo(w, ics.WithNewLineWindows)
}
