package schedule

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// UnitLength is the length of one duration unit (a school hour).
const UnitLength = 45 * time.Minute

// namespace scopes class IDs so they never collide with other UUIDv5 users.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://eduneta.vern.hr/vern-student/Raspored.aspx"))

// Class represents one scheduled class occurrence
type Class struct {
	ID             string    `json:"id"`
	Week           int       `json:"week"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	DateTime       time.Time `json:"date_time"`
	Location       string    `json:"location"`
	Professor      string    `json:"professor"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	AdditionalInfo string    `json:"additional_info"`
	DurationUnits  int       `json:"duration_units"`
}

// GenerateID creates a deterministic ID for a class based on stable fields
func GenerateID(date, clock, location, name string) string {
	key := strings.Join([]string{date, clock, location, name}, "|")
	return uuid.NewSHA1(namespace, []byte(key)).String()
}

// NewClass creates a Class with its ID populated
func NewClass(week int, date, clock string, dateTime time.Time, location, professor, name, classType, additionalInfo string, units int) Class {
	return Class{
		ID:             GenerateID(date, clock, location, name),
		Week:           week,
		Date:           date,
		Time:           clock,
		DateTime:       dateTime,
		Location:       location,
		Professor:      professor,
		Name:           name,
		Type:           classType,
		AdditionalInfo: additionalInfo,
		DurationUnits:  units,
	}
}

// Duration returns how long the class lasts.
func (c Class) Duration() time.Duration {
	return time.Duration(c.DurationUnits) * UnitLength
}

// End returns the time the class finishes.
func (c Class) End() time.Time {
	return c.DateTime.Add(c.Duration())
}

// Description returns the "professor, type" line shown in calendar entries.
func (c Class) Description() string {
	return c.Professor + ", " + c.Type
}
