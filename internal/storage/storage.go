package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	ics "github.com/arran4/golang-ical"

	"github.com/iprlic/vern-raspored/internal/calendar"
)

// Sink receives a finished calendar and reports where it went.
type Sink interface {
	SaveCalendar(owner string, cal *ics.Calendar) (string, error)
}

// ErrInvalidOwner is returned for owner names that cannot be used as a file name.
var ErrInvalidOwner = errors.New("invalid calendar owner")

// Storage handles persistence of calendars
type Storage struct {
	dir string
}

// New creates a new Storage instance
func New(dir string) (*Storage, error) {
	if dir == "" {
		dir = "."
	}

	// Expand ~ to home directory
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Storage{dir: dir}, nil
}

// Dir returns the resolved output directory.
func (s *Storage) Dir() string {
	return s.dir
}

// CalendarPath returns the file the owner's calendar is written to.
func (s *Storage) CalendarPath(owner string) (string, error) {
	if owner == "" || owner == "." || owner == ".." || strings.ContainsAny(owner, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidOwner, owner)
	}
	return filepath.Join(s.dir, owner+".ics"), nil
}

// SaveCalendar writes cal to <dir>/<owner>.ics, replacing any previous file.
func (s *Storage) SaveCalendar(owner string, cal *ics.Calendar) (string, error) {
	path, err := s.CalendarPath(owner)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(calendar.Serialize(cal)), 0644); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}

	return path, nil
}

// StdoutPath is the path Stdout reports for printed calendars.
const StdoutPath = "-"

// Stdout prints calendars instead of storing them.
type Stdout struct {
	W io.Writer
}

// SaveCalendar writes cal to the underlying writer (os.Stdout when unset).
func (s Stdout) SaveCalendar(owner string, cal *ics.Calendar) (string, error) {
	w := s.W
	if w == nil {
		w = os.Stdout
	}
	if err := calendar.Write(w, cal); err != nil {
		return "", fmt.Errorf("printing calendar: %w", err)
	}
	return StdoutPath, nil
}
