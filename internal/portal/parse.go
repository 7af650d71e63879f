package portal

import (
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/iprlic/vern-raspored/internal/schedule"
	"github.com/iprlic/vern-raspored/internal/webforms"
)

// RowSelector matches the class rows of the schedule: rows of the tables
// nested in the outer table whose class attribute is exactly "raspored".
const RowSelector = `table[class="raspored"] table tr`

// ErrMalformedRow is wrapped by ParseError when a row does not have the
// expected cell layout.
var ErrMalformedRow = errors.New("malformed schedule row")

// ParseError reports which row of which week could not be parsed.
type ParseError struct {
	Week int
	Row  int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing week %d, row %d: %v", e.Week, e.Row, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Text node positions inside the two cells of a row.
const (
	infoDate = iota
	infoTime
	infoLocation
	infoNodes
)

const (
	descProfessor = 0
	descName      = 2
	descType      = 4
	descInfo      = 5
	descNodes     = 6
)

// ParseWeek extracts every class row of a week page. Rows are numbered from 1
// in errors.
func ParseWeek(doc *goquery.Document, week int, loc *time.Location) ([]schedule.Class, error) {
	classes := make([]schedule.Class, 0)
	var parseErr error

	doc.Find(RowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		class, err := parseRow(row, week, loc)
		if err != nil {
			parseErr = &ParseError{Week: week, Row: i + 1, Err: err}
			return false
		}
		classes = append(classes, class)
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return classes, nil
}

func parseRow(row *goquery.Selection, week int, loc *time.Location) (schedule.Class, error) {
	cells := row.ChildrenFiltered("td")
	if cells.Length() < 2 {
		return schedule.Class{}, fmt.Errorf("%w: %d cells, want 2", ErrMalformedRow, cells.Length())
	}

	info := webforms.TextNodes(cells.Eq(0))
	if len(info) < infoNodes {
		return schedule.Class{}, fmt.Errorf("%w: %d text nodes in first cell, want %d", ErrMalformedRow, len(info), infoNodes)
	}
	desc := webforms.TextNodes(cells.Eq(1))
	if len(desc) < descNodes {
		return schedule.Class{}, fmt.Errorf("%w: %d text nodes in second cell, want %d", ErrMalformedRow, len(desc), descNodes)
	}

	date, clock := info[infoDate], info[infoTime]
	start, err := schedule.ParseDateTime(date, clock, loc)
	if err != nil {
		return schedule.Class{}, err
	}

	units, err := DurationUnits(desc[descInfo])
	if err != nil {
		return schedule.Class{}, err
	}

	return schedule.NewClass(
		week,
		date,
		clock,
		start,
		info[infoLocation],
		desc[descProfessor],
		desc[descName],
		desc[descType],
		desc[descInfo],
		units,
	), nil
}

// DurationUnits reads the class length from the additional-info text. Only its
// first character is a digit count of 45-minute units ("2 ects, blah" is 2).
func DurationUnits(additionalInfo string) (int, error) {
	r, size := utf8.DecodeRuneInString(additionalInfo)
	if size == 0 {
		return 0, fmt.Errorf("%w: empty duration", ErrMalformedRow)
	}
	units, err := strconv.Atoi(string(r))
	if err != nil {
		return 0, fmt.Errorf("%w: duration %q does not start with a digit", ErrMalformedRow, additionalInfo)
	}
	return units, nil
}
