package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/iprlic/vern-raspored/internal/schedule"
	"github.com/iprlic/vern-raspored/internal/storage"
)

// startLayout renders class start times in the summary table.
const startLayout = "Mon 02.01.2006. 15:04"

// Summary describes a finished run
type Summary struct {
	Owner    string
	Path     string
	Weeks    int
	From     time.Time
	Classes  []schedule.Class
	Location *time.Location
}

// WriteSummary prints the scraped classes as a table followed by the output path.
func WriteSummary(w io.Writer, s *Summary) error {
	if len(s.Classes) == 0 {
		if _, err := fmt.Fprintf(w, "No classes found in %d weeks from %s.\n", s.Weeks, s.From.Format(time.DateOnly)); err != nil {
			return err
		}
	} else {
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.AppendHeader(table.Row{"Week", "Start", "Duration", "Class", "Type", "Location"})

		for _, class := range sortByStart(s.Classes) {
			start := class.DateTime
			if s.Location != nil {
				start = start.In(s.Location)
			}
			t.AppendRow(table.Row{
				class.Week,
				start.Format(startLayout),
				class.Duration().String(),
				class.Name,
				class.Type,
				class.Location,
			})
		}

		t.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d classes", len(s.Classes))})
		t.SetStyle(table.StyleRounded)
		t.Render()
	}

	if s.Path == storage.StdoutPath {
		_, err := fmt.Fprintf(w, "Calendar for %s printed to stdout\n", s.Owner)
		return err
	}
	_, err := fmt.Fprintf(w, "Calendar for %s written to %s\n", s.Owner, s.Path)
	return err
}
