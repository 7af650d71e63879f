package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/iprlic/vern-raspored/internal/config"
	"github.com/iprlic/vern-raspored/internal/portal"
	"github.com/iprlic/vern-raspored/internal/portal/portaltest"
	"github.com/iprlic/vern-raspored/internal/schedule"
)

type harness struct {
	server *portaltest.Server
	cfg    config.Config
	dir    string
	stdin  *strings.Reader
	stdout bytes.Buffer
	stderr bytes.Buffer
	now    time.Time
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv(config.EnvUsername, "")
	t.Setenv(config.EnvPassword, "")

	server := portaltest.NewServer("jdoe", "secret")
	t.Cleanup(server.Close)

	loc, err := schedule.LoadLocation(schedule.DefaultTimezone)
	require.NoError(t, err)

	dir := t.TempDir()
	cfg := config.Default()
	cfg.BaseURL = server.BaseURL()
	cfg.OutputDir = dir
	cfg.ErrorLog = filepath.Join(dir, "errors.log")

	return &harness{
		server: server,
		cfg:    cfg,
		dir:    dir,
		stdin:  strings.NewReader(""),
		// A Wednesday, so the scrape starts on Monday 03.06.2024.
		now: time.Date(2024, 6, 5, 12, 0, 0, 0, loc),
	}
}

func (h *harness) run(args ...string) error {
	cmd := NewRootCmd(Deps{
		Stdin:      h.stdin,
		Stdout:     &h.stdout,
		Stderr:     &h.stderr,
		Now:        func() time.Time { return h.now },
		LoadConfig: func() (config.Config, error) { return h.cfg, nil },
	})
	cmd.SetArgs(args)
	return cmd.ExecuteContext(context.Background())
}

var algorithms = portaltest.Row{
	Date:      "03.06.2024.",
	Time:      "10:00",
	Location:  "A101",
	Professor: "J. Smith",
	Name:      "Algorithms",
	Type:      "Lecture",
	Info:      "2 ects",
}

func TestRun_EndToEnd(t *testing.T) {
	h := newHarness(t)
	h.server.AddWeek("ponedjeljak, 03. 06. 2024.", algorithms)

	err := h.run("--username", "jdoe", "--password", "secret", "--weeks", "1", "--wait", "0")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(h.dir, "jdoe.ics"))
	require.NoError(t, err)
	require.Equal(t, bytes.Count(data, []byte("\n")), bytes.Count(data, []byte("\r\n")), "every line must end in CRLF")

	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 1)
	event := events[0]

	start, err := event.GetStartAt()
	require.NoError(t, err)
	require.True(t, start.Equal(time.Date(2024, 6, 3, 10, 0, 0, 0, h.now.Location())), "start = %v", start)

	end, err := event.GetEndAt()
	require.NoError(t, err)
	require.Equal(t, 90*time.Minute, end.Sub(start))

	require.Equal(t, "A101", ics.FromText(event.GetProperty(ics.ComponentPropertyLocation).Value))
	require.Equal(t, "J. Smith, Lecture", ics.FromText(event.GetProperty(ics.ComponentPropertyDescription).Value))
	require.Equal(t, "Algorithms", ics.FromText(event.GetProperty(ics.ComponentPropertySummary).Value))

	require.Len(t, h.server.Posts(), 1)
	require.Contains(t, h.stdout.String(), "Algorithms")
	require.Contains(t, h.stdout.String(), "jdoe.ics")
}

func TestRun_WalksRequestedWeeks(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("--username", "jdoe", "--password", "secret", "--weeks", "3", "--wait", "0"))

	posts := h.server.Posts()
	require.Len(t, posts, 3)
	require.Equal(t, "ponedjeljak, 03. 06. 2024.", posts[0].Label)
	require.Equal(t, "ponedjeljak, 10. 06. 2024.", posts[1].Label)
	require.Equal(t, "ponedjeljak, 17. 06. 2024.", posts[2].Label)
	require.Contains(t, h.stdout.String(), "No classes found")
}

func TestRun_PromptsForCredentials(t *testing.T) {
	h := newHarness(t)
	h.stdin = strings.NewReader("jdoe\nsecret\n")

	require.NoError(t, h.run("--weeks", "0", "--wait", "0"))

	require.Contains(t, h.stderr.String(), "Username: ")
	require.Contains(t, h.stderr.String(), "Password: ")
	require.FileExists(t, filepath.Join(h.dir, "jdoe.ics"))
}

func TestRun_CredentialsFromEnvironment(t *testing.T) {
	h := newHarness(t)
	t.Setenv(config.EnvUsername, "jdoe")
	t.Setenv(config.EnvPassword, "secret")

	require.NoError(t, h.run("--weeks", "0", "--wait", "0"))

	require.Empty(t, h.stderr.String())
	require.Equal(t, 1, h.server.Logins())
}

func TestRun_MissingUsername(t *testing.T) {
	h := newHarness(t)

	err := h.run("--password", "secret", "--weeks", "0")
	require.Error(t, err)
	require.Zero(t, h.server.Logins())
}

func TestRun_LoginFailed(t *testing.T) {
	h := newHarness(t)

	err := h.run("--username", "jdoe", "--password", "wrong", "--weeks", "1", "--wait", "0")
	require.ErrorIs(t, err, portal.ErrLoginFailed)
	require.NoFileExists(t, filepath.Join(h.dir, "jdoe.ics"))

	errorLog, err := os.ReadFile(h.cfg.ErrorLog)
	require.NoError(t, err)
	require.Contains(t, string(errorLog), "Scrape failed")
}

func TestRun_DryRun(t *testing.T) {
	h := newHarness(t)
	h.cfg.DryRun = true
	h.server.AddWeek("ponedjeljak, 03. 06. 2024.", algorithms)

	require.NoError(t, h.run("--username", "jdoe", "--password", "secret", "--weeks", "1", "--wait", "0"))

	require.Contains(t, h.stdout.String(), "BEGIN:VCALENDAR")
	require.Contains(t, h.stderr.String(), "Algorithms")
	require.Contains(t, h.stderr.String(), "printed to stdout")
	require.NoFileExists(t, filepath.Join(h.dir, "jdoe.ics"))
}

func TestRun_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "negative weeks", args: []string{"--weeks", "-1"}},
		{name: "negative wait", args: []string{"--wait", "-0.5"}},
		{name: "not a number", args: []string{"--weeks", "many"}},
		{name: "positional argument", args: []string{"extra"}},
		{name: "unknown flag", args: []string{"--format", "json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t)
			require.Error(t, h.run(append([]string{"--username", "jdoe", "--password", "secret"}, tt.args...)...))
			require.Zero(t, h.server.Logins())
		})
	}
}

func TestNewRootCmd_Defaults(t *testing.T) {
	cmd := NewRootCmd(DefaultDeps())

	weeks, err := cmd.Flags().GetInt("weeks")
	require.NoError(t, err)
	require.Equal(t, DefaultWeeks, weeks)

	wait, err := cmd.Flags().GetFloat64("wait")
	require.NoError(t, err)
	require.Equal(t, DefaultWaitSeconds, wait)

	var names []string
	cmd.Flags().VisitAll(func(f *pflag.Flag) { names = append(names, f.Name) })
	require.ElementsMatch(t, []string{"username", "password", "weeks", "wait"}, names)
}
