package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/iprlic/vern-raspored/internal/calendar"
	"github.com/iprlic/vern-raspored/internal/config"
	"github.com/iprlic/vern-raspored/internal/logger"
	"github.com/iprlic/vern-raspored/internal/portal"
	"github.com/iprlic/vern-raspored/internal/schedule"
	"github.com/iprlic/vern-raspored/internal/session"
	"github.com/iprlic/vern-raspored/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Flag defaults.
const (
	DefaultWeeks       = 20
	DefaultWaitSeconds = 1.0
)

// Deps are the process resources the command uses.
type Deps struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	// Now is the clock used to pick the starting week and stamp events.
	Now func() time.Time
	// LoadConfig returns the run settings.
	LoadConfig func() (config.Config, error)
}

// DefaultDeps wires the command to the real process.
func DefaultDeps() Deps {
	return Deps{
		Stdin:      os.Stdin,
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		Now:        time.Now,
		LoadConfig: loadConfig,
	}
}

func loadConfig() (config.Config, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Config{}, err
	}
	return config.Load(config.Path())
}

type options struct {
	username string
	password string
	weeks    int
	wait     float64
}

// NewRootCmd creates the root command
func NewRootCmd(deps Deps) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "vern-raspored",
		Short: "Export the VERN student schedule to an iCalendar file",
		Long: `Logs in to the VERN Studomatic portal, reads the weekly class schedule
starting with the current week and writes it to <username>.ics.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts, deps)
		},
	}

	cmd.SetIn(deps.Stdin)
	cmd.SetOut(deps.Stdout)
	cmd.SetErr(deps.Stderr)

	cmd.Flags().StringVar(&opts.username, "username", "", "Studomatic username (prompted if omitted)")
	cmd.Flags().StringVar(&opts.password, "password", "", "Studomatic password (prompted if omitted)")
	cmd.Flags().IntVar(&opts.weeks, "weeks", DefaultWeeks, "Number of weeks to fetch, starting with the current one")
	cmd.Flags().Float64Var(&opts.wait, "wait", DefaultWaitSeconds, "Minimum seconds between requests")

	return cmd
}

// run is the main command logic
func run(ctx context.Context, opts options, deps Deps) error {
	if opts.weeks < 0 {
		return fmt.Errorf("--weeks must not be negative, got %d", opts.weeks)
	}
	if opts.wait < 0 {
		return fmt.Errorf("--wait must not be negative, got %v", opts.wait)
	}

	cfg, err := deps.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// In a dry run stdout carries the calendar itself.
	out := deps.Stdout
	if cfg.DryRun {
		out = deps.Stderr
	}

	closer := logger.Setup(logger.ParseLevel(cfg.LogLevel), out, cfg.ErrorLog)
	defer closer.Close()

	if err := resolveCredentials(&opts, deps); err != nil {
		return err
	}

	summary, err := scrape(ctx, opts, cfg, deps)
	if err != nil {
		logger.Error("Scrape failed", logger.Fields{"username": opts.username}, err)
		return err
	}

	if err := WriteSummary(out, summary); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

func resolveCredentials(opts *options, deps Deps) error {
	prompt := NewPrompter(deps.Stdin, deps.Stderr)

	if opts.username == "" {
		opts.username = strings.TrimSpace(os.Getenv(config.EnvUsername))
	}
	if opts.username == "" {
		name, err := prompt.Line("Username: ")
		if err != nil {
			return fmt.Errorf("reading username: %w", err)
		}
		opts.username = strings.TrimSpace(name)
	}
	if opts.username == "" {
		return errors.New("username is required")
	}

	if opts.password == "" {
		opts.password = os.Getenv(config.EnvPassword)
	}
	if opts.password == "" {
		secret, err := prompt.Secret("Password: ")
		if err != nil {
			return fmt.Errorf("reading password: %w", err)
		}
		opts.password = secret
	}
	return nil
}

func scrape(ctx context.Context, opts options, cfg config.Config, deps Deps) (*Summary, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	enc, err := cfg.Encoding()
	if err != nil {
		return nil, err
	}

	sess, err := session.New(session.Options{
		Wait:       time.Duration(opts.wait * float64(time.Second)),
		Timeout:    cfg.Timeout(),
		UserAgents: cfg.UserAgentProvider(),
		Rewriter:   cfg.Rewriter(),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing session: %w", err)
	}

	p := portal.New(sess, portal.Options{
		BaseURL:        cfg.BaseURL,
		Location:       loc,
		Charset:        enc,
		SkipLoginCheck: cfg.SkipLoginCheck,
	})

	began := time.Now()
	started := deps.Now()
	logger.Info("Started scraper", logger.Fields{
		"username": opts.username,
		"weeks":    opts.weeks,
		"portal":   p.RootURL(),
	})

	if _, err := p.Login(ctx, opts.username, opts.password); err != nil {
		return nil, err
	}

	monday := schedule.MondayOf(started.In(loc))
	classes, err := p.FetchSchedule(ctx, monday, opts.weeks)
	if err != nil {
		return nil, fmt.Errorf("fetching schedule: %w", err)
	}

	cal := calendar.Build(opts.username, classes, calendar.WithNow(started))

	var sink storage.Sink = storage.Stdout{W: deps.Stdout}
	if !cfg.DryRun {
		store, err := storage.New(cfg.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("initializing storage: %w", err)
		}
		sink = store
	}

	path, err := sink.SaveCalendar(opts.username, cal)
	if err != nil {
		return nil, fmt.Errorf("saving calendar: %w", err)
	}

	logger.Info("Saved calendar", logger.Fields{
		"path":    path,
		"classes": len(classes),
	})
	logger.RecordTiming("run", time.Since(began))

	return &Summary{
		Owner:    opts.username,
		Path:     path,
		Weeks:    opts.weeks,
		From:     monday,
		Classes:  classes,
		Location: loc,
	}, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := NewRootCmd(DefaultDeps()).ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
