// Command ls-sunpos computes the Sun's altitude and azimuth for an observer.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-sunpos/internal/config"
	"github.com/litescript/ls-sunpos/internal/geo"
	"github.com/litescript/ls-sunpos/internal/logging"
)

// app holds flag values and the state resolved before each command runs.
type app struct {
	in  io.Reader
	out io.Writer
	err io.Writer
	now func() time.Time

	envFile   string
	utcOffset string
	logLevel  string
	lat       string
	lon       string
	name      string
	logFile   string

	cfg    config.Config
	logger *logging.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, err: errOut, now: time.Now}

	root := &cobra.Command{
		Use:   "ls-sunpos",
		Short: "Solar altitude and azimuth calculator",
		Long: `ls-sunpos computes the apparent altitude and azimuth of the Sun for an observer
given in degrees/minutes/seconds and a civil timestamp at a fixed UTC offset.

Without a subcommand it starts an interactive session.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runSession,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.envFile, "env-file", "", "Read settings from this .env file (default ./.env if present)")
	pf.StringVar(&a.utcOffset, "utc-offset", "", "Civil time offset east of UT, in seconds or ±HH:MM (default +08:00)")
	pf.StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.StringVar(&a.lat, "lat", "", `Observer latitude, e.g. "39 54 26 N"`)
	pf.StringVar(&a.lon, "lon", "", `Observer longitude, e.g. "116 23 30 E"`)
	pf.StringVar(&a.name, "name", "", "Label for the observer site")
	pf.StringVar(&a.logFile, "log-file", "", "Append logs here while the full-screen session runs (default: discard)")

	root.AddCommand(
		a.sessionCmd(),
		a.positionCmd(),
		a.traceCmd(),
		a.eventsCmd(),
		a.referenceCmd(),
		a.versionCmd(),
	)
	return root
}

// setup merges defaults, .env, environment and flags, then builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.envFile)
	if err != nil {
		return err
	}

	if a.utcOffset != "" {
		off, err := config.ParseOffset(a.utcOffset)
		if err != nil {
			return fmt.Errorf("--utc-offset: %w", err)
		}
		cfg.UTCOffsetSeconds = off
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.lat != "" {
		cfg.Latitude = a.lat
	}
	if a.lon != "" {
		cfg.Longitude = a.lon
	}
	if a.name != "" {
		cfg.Name = a.name
	}
	if a.logFile != "" {
		cfg.LogFile = a.logFile
	}

	a.cfg = cfg
	a.logger = logging.New(cfg.Level())
	a.logger.SetOutput(a.err)
	a.logger.Debug("config: offset=%s lat=%q lon=%q interval=%s",
		geo.FormatOffset(cfg.UTCOffsetSeconds), cfg.Latitude, cfg.Longitude, cfg.TraceInterval)
	return nil
}

// observer returns the configured observer or a flag-naming error.
func (a *app) observer() (geo.ObserverLocation, error) {
	if !a.cfg.HasObserver() {
		return geo.ObserverLocation{}, fmt.Errorf("%w: --lat and --lon are required (or set %s and %s)",
			geo.ErrInvalidCoordinate, config.EnvLatitude, config.EnvLongitude)
	}
	return a.cfg.Observer()
}

// instant parses a civil timestamp, defaulting to now.
func (a *app) instant(civil string) (geo.Instant, error) {
	if civil == "" {
		return geo.InstantFromTime(a.now()), nil
	}
	return geo.NormalizeInstant(civil, a.cfg.UTCOffsetSeconds)
}

// civilDay returns local midnight of date (YYYY-MM-DD), defaulting to today.
func (a *app) civilDay(date string) (time.Time, error) {
	loc := geo.OffsetZone(a.cfg.UTCOffsetSeconds)
	if date == "" {
		y, m, d := a.now().In(loc).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q does not match YYYY-MM-DD", geo.ErrInvalidTimestamp, date)
	}
	return t, nil
}
