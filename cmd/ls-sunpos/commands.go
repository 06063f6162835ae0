package main

import (
	"fmt"
	"io"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/report"
	"github.com/litescript/ls-sunpos/internal/session"
	"github.com/litescript/ls-sunpos/internal/ui"
	"github.com/litescript/ls-sunpos/internal/version"
)

func (a *app) sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Interactive session: enter a location once, then any number of times",
		Args:  cobra.NoArgs,
		RunE:  a.runSession,
	}
}

func (a *app) runSession(cmd *cobra.Command, _ []string) error {
	tui := isTerminal(a.in) && isTerminal(a.out)
	if tui {
		// Before session.New: named loggers copy the output
		closeLog, err := a.redirectLogsForTUI()
		if err != nil {
			return err
		}
		defer closeLog()
	}

	s, err := session.New(a.cfg.UTCOffsetSeconds, a.logger)
	if err != nil {
		return err
	}
	if a.cfg.HasObserver() {
		obs, err := a.observer()
		if err != nil {
			return err
		}
		s.SetObserver(obs)
	}

	if tui {
		a.logger.Debug("starting TUI session")
		p := tea.NewProgram(ui.New(s),
			tea.WithContext(cmd.Context()),
			tea.WithInput(a.in),
			tea.WithOutput(a.out))
		_, err := p.Run()
		return err
	}

	a.logger.Debug("starting line session")
	return session.Run(cmd.Context(), s, a.in, a.out)
}

// redirectLogsForTUI keeps log lines off the screen Bubble Tea is drawing.
// They go to the configured log file, or nowhere.
func (a *app) redirectLogsForTUI() (func() error, error) {
	if a.cfg.LogFile == "" {
		a.logger.SetOutput(io.Discard)
		return func() error { return nil }, nil
	}
	f, err := tea.LogToFileWith(a.cfg.LogFile, "ls-sunpos", a.logger)
	if err != nil {
		return nil, err
	}
	return f.Close, nil
}

func (a *app) positionCmd() *cobra.Command {
	var civil string
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "position",
		Short:   "Altitude and azimuth at one instant",
		Example: `  ls-sunpos position --lat "39 54 26 N" --lon "116 23 30 E" --time "2024-06-21 12:00:00"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs, err := a.observer()
			if err != nil {
				return err
			}
			when, err := a.instant(civil)
			if err != nil {
				return err
			}

			pos, err := astro.SolarPosition(obs, when)
			if err != nil {
				return err
			}
			a.logger.Debug("position at %s: %+v", when, pos)

			if asJSON {
				return report.ExportPosition(obs, when, a.cfg.UTCOffsetSeconds, pos).WriteJSON(a.out)
			}
			return report.WritePosition(a.out, pos)
		},
	}
	cmd.Flags().StringVarP(&civil, "time", "t", "", "Civil time YYYY-MM-DD HH:MM:SS (default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of text")
	return cmd
}

func (a *app) traceCmd() *cobra.Command {
	var date string
	var interval, rows time.Duration
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Sample the Sun's path over one civil day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs, err := a.observer()
			if err != nil {
				return err
			}
			day, err := a.civilDay(date)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = a.cfg.TraceInterval
			}
			if err := astro.ValidateTraceInterval(interval); err != nil {
				return fmt.Errorf("--interval: %w", err)
			}

			start := time.Now()
			trace := astro.ComputeDayTrace(astro.ObserverAt(obs), day, 24*time.Hour, interval)
			a.logger.Debug("trace: %d samples in %v", len(trace.Samples), time.Since(start))

			if asJSON {
				return report.ExportTrace(trace, day.Location()).WriteJSON(a.out)
			}
			report.WriteTraceTable(a.out, trace, day.Location(), rows)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Civil date YYYY-MM-DD (default today)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", astro.DefaultTraceInterval, "Sample spacing")
	cmd.Flags().DurationVar(&rows, "rows", time.Hour, "Table row spacing (0 prints every sample)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of a table")
	return cmd
}

func (a *app) eventsCmd() *cobra.Command {
	var date string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Dawn, sunrise, solar noon, sunset and dusk for one civil day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs, err := a.observer()
			if err != nil {
				return err
			}
			day, err := a.civilDay(date)
			if err != nil {
				return err
			}

			ev := astro.DayEventsFor(astro.ObserverAt(obs), day)
			if asJSON {
				return report.WriteEventsJSON(a.out, ev)
			}
			report.WriteEvents(a.out, ev)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Civil date YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of text")
	return cmd
}

func (a *app) referenceCmd() *cobra.Command {
	var civil string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reference",
		Short: "Compare the engine with the meeus ephemeris at one instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			obs, err := a.observer()
			if err != nil {
				return err
			}
			when, err := a.instant(civil)
			if err != nil {
				return err
			}

			c := astro.CompareWithReference(astro.ObserverAt(obs), when.UT())
			if c.MaxAbsDiff() > 0.1 {
				a.logger.Warn("engine differs from reference by %.3f°", c.MaxAbsDiff())
			}
			if asJSON {
				return report.WriteComparisonJSON(a.out, c)
			}
			report.WriteComparison(a.out, c)
			return nil
		},
	}
	cmd.Flags().StringVarP(&civil, "time", "t", "", "Civil time YYYY-MM-DD HH:MM:SS (default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Write JSON instead of text")
	return cmd
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(a.out, version.String())
		},
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
