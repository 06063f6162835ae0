// Package config loads ls-sunpos settings from the environment and .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/geo"
	"github.com/litescript/ls-sunpos/internal/logging"
)

// Environment variable names.
const (
	EnvUTCOffset     = "LS_SUNPOS_UTC_OFFSET"
	EnvLatitude      = "LS_SUNPOS_LAT"
	EnvLongitude     = "LS_SUNPOS_LON"
	EnvLogLevel      = "LS_SUNPOS_LOG_LEVEL"
	EnvTraceInterval = "LS_SUNPOS_TRACE_INTERVAL"
	EnvName          = "LS_SUNPOS_NAME"
	EnvLogFile       = "LS_SUNPOS_LOG_FILE"
)

// DefaultEnvFile is read when no explicit file is given. Missing is fine.
const DefaultEnvFile = ".env"

// Config holds runtime settings shared by all commands.
type Config struct {
	UTCOffsetSeconds int           // civil offset east of UT
	Latitude         string        // DMS, e.g. "39 54 26 N"; empty means prompt
	Longitude        string        // DMS, e.g. "116 23 30 E"
	LogLevel         string        // debug, info, warn, error
	TraceInterval    time.Duration // sample spacing for day traces
	Name             string        // optional label for the configured site
	LogFile          string        // log destination while the TUI owns the terminal
}

// DefaultConfig returns the reference deployment settings (UTC+8, no fixed site).
func DefaultConfig() Config {
	return Config{
		UTCOffsetSeconds: geo.DefaultUTCOffsetSeconds,
		LogLevel:         "info",
		TraceInterval:    10 * time.Minute,
	}
}

// LookupFunc has the shape of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// Load merges defaults, an optional .env file, and the process environment.
// Process variables win over file values. An explicit envFile must exist.
func Load(envFile string) (Config, error) {
	explicit := envFile != ""
	if !explicit {
		envFile = DefaultEnvFile
	}

	fileVals, err := godotenv.Read(envFile)
	if err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		fileVals = nil
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVals[key]
		return v, ok
	}

	return FromLookup(DefaultConfig(), lookup)
}

// FromLookup overlays values found through lookup onto base.
func FromLookup(base Config, lookup LookupFunc) (Config, error) {
	cfg := base

	if v, ok := lookup(EnvUTCOffset); ok && strings.TrimSpace(v) != "" {
		off, err := ParseOffset(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvUTCOffset, err)
		}
		cfg.UTCOffsetSeconds = off
	}
	if v, ok := lookup(EnvLatitude); ok {
		cfg.Latitude = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLongitude); ok {
		cfg.Longitude = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		cfg.LogLevel = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvName); ok {
		cfg.Name = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogFile); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvTraceInterval); ok && strings.TrimSpace(v) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvTraceInterval, err)
		}
		cfg.TraceInterval = d
	}

	return cfg, cfg.Validate()
}

// ParseOffset accepts seconds ("28800") or a signed hour:minute form ("+08:00", "-3:30").
func ParseOffset(s string) (int, error) {
	s = strings.TrimSpace(s)
	if secs, err := strconv.Atoi(s); err == nil {
		return secs, geo.ValidateOffset(secs)
	}

	sign := 1
	switch {
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	case strings.HasPrefix(s, "-"):
		sign = -1
		s = s[1:]
	}
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, fmt.Errorf("%w: %q", geo.ErrInvalidOffset, s)
	}
	// Only the leading sign is allowed; Atoi would take a second one
	if !isDigits(hh) {
		return 0, fmt.Errorf("%w: hours %q", geo.ErrInvalidOffset, hh)
	}
	if !isDigits(mm) {
		return 0, fmt.Errorf("%w: minutes %q", geo.ErrInvalidOffset, mm)
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, fmt.Errorf("%w: hours %q", geo.ErrInvalidOffset, hh)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m >= 60 {
		return 0, fmt.Errorf("%w: minutes %q", geo.ErrInvalidOffset, mm)
	}

	secs := sign * (h*3600 + m*60)
	return secs, geo.ValidateOffset(secs)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Validate checks the offset range and trace interval.
func (c Config) Validate() error {
	if err := geo.ValidateOffset(c.UTCOffsetSeconds); err != nil {
		return err
	}
	return astro.ValidateTraceInterval(c.TraceInterval)
}

// HasObserver reports whether both coordinates are configured.
func (c Config) HasObserver() bool {
	return c.Latitude != "" && c.Longitude != ""
}

// Observer parses the configured coordinates and attaches the site name.
func (c Config) Observer() (geo.ObserverLocation, error) {
	if !c.HasObserver() {
		return geo.ObserverLocation{}, fmt.Errorf("%w: observer not configured (set %s and %s)",
			geo.ErrInvalidCoordinate, EnvLatitude, EnvLongitude)
	}
	obs, err := geo.ParseObserver(c.Latitude, c.Longitude)
	if err != nil {
		return geo.ObserverLocation{}, err
	}
	obs.Name = c.Name
	return obs, nil
}

// Level returns the parsed log level.
func (c Config) Level() logging.Level {
	return logging.ParseLevel(c.LogLevel)
}
