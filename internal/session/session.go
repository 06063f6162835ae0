// Package session implements the interactive observing loop: the observer is
// entered once, then civil times are evaluated until the user stops.
package session

import (
	"fmt"
	"math"
	"strings"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/geo"
	"github.com/litescript/ls-sunpos/internal/logging"
)

// Stage is the input the session is waiting for.
type Stage int

const (
	StageLatitude Stage = iota
	StageLongitude
	StageTime
	StageContinue
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLatitude:
		return "latitude"
	case StageLongitude:
		return "longitude"
	case StageTime:
		return "time"
	case StageContinue:
		return "continue"
	case StageDone:
		return "done"
	default:
		return "unknown"
	}
}

// Result is one evaluated observation.
type Result struct {
	Observer geo.ObserverLocation
	Civil    string // timestamp as typed, trimmed
	Instant  geo.Instant
	Position astro.HorizontalPosition
}

// Reply is what the session produced for a submitted line. At most one of
// Result and Err is set.
type Reply struct {
	Result *Result
	Err    error
}

// Session is a small state machine driven one input line at a time.
// It is not safe for concurrent use.
type Session struct {
	offset   int
	stage    Stage
	lat      geo.GeoAngle
	observer geo.ObserverLocation
	history  []Result
	log      *logging.Logger
}

// New creates a session that interprets times at utcOffsetSeconds east of UT.
func New(utcOffsetSeconds int, log *logging.Logger) (*Session, error) {
	if err := geo.ValidateOffset(utcOffsetSeconds); err != nil {
		return nil, err
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Session{
		offset: utcOffsetSeconds,
		stage:  StageLatitude,
		log:    log.Named("session"),
	}, nil
}

// SetObserver skips the coordinate prompts and starts at the time prompt.
func (s *Session) SetObserver(obs geo.ObserverLocation) {
	s.observer = obs
	s.lat = obs.Latitude
	s.stage = StageTime
	s.log.Debug("observer preset to %s", obs)
}

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.stage }

// Done reports whether the user has ended the session.
func (s *Session) Done() bool { return s.stage == StageDone }

// Observer returns the observer once both coordinates have been accepted.
func (s *Session) Observer() (geo.ObserverLocation, bool) {
	return s.observer, s.stage >= StageTime
}

// Offset returns the civil offset in seconds.
func (s *Session) Offset() int { return s.offset }

// History returns the results computed so far, oldest first.
func (s *Session) History() []Result {
	out := make([]Result, len(s.history))
	copy(out, s.history)
	return out
}

// Prompt returns the text to show for the current stage.
func (s *Session) Prompt() string {
	switch s.stage {
	case StageLatitude:
		return "Latitude (deg min sec N/S): "
	case StageLongitude:
		return "Longitude (deg min sec E/W): "
	case StageTime:
		return fmt.Sprintf("Observation time (YYYY-MM-DD HH:MM:SS, %s): ", geo.FormatOffset(s.offset))
	case StageContinue:
		return "Enter another time? (y/n): "
	default:
		return ""
	}
}

// Submit feeds one line of input. Invalid input leaves the stage unchanged and
// returns the error so the caller can re-prompt.
func (s *Session) Submit(line string) Reply {
	line = strings.TrimSpace(line)

	switch s.stage {
	case StageLatitude:
		lat, err := parseAxis(line, true)
		if err != nil {
			s.log.Debug("rejected latitude %q: %v", line, err)
			return Reply{Err: err}
		}
		s.lat = lat
		s.stage = StageLongitude

	case StageLongitude:
		lon, err := parseAxis(line, false)
		if err != nil {
			s.log.Debug("rejected longitude %q: %v", line, err)
			return Reply{Err: err}
		}
		obs, err := geo.NewObserverLocation(s.lat, lon)
		if err != nil {
			return Reply{Err: err}
		}
		s.observer = obs
		s.stage = StageTime
		s.log.Info("observer set to %s", obs)

	case StageTime:
		inst, err := geo.NormalizeInstant(line, s.offset)
		if err != nil {
			s.log.Debug("rejected time %q: %v", line, err)
			return Reply{Err: err}
		}
		pos, err := astro.SolarPosition(s.observer, inst)
		if err != nil {
			return Reply{Err: fmt.Errorf("solar position: %w", err)}
		}
		res := Result{Observer: s.observer, Civil: line, Instant: inst, Position: pos}
		s.history = append(s.history, res)
		s.stage = StageContinue
		s.log.Debug("%s -> alt %.4f az %.4f", inst, pos.AltitudeDeg, pos.AzimuthDeg)
		return Reply{Result: &res}

	case StageContinue:
		// Anything but y ends the session.
		if strings.EqualFold(line, "y") {
			s.stage = StageTime
		} else {
			s.stage = StageDone
			s.log.Debug("session ended after %d observations", len(s.history))
		}
	}

	return Reply{}
}

// parseAxis parses a DMS line and checks it belongs to the requested axis.
func parseAxis(line string, latitude bool) (geo.GeoAngle, error) {
	a, err := geo.ParseDMS(line)
	if err != nil {
		return geo.GeoAngle{}, err
	}
	if a.Hemisphere().IsLatitude() != latitude {
		want := "E or W"
		if latitude {
			want = "N or S"
		}
		return geo.GeoAngle{}, fmt.Errorf("%w: hemisphere must be %s, got %s", geo.ErrInvalidCoordinate, want, a.Hemisphere())
	}
	if latitude && math.Abs(a.Degrees()) > 90 {
		return geo.GeoAngle{}, fmt.Errorf("%w: latitude %s beyond the pole", geo.ErrInvalidCoordinate, a)
	}
	return a, nil
}
