// Package geo converts sexagesimal coordinates and civil timestamps into the
// decimal-degree and Universal Time values consumed by the solar engine.
package geo

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned by the normalizer.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidTimestamp  = errors.New("invalid timestamp")
	ErrInvalidOffset     = errors.New("invalid UTC offset")
)

// MaxDegrees is the largest whole-degree component accepted for any angle.
const MaxDegrees = 180

// Hemisphere is the compass letter attached to a sexagesimal angle.
type Hemisphere byte

const (
	North Hemisphere = 'N'
	South Hemisphere = 'S'
	East  Hemisphere = 'E'
	West  Hemisphere = 'W'
)

// ParseHemisphere parses a single hemisphere letter, ignoring case and surrounding space.
func ParseHemisphere(s string) (Hemisphere, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 1 {
		return 0, fmt.Errorf("%w: hemisphere %q", ErrInvalidCoordinate, s)
	}
	h := Hemisphere(s[0])
	if !h.Valid() {
		return 0, fmt.Errorf("%w: hemisphere %q", ErrInvalidCoordinate, s)
	}
	return h, nil
}

// Valid reports whether h is one of N, S, E, W.
func (h Hemisphere) Valid() bool {
	switch h {
	case North, South, East, West:
		return true
	default:
		return false
	}
}

// IsLatitude reports whether h names a latitude hemisphere (N or S).
func (h Hemisphere) IsLatitude() bool {
	return h == North || h == South
}

// Sign returns -1 for S and W, +1 otherwise.
func (h Hemisphere) Sign() float64 {
	if h == South || h == West {
		return -1
	}
	return 1
}

func (h Hemisphere) String() string {
	if !h.Valid() {
		return "?"
	}
	return string(rune(h))
}

// GeoAngle is a signed decimal-degree angle tagged with its hemisphere.
// The zero value is 0°N. Values are immutable once constructed.
type GeoAngle struct {
	deg  float64
	hemi Hemisphere
}

// NormalizeAngle converts degrees, minutes, seconds and a hemisphere letter into a
// signed decimal angle. S and W produce negative values.
func NormalizeAngle(degrees int, minutes, seconds float64, h Hemisphere) (GeoAngle, error) {
	if degrees < 0 || degrees > MaxDegrees {
		return GeoAngle{}, fmt.Errorf("%w: degrees %d outside [0,%d]", ErrInvalidCoordinate, degrees, MaxDegrees)
	}
	if !(minutes >= 0 && minutes < 60) {
		return GeoAngle{}, fmt.Errorf("%w: minutes %v outside [0,60)", ErrInvalidCoordinate, minutes)
	}
	if !(seconds >= 0 && seconds < 60) {
		return GeoAngle{}, fmt.Errorf("%w: seconds %v outside [0,60)", ErrInvalidCoordinate, seconds)
	}
	if !h.Valid() {
		return GeoAngle{}, fmt.Errorf("%w: hemisphere %q", ErrInvalidCoordinate, h.String())
	}

	mag := float64(degrees) + minutes/60 + seconds/3600
	return GeoAngle{deg: h.Sign() * mag, hemi: h}, nil
}

// Degrees returns the signed decimal value.
func (a GeoAngle) Degrees() float64 {
	return a.deg
}

// Hemisphere returns the hemisphere letter the angle was built from.
func (a GeoAngle) Hemisphere() Hemisphere {
	if a.hemi == 0 {
		return North
	}
	return a.hemi
}

// DMS splits the magnitude back into whole degrees, whole minutes and seconds.
func (a GeoAngle) DMS() (degrees, minutes int, seconds float64) {
	mag := math.Abs(a.deg)
	degrees = int(mag)
	rem := (mag - float64(degrees)) * 60
	minutes = int(rem)
	seconds = (rem - float64(minutes)) * 60
	// Round away float noise so 26" does not print as 25.999999".
	seconds = math.Round(seconds*1e6) / 1e6
	if seconds >= 60 {
		seconds -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		degrees++
	}
	return degrees, minutes, seconds
}

// String renders the angle as 39°54'26.00"N.
func (a GeoAngle) String() string {
	d, m, s := a.DMS()
	return fmt.Sprintf("%d°%02d'%05.2f\"%s", d, m, s, a.Hemisphere())
}

// dmsPattern matches "39 54 26 N", "39°54'26\"N", "116:23:30E" and "39 54 26.5 n".
var dmsPattern = regexp.MustCompile(`^\s*(\d{1,3})\s*[°:\s]\s*(\d{1,2}(?:\.\d+)?)\s*['′:\s]\s*(\d{1,2}(?:\.\d+)?)\s*["″]?\s*([NSEWnsew])\s*$`)

// ParseDMS parses a sexagesimal angle written on a single line.
func ParseDMS(s string) (GeoAngle, error) {
	m := dmsPattern.FindStringSubmatch(s)
	if m == nil {
		return GeoAngle{}, fmt.Errorf("%w: cannot parse %q as degrees minutes seconds hemisphere", ErrInvalidCoordinate, s)
	}

	deg, err := strconv.Atoi(m[1])
	if err != nil {
		return GeoAngle{}, fmt.Errorf("%w: degrees %q", ErrInvalidCoordinate, m[1])
	}
	minutes, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return GeoAngle{}, fmt.Errorf("%w: minutes %q", ErrInvalidCoordinate, m[2])
	}
	sec, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return GeoAngle{}, fmt.Errorf("%w: seconds %q", ErrInvalidCoordinate, m[3])
	}
	h, err := ParseHemisphere(m[4])
	if err != nil {
		return GeoAngle{}, err
	}

	return NormalizeAngle(deg, minutes, sec, h)
}
