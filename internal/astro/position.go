package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/litescript/ls-sunpos/internal/geo"
)

// ErrDomain is matched by every *DomainError.
var ErrDomain = errors.New("observer outside valid domain")

// DomainError reports an observer coordinate outside the range the engine accepts.
type DomainError struct {
	Field string // "latitude" or "longitude"
	Value float64
	Limit float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s %.6f outside [-%g,%g]", e.Field, e.Value, e.Limit, e.Limit)
}

// Unwrap lets errors.Is(err, ErrDomain) succeed.
func (e *DomainError) Unwrap() error { return ErrDomain }

// ObserverAt converts a validated location to plain decimal degrees.
func ObserverAt(loc geo.ObserverLocation) Observer {
	return Observer{
		LatDeg: loc.LatDeg(),
		LonDeg: loc.LonDeg(),
		Name:   loc.Name,
	}
}

// Validate checks latitude in [-90,90] and longitude in [-180,180].
func (o Observer) Validate() error {
	if !(math.Abs(o.LatDeg) <= 90) {
		return &DomainError{Field: "latitude", Value: o.LatDeg, Limit: 90}
	}
	if !(math.Abs(o.LonDeg) <= 180) {
		return &DomainError{Field: "longitude", Value: o.LonDeg, Limit: 180}
	}
	return nil
}

// SolarPosition returns the Sun's altitude and azimuth for an observer at a UT
// instant. It is pure and safe for concurrent use.
func SolarPosition(observer geo.ObserverLocation, when geo.Instant) (HorizontalPosition, error) {
	obs := ObserverAt(observer)
	if err := obs.Validate(); err != nil {
		return HorizontalPosition{}, err
	}
	return SunHorizontal(obs, when.UT()), nil
}

// SunHorizontal computes the Sun's horizontal position without range checks.
// Longitude enters only through sidereal time, so any multiple of 360° may be added.
func SunHorizontal(obs Observer, t time.Time) HorizontalPosition {
	return EquatorialToHorizontal(SunEcliptic(t).Equatorial(), obs, t)
}

// SunElevation is the altitude component of SunHorizontal.
func SunElevation(obs Observer, t time.Time) float64 {
	return SunHorizontal(obs, t).AltitudeDeg
}
