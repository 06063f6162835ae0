package geo

import (
	"fmt"
	"math"
)

// ObserverLocation is a fixed observing site. It is entered once per session and
// passed by value to every position query.
type ObserverLocation struct {
	Latitude  GeoAngle
	Longitude GeoAngle
	Name      string // optional site label, shown in reports
}

// NewObserverLocation pairs a latitude and a longitude, checking that each uses the
// right hemisphere letters and stays inside its geographic range.
func NewObserverLocation(lat, lon GeoAngle) (ObserverLocation, error) {
	if !lat.Hemisphere().IsLatitude() {
		return ObserverLocation{}, fmt.Errorf("%w: latitude hemisphere must be N or S, got %s", ErrInvalidCoordinate, lat.Hemisphere())
	}
	if lon.Hemisphere().IsLatitude() {
		return ObserverLocation{}, fmt.Errorf("%w: longitude hemisphere must be E or W, got %s", ErrInvalidCoordinate, lon.Hemisphere())
	}
	if math.Abs(lat.Degrees()) > 90 {
		return ObserverLocation{}, fmt.Errorf("%w: latitude %.6f outside [-90,90]", ErrInvalidCoordinate, lat.Degrees())
	}
	if math.Abs(lon.Degrees()) > 180 {
		return ObserverLocation{}, fmt.Errorf("%w: longitude %.6f outside [-180,180]", ErrInvalidCoordinate, lon.Degrees())
	}
	return ObserverLocation{Latitude: lat, Longitude: lon}, nil
}

// ParseObserver builds an ObserverLocation from two DMS strings.
func ParseObserver(lat, lon string) (ObserverLocation, error) {
	la, err := ParseDMS(lat)
	if err != nil {
		return ObserverLocation{}, fmt.Errorf("latitude: %w", err)
	}
	lo, err := ParseDMS(lon)
	if err != nil {
		return ObserverLocation{}, fmt.Errorf("longitude: %w", err)
	}
	return NewObserverLocation(la, lo)
}

// LatDeg returns the signed latitude in decimal degrees.
func (o ObserverLocation) LatDeg() float64 { return o.Latitude.Degrees() }

// LonDeg returns the signed, east-positive longitude in decimal degrees.
func (o ObserverLocation) LonDeg() float64 { return o.Longitude.Degrees() }

func (o ObserverLocation) String() string {
	coords := o.Latitude.String() + " " + o.Longitude.String()
	if o.Name == "" {
		return coords
	}
	return o.Name + " (" + coords + ")"
}

// WrapLongitude folds any longitude into (-180, 180].
func WrapLongitude(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg > 180 {
		deg -= 360
	} else if deg <= -180 {
		deg += 360
	}
	return deg
}
