// Package astro computes the Sun's apparent position for a ground observer.
package astro

import (
	"math"
	"time"
)

// J2000 is the Julian Date of the J2000.0 epoch (2000-01-01 12:00 UT).
const J2000 = 2451545.0

// DaysPerCentury is the length of a Julian century in days.
const DaysPerCentury = 36525.0

// Equatorial holds geocentric equatorial coordinates in degrees.
type Equatorial struct {
	RAdeg  float64 // Right Ascension, 0-360
	DecDeg float64 // Declination, -90 to +90
}

// HorizontalPosition is the Sun's direction as seen by an observer.
//
// Conventions:
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West, in [0,360)
//   - Altitude: 0° = horizon, 90° = zenith, in [-90,90]
type HorizontalPosition struct {
	AltitudeDeg float64 `json:"altitude_deg"`
	AzimuthDeg  float64 `json:"azimuth_deg"`
}

// Observer is an observing site in plain decimal degrees.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// EquatorialToHorizontal converts equatorial coordinates to altitude and azimuth
// for an observer at the given UT instant.
//
// The azimuth uses the atan2 form, which stays well defined when cos(latitude)
// vanishes at the poles.
func EquatorialToHorizontal(eq Equatorial, obs Observer, t time.Time) HorizontalPosition {
	lst := localSiderealTime(t, obs.LonDeg)
	ha := degToRad(lst - eq.RAdeg)
	return horizontalFromHourAngle(degToRad(obs.LatDeg), degToRad(eq.DecDeg), ha)
}

// horizontalFromHourAngle does the spherical-trig step. All inputs in radians.
func horizontalFromHourAngle(lat, dec, ha float64) HorizontalPosition {
	sinLat, cosLat := math.Sincos(lat)
	sinDec, cosDec := math.Sincos(dec)
	sinHA, cosHA := math.Sincos(ha)

	sinAlt := sinLat*sinDec + cosLat*cosDec*cosHA
	// Clamp for floating point overshoot near the zenith
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}
	alt := math.Asin(sinAlt)

	az := math.Atan2(-sinHA*cosDec, cosLat*sinDec-sinLat*cosDec*cosHA)

	return HorizontalPosition{
		AltitudeDeg: radToDeg(alt),
		AzimuthDeg:  normalizeAzimuth(radToDeg(az)),
	}
}

// normalizeAzimuth maps an atan2 result in [-180,180] onto [0,360).
func normalizeAzimuth(az float64) float64 {
	if az < 0 {
		az += 360
	}
	// -1e-14 + 360 rounds to exactly 360
	if az >= 360 {
		az -= 360
	}
	return az
}

// localSiderealTime calculates the Local Sidereal Time in degrees
// for a given UTC time and observer longitude.
func localSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeAngle360(greenwichMeanSiderealTime(t) + lonDeg)
}

// greenwichMeanSiderealTime calculates GMST in degrees for a given UTC time.
// Uses the IAU 1982 expression in Julian Date.
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := julianDate(t)
	T := julianCenturies(jd)

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeAngle360(gmst)
}

// julianDate calculates the Julian Date for a given time.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	minute := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + minute/60 + sec/3600 + ns/3600e9) / 24.0

	// January and February count as months 13 and 14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// julianCenturies returns Julian centuries elapsed since J2000.0.
func julianCenturies(jd float64) float64 {
	return (jd - J2000) / DaysPerCentury
}

// normalizeAngle360 normalizes an angle to [0,360).
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	if a >= 360 {
		a -= 360
	}
	return a
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
