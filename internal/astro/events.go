package astro

import (
	"time"

	"github.com/sixdouglas/suncalc"
)

// DayEvents lists the named solar events of one calendar day. A zero time means
// the event does not occur (polar day or night).
type DayEvents struct {
	Date      time.Time `json:"date"`
	Dawn      time.Time `json:"dawn"`
	Sunrise   time.Time `json:"sunrise"`
	SolarNoon time.Time `json:"solar_noon"`
	Sunset    time.Time `json:"sunset"`
	Dusk      time.Time `json:"dusk"`
}

// DayLength returns sunset minus sunrise, or zero when either is missing.
func (e DayEvents) DayLength() time.Duration {
	if e.Sunrise.IsZero() || e.Sunset.IsZero() {
		return 0
	}
	return e.Sunset.Sub(e.Sunrise)
}

// DayEventsFor computes dawn (civil), sunrise, solar noon, sunset and dusk for
// the calendar day containing date, in date's location.
func DayEventsFor(obs Observer, date time.Time) DayEvents {
	y, m, d := date.Date()
	noon := time.Date(y, m, d, 12, 0, 0, 0, date.Location())

	times := suncalc.GetTimes(noon, obs.LatDeg, obs.LonDeg)

	valid := func(t time.Time) time.Time {
		// suncalc yields garbage rather than an error when an event has no solution
		if t.IsZero() || t.Sub(noon) > 36*time.Hour || noon.Sub(t) > 36*time.Hour {
			return time.Time{}
		}
		return t.In(date.Location())
	}

	return DayEvents{
		Date:      time.Date(y, m, d, 0, 0, 0, 0, date.Location()),
		Dawn:      valid(times["dawn"].Value),
		Sunrise:   valid(times["sunrise"].Value),
		SolarNoon: valid(times["solarNoon"].Value),
		Sunset:    valid(times["sunset"].Value),
		Dusk:      valid(times["dusk"].Value),
	}
}

// SuncalcPosition evaluates the suncalc position model, converting its
// south-referenced radians to this package's north-referenced degrees.
func SuncalcPosition(obs Observer, t time.Time) HorizontalPosition {
	pos := suncalc.GetPosition(t, obs.LatDeg, obs.LonDeg)
	return HorizontalPosition{
		AltitudeDeg: radToDeg(pos.Altitude),
		AzimuthDeg:  normalizeAngle360(radToDeg(pos.Azimuth) + 180),
	}
}
