package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// ReferencePosition computes the Sun's horizontal position with the meeus
// library's solar and apparent sidereal time routines, as an independent check
// on this package's ephemeris. UT is used in place of TT; the ~70 s difference
// moves the Sun by a few arc-seconds.
func ReferencePosition(obs Observer, t time.Time) HorizontalPosition {
	jd := julian.TimeToJD(t.UTC())

	ra, dec := solar.ApparentEquatorial(jd)
	gast := sidereal.Apparent(jd)

	ha := gast.Angle().Rad() + degToRad(obs.LonDeg) - ra.Rad()
	return horizontalFromHourAngle(degToRad(obs.LatDeg), dec.Rad(), ha)
}

// ReferenceComparison pairs the engine result with the meeus reference. The
// lower-precision suncalc model is carried along for display only.
type ReferenceComparison struct {
	Engine       HorizontalPosition `json:"engine"`
	Reference    HorizontalPosition `json:"reference"`
	Suncalc      HorizontalPosition `json:"suncalc"`
	AltitudeDiff float64            `json:"altitude_diff_deg"`
	AzimuthDiff  float64            `json:"azimuth_diff_deg"`
}

// CompareWithReference evaluates all three models at t. Differences are engine
// minus meeus reference; the azimuth difference is wrapped into [-180,180].
func CompareWithReference(obs Observer, t time.Time) ReferenceComparison {
	eng := SunHorizontal(obs, t)
	ref := ReferencePosition(obs, t)

	return ReferenceComparison{
		Engine:       eng,
		Reference:    ref,
		Suncalc:      SuncalcPosition(obs, t),
		AltitudeDiff: eng.AltitudeDeg - ref.AltitudeDeg,
		AzimuthDiff:  azimuthDelta(eng.AzimuthDeg, ref.AzimuthDeg),
	}
}

// MaxAbsDiff returns the larger of the absolute altitude and azimuth differences.
func (c ReferenceComparison) MaxAbsDiff() float64 {
	return math.Max(math.Abs(c.AltitudeDiff), math.Abs(c.AzimuthDiff))
}

// azimuthDelta returns a-b wrapped to [-180,180].
func azimuthDelta(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}
