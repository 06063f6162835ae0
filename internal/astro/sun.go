package astro

import (
	"math"
	"time"
)

// EclipticState carries the intermediate quantities of the low-precision solar
// ephemeris for one instant. Angles are in degrees.
type EclipticState struct {
	JD              float64 // Julian Date (UT)
	T               float64 // Julian centuries since J2000.0
	MeanLongitude   float64 // L0, reduced to [0,360)
	MeanAnomaly     float64 // M, reduced to [0,360)
	EqCenter        float64 // C
	TrueLongitude   float64 // L0 + C
	TrueAnomaly     float64 // M + C
	Omega           float64 // longitude of the Moon's ascending node
	ApparentLon     float64 // true longitude corrected for nutation and aberration
	Obliquity       float64 // obliquity of the ecliptic corrected for nutation
	MeanObliquity   float64
	RadiusVectorAU  float64 // Sun-Earth distance
	Eccentricity    float64 // Earth orbit eccentricity
	EquationOfTimeM float64 // apparent minus mean solar time, minutes
}

// SunEcliptic evaluates the solar ephemeris from the Astronomical Almanac
// (Meeus ch. 25, low accuracy). Good to about 0.01° over 1950-2050.
func SunEcliptic(t time.Time) EclipticState {
	jd := julianDate(t)
	T := julianCenturies(jd)

	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center, first three harmonics
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	sunLon := L0 + C
	nu := M + C

	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T
	R := (1.000001018 * (1 - e*e)) / (1 + e*math.Cos(degToRad(nu)))

	omega := 125.04 - 1934.136*T
	omegaRad := degToRad(omega)
	sunLonApp := sunLon - 0.00569 - 0.00478*math.Sin(omegaRad)

	eps0 := 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
	eps := eps0 + 0.00256*math.Cos(omegaRad)

	return EclipticState{
		JD:              jd,
		T:               T,
		MeanLongitude:   L0,
		MeanAnomaly:     M,
		EqCenter:        C,
		TrueLongitude:   sunLon,
		TrueAnomaly:     nu,
		Omega:           omega,
		ApparentLon:     sunLonApp,
		Obliquity:       eps,
		MeanObliquity:   eps0,
		RadiusVectorAU:  R,
		Eccentricity:    e,
		EquationOfTimeM: equationOfTime(L0, M, e, eps),
	}
}

// Equatorial converts the apparent ecliptic longitude (latitude taken as zero)
// to right ascension and declination.
func (s EclipticState) Equatorial() Equatorial {
	lon := degToRad(s.ApparentLon)
	eps := degToRad(s.Obliquity)

	ra := math.Atan2(math.Cos(eps)*math.Sin(lon), math.Cos(lon))
	dec := math.Asin(math.Sin(eps) * math.Sin(lon))

	return Equatorial{
		RAdeg:  normalizeAngle360(radToDeg(ra)),
		DecDeg: radToDeg(dec),
	}
}

// equationOfTime returns apparent minus mean solar time in minutes (Meeus 28.3).
func equationOfTime(L0, M, e, eps float64) float64 {
	y := math.Tan(degToRad(eps) / 2)
	y *= y
	l0 := degToRad(L0)
	m := degToRad(M)

	E := y*math.Sin(2*l0) -
		2*e*math.Sin(m) +
		4*e*y*math.Sin(m)*math.Cos(2*l0) -
		0.5*y*y*math.Sin(4*l0) -
		1.25*e*e*math.Sin(2*m)

	return radToDeg(E) * 4
}

// SunPosition calculates the apparent equatorial coordinates of the Sun.
// Accuracy: ~0.01 degrees for RA, ~0.001 degrees for Dec.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	eq := SunEcliptic(t).Equatorial()
	return eq.RAdeg, eq.DecDeg
}
