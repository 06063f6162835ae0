package astro

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultTraceInterval is the sample spacing used when none is given.
const DefaultTraceInterval = 10 * time.Minute

// HorizonAltitude is the geometric horizon used for rise/set detection.
const HorizonAltitude = 0.0

// MinTraceInterval is the finest sample spacing a trace accepts. A full day at
// this spacing is 86401 samples.
const MinTraceInterval = time.Second

var (
	// ErrEmptyTrace is returned by trace queries that need at least one sample.
	ErrEmptyTrace = errors.New("trace has no samples")

	// ErrTraceInterval is matched by every rejected sample spacing.
	ErrTraceInterval = errors.New("invalid trace interval")
)

// ValidateTraceInterval rejects spacings below MinTraceInterval.
func ValidateTraceInterval(d time.Duration) error {
	if d < MinTraceInterval {
		return fmt.Errorf("%w: %v is below the %v minimum", ErrTraceInterval, d, MinTraceInterval)
	}
	return nil
}

// TraceSample is the Sun's position at one sampled instant.
type TraceSample struct {
	Time time.Time `json:"time"`
	HorizontalPosition
}

// DayTrace holds evenly spaced solar positions over a window.
type DayTrace struct {
	Observer Observer
	Start    time.Time
	End      time.Time
	Interval time.Duration
	Samples  []TraceSample
}

// ComputeDayTrace samples the Sun's position from start to start+span inclusive.
// A non-positive interval means DefaultTraceInterval; anything finer than
// MinTraceInterval is raised to it.
func ComputeDayTrace(obs Observer, start time.Time, span, interval time.Duration) *DayTrace {
	switch {
	case interval <= 0:
		interval = DefaultTraceInterval
	case interval < MinTraceInterval:
		interval = MinTraceInterval
	}
	if span < 0 {
		span = 0
	}

	n := int(span/interval) + 1
	samples := make([]TraceSample, n)
	for i := range samples {
		t := start.Add(time.Duration(i) * interval)
		samples[i] = TraceSample{Time: t, HorizontalPosition: SunHorizontal(obs, t)}
	}

	return &DayTrace{
		Observer: obs,
		Start:    start,
		End:      samples[n-1].Time,
		Interval: interval,
		Samples:  samples,
	}
}

// Altitudes returns the altitude series in sample order.
func (d *DayTrace) Altitudes() []float64 {
	out := make([]float64, len(d.Samples))
	for i, s := range d.Samples {
		out[i] = s.AltitudeDeg
	}
	return out
}

// SolarNoon finds the time and altitude of the highest sample, refined by
// fitting a parabola through it and its neighbours.
func (d *DayTrace) SolarNoon() (time.Time, float64, error) {
	if len(d.Samples) == 0 {
		return time.Time{}, 0, ErrEmptyTrace
	}

	maxIdx := 0
	for i, s := range d.Samples {
		if s.AltitudeDeg > d.Samples[maxIdx].AltitudeDeg {
			maxIdx = i
		}
	}

	// Peak on the window edge: nothing to refine against
	if maxIdx == 0 || maxIdx == len(d.Samples)-1 {
		s := d.Samples[maxIdx]
		return s.Time, s.AltitudeDeg, nil
	}

	y0 := d.Samples[maxIdx-1].AltitudeDeg
	y1 := d.Samples[maxIdx].AltitudeDeg
	y2 := d.Samples[maxIdx+1].AltitudeDeg

	// Parabola y = at^2 + bt + c through t = -1, 0, +1
	c := y1
	a := (y0+y2)/2 - c
	b := (y2 - y0) / 2
	if a >= 0 {
		return d.Samples[maxIdx].Time, y1, nil
	}

	tMax := -b / (2 * a)
	if tMax < -1 {
		tMax = -1
	} else if tMax > 1 {
		tMax = 1
	}

	refined := d.Samples[maxIdx].Time.Add(time.Duration(float64(d.Interval) * tMax))
	return refined, SunElevation(d.Observer, refined), nil
}

// HorizonCrossings finds the first upward and first downward crossing of
// threshold altitude. The ok flags are false when no crossing exists in the window.
func (d *DayTrace) HorizonCrossings(threshold float64) (rise, set time.Time, riseOK, setOK bool) {
	for i := 1; i < len(d.Samples); i++ {
		prev, curr := d.Samples[i-1], d.Samples[i]

		if !riseOK && prev.AltitudeDeg <= threshold && curr.AltitudeDeg > threshold {
			rise = interpolateCrossing(prev.Time, curr.Time, prev.AltitudeDeg, curr.AltitudeDeg, threshold)
			riseOK = true
		}
		if !setOK && prev.AltitudeDeg > threshold && curr.AltitudeDeg <= threshold {
			set = interpolateCrossing(prev.Time, curr.Time, prev.AltitudeDeg, curr.AltitudeDeg, threshold)
			setOK = true
		}
	}
	return rise, set, riseOK, setOK
}

// AlwaysAbove reports polar day: every sample is above threshold.
func (d *DayTrace) AlwaysAbove(threshold float64) bool {
	if len(d.Samples) == 0 {
		return false
	}
	for _, s := range d.Samples {
		if s.AltitudeDeg <= threshold {
			return false
		}
	}
	return true
}

// AlwaysBelow reports polar night: no sample rises above threshold.
func (d *DayTrace) AlwaysBelow(threshold float64) bool {
	if len(d.Samples) == 0 {
		return false
	}
	for _, s := range d.Samples {
		if s.AltitudeDeg > threshold {
			return false
		}
	}
	return true
}

// LocalMaxima counts interior samples strictly higher than the previous sample
// and not lower than the next.
func (d *DayTrace) LocalMaxima() int {
	n := 0
	for i := 1; i < len(d.Samples)-1; i++ {
		a := d.Samples[i].AltitudeDeg
		if a > d.Samples[i-1].AltitudeDeg && a >= d.Samples[i+1].AltitudeDeg {
			n++
		}
	}
	return n
}

// MaxStep returns the largest altitude change between adjacent samples.
func (d *DayTrace) MaxStep() float64 {
	maxStep := 0.0
	for i := 1; i < len(d.Samples); i++ {
		step := math.Abs(d.Samples[i].AltitudeDeg - d.Samples[i-1].AltitudeDeg)
		if step > maxStep {
			maxStep = step
		}
	}
	return maxStep
}

// interpolateCrossing finds the time when altitude crosses a threshold.
func interpolateCrossing(t1, t2 time.Time, el1, el2, threshold float64) time.Time {
	if math.Abs(el2-el1) < 0.0001 {
		return t1
	}

	fraction := (threshold - el1) / (el2 - el1)
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}

	dt := t2.Sub(t1)
	return t1.Add(time.Duration(float64(dt) * fraction))
}

// AltitudeTier buckets altitude for display.
type AltitudeTier int

const (
	AltitudeBelowHorizon AltitudeTier = iota // <= 0 degrees
	AltitudeLow                              // 0-15 degrees
	AltitudeMedium                           // 15-45 degrees
	AltitudeHigh                             // 45+ degrees
)

// GetAltitudeTier returns the tier for a given altitude.
func GetAltitudeTier(altDeg float64) AltitudeTier {
	switch {
	case altDeg <= 0:
		return AltitudeBelowHorizon
	case altDeg < 15:
		return AltitudeLow
	case altDeg < 45:
		return AltitudeMedium
	default:
		return AltitudeHigh
	}
}

func (t AltitudeTier) String() string {
	switch t {
	case AltitudeBelowHorizon:
		return "below horizon"
	case AltitudeLow:
		return "low"
	case AltitudeMedium:
		return "medium"
	case AltitudeHigh:
		return "high"
	default:
		return "unknown"
	}
}
