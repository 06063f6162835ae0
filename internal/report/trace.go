package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-sunpos/internal/astro"
)

// TraceExport is the JSON form of a day trace and its derived events.
type TraceExport struct {
	LatDeg       float64             `json:"lat_deg"`
	LonDeg       float64             `json:"lon_deg"`
	Start        time.Time           `json:"start"`
	End          time.Time           `json:"end"`
	Interval     string              `json:"interval"`
	SolarNoon    *time.Time          `json:"solar_noon,omitempty"`
	NoonAltitude float64             `json:"noon_altitude_deg"`
	Sunrise      *time.Time          `json:"sunrise,omitempty"`
	Sunset       *time.Time          `json:"sunset,omitempty"`
	PolarDay     bool                `json:"polar_day"`
	PolarNight   bool                `json:"polar_night"`
	Samples      []astro.TraceSample `json:"samples"`
}

// TraceSummary holds the events derived from a trace.
type TraceSummary struct {
	SolarNoon    time.Time
	NoonAltitude float64
	HasNoon      bool
	Sunrise      time.Time
	Sunset       time.Time
	HasRise      bool
	HasSet       bool
	PolarDay     bool
	PolarNight   bool
}

// Summarize derives noon and geometric horizon crossings, with times in loc.
func Summarize(trace *astro.DayTrace, loc *time.Location) TraceSummary {
	var s TraceSummary
	if noon, alt, err := trace.SolarNoon(); err == nil {
		s.SolarNoon, s.NoonAltitude, s.HasNoon = noon.In(loc), alt, true
	}
	rise, set, riseOK, setOK := trace.HorizonCrossings(astro.HorizonAltitude)
	s.Sunrise, s.HasRise = rise.In(loc), riseOK
	s.Sunset, s.HasSet = set.In(loc), setOK
	s.PolarDay = trace.AlwaysAbove(astro.HorizonAltitude)
	s.PolarNight = trace.AlwaysBelow(astro.HorizonAltitude)
	return s
}

// ExportTrace converts a trace to its JSON form with times in loc.
func ExportTrace(trace *astro.DayTrace, loc *time.Location) *TraceExport {
	s := Summarize(trace, loc)

	samples := make([]astro.TraceSample, len(trace.Samples))
	for i, smp := range trace.Samples {
		samples[i] = astro.TraceSample{Time: smp.Time.In(loc), HorizontalPosition: smp.HorizontalPosition}
	}

	export := &TraceExport{
		LatDeg:       trace.Observer.LatDeg,
		LonDeg:       trace.Observer.LonDeg,
		Start:        trace.Start.In(loc),
		End:          trace.End.In(loc),
		Interval:     trace.Interval.String(),
		NoonAltitude: s.NoonAltitude,
		PolarDay:     s.PolarDay,
		PolarNight:   s.PolarNight,
		Samples:      samples,
	}
	if s.HasNoon {
		export.SolarNoon = &s.SolarNoon
	}
	if s.HasRise {
		export.Sunrise = &s.Sunrise
	}
	if s.HasSet {
		export.Sunset = &s.Sunset
	}
	return export
}

// WriteJSON writes the trace as indented JSON.
func (t *TraceExport) WriteJSON(w io.Writer) error {
	return writeJSON(w, t)
}

// WriteTraceTable prints a summary, a sparkline and one row per rowStep.
// A non-positive rowStep prints every sample.
func WriteTraceTable(w io.Writer, trace *astro.DayTrace, loc *time.Location, rowStep time.Duration) {
	s := Summarize(trace, loc)

	fmt.Fprintf(w, "Sun trace @ %.4f, %.4f  %s → %s (every %s)\n",
		trace.Observer.LatDeg, trace.Observer.LonDeg,
		trace.Start.In(loc).Format("2006-01-02 15:04"), trace.End.In(loc).Format("15:04 MST"),
		trace.Interval)
	fmt.Fprintln(w, strings.Repeat("─", 60))

	if len(trace.Samples) == 0 {
		fmt.Fprintln(w, "No samples")
		return
	}

	if s.HasNoon {
		fmt.Fprintf(w, "Solar noon: %s  altitude %.2f°\n", s.SolarNoon.Format("15:04:05"), s.NoonAltitude)
	}
	switch {
	case s.PolarDay:
		fmt.Fprintln(w, "Sun above the horizon all day")
	case s.PolarNight:
		fmt.Fprintln(w, "Sun below the horizon all day")
	default:
		fmt.Fprintf(w, "Sunrise: %s  Sunset: %s\n", clockOrDash(s.Sunrise, s.HasRise), clockOrDash(s.Sunset, s.HasSet))
	}
	fmt.Fprintf(w, "%s\n", Sparkline(trace.Altitudes(), SparklineWidth))
	fmt.Fprintln(w, strings.Repeat("─", 60))

	fmt.Fprintf(w, "%-8s %10s %10s  %-7s\n", "Time", "Altitude", "Azimuth", "Tier")
	for _, smp := range trace.Samples {
		if rowStep > 0 && smp.Time.Sub(trace.Start)%rowStep != 0 {
			continue
		}
		fmt.Fprintf(w, "%-8s %9.2f° %9.2f°  %-7s\n",
			smp.Time.In(loc).Format("15:04"),
			smp.AltitudeDeg, smp.AzimuthDeg,
			astro.GetAltitudeTier(smp.AltitudeDeg))
	}
}

func clockOrDash(t time.Time, ok bool) string {
	if !ok {
		return "--:--"
	}
	return t.Format("15:04")
}
