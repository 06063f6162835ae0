package report

import (
	"fmt"
	"io"
	"time"

	"github.com/litescript/ls-sunpos/internal/astro"
)

// WriteEvents prints the named solar events of a day.
func WriteEvents(w io.Writer, ev astro.DayEvents) {
	fmt.Fprintf(w, "Solar events for %s\n", ev.Date.Format("2006-01-02 MST"))
	rows := []struct {
		label string
		t     time.Time
	}{
		{"Dawn", ev.Dawn},
		{"Sunrise", ev.Sunrise},
		{"Solar noon", ev.SolarNoon},
		{"Sunset", ev.Sunset},
		{"Dusk", ev.Dusk},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "  %-11s %s\n", r.label+":", clockOrDash(r.t, !r.t.IsZero()))
	}
	if d := ev.DayLength(); d > 0 {
		fmt.Fprintf(w, "  %-11s %s\n", "Day length:", FormatDuration(d))
	}
}

// WriteEventsJSON writes the events as indented JSON.
func WriteEventsJSON(w io.Writer, ev astro.DayEvents) error {
	return writeJSON(w, ev)
}

// WriteComparison prints the engine, meeus and suncalc positions side by side.
// The diff row is engine minus meeus.
func WriteComparison(w io.Writer, c astro.ReferenceComparison) {
	fmt.Fprintf(w, "%-10s %10s %10s\n", "", "Altitude", "Azimuth")
	fmt.Fprintf(w, "%-10s %9.4f° %9.4f°\n", "engine", c.Engine.AltitudeDeg, c.Engine.AzimuthDeg)
	fmt.Fprintf(w, "%-10s %9.4f° %9.4f°\n", "meeus", c.Reference.AltitudeDeg, c.Reference.AzimuthDeg)
	fmt.Fprintf(w, "%-10s %9.4f° %9.4f°\n", "suncalc", c.Suncalc.AltitudeDeg, c.Suncalc.AzimuthDeg)
	fmt.Fprintf(w, "%-10s %+9.4f° %+9.4f°\n", "diff", c.AltitudeDiff, c.AzimuthDiff)
}

// WriteComparisonJSON writes the comparison as indented JSON.
func WriteComparisonJSON(w io.Writer, c astro.ReferenceComparison) error {
	return writeJSON(w, c)
}

// FormatDuration formats a duration as "15h 02m" or "45m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", hours, mins)
}
