package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/report"
)

// altColorLow is the color for the Sun near the horizon (deep orange).
var altColorLow = [3]uint8{0x9c, 0x3d, 0x1a}

// altColorMid is the color for mid altitude (amber).
var altColorMid = [3]uint8{0xf4, 0xa2, 0x61}

// altColorHigh is the color for high altitude (pale yellow).
var altColorHigh = [3]uint8{0xff, 0xf1, 0xa8}

const nightColor = "#1b2b4b"

// sparklineWidth fits the day sparkline to the terminal.
func sparklineWidth(termWidth int) int {
	if termWidth <= 0 {
		return report.SparklineWidth
	}
	w := termWidth - 20
	if w > 96 {
		w = 96
	}
	if w < 12 {
		w = 12
	}
	return w
}

// renderTraceSparkline draws the day's altitude curve with a marker at the cell
// containing at.
func renderTraceSparkline(trace *astro.DayTrace, at time.Time, width int) string {
	cells := report.Resample(trace.Altitudes(), width)
	if len(cells) == 0 {
		return mutedStyle.Render("No trace")
	}

	marker := markerIndex(trace.Start, trace.End, at, len(cells))
	night := lipgloss.NewStyle().Foreground(lipgloss.Color(nightColor))
	markerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27")).Bold(true)

	var sb strings.Builder
	for i, alt := range cells {
		if i == marker {
			sb.WriteString(markerStyle.Render("│"))
			continue
		}
		if alt < 0 {
			sb.WriteString(night.Render("▁"))
			continue
		}

		t := report.AltitudeLevel(alt)
		r, g, b := interpolateAltColor(t)
		color := fmt.Sprintf("#%02x%02x%02x", r, g, b)
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(report.BlockFor(t))))
	}

	if noon, alt, err := trace.SolarNoon(); err == nil {
		sb.WriteString(mutedStyle.Render(fmt.Sprintf(" noon %s %.1f°", noon.In(trace.Start.Location()).Format("15:04"), alt)))
	}
	return sb.String()
}

// markerIndex maps at onto a cell in [0,cells), or -1 when outside the window.
func markerIndex(start, end, at time.Time, cells int) int {
	span := end.Sub(start)
	if span <= 0 || at.Before(start) || at.After(end) {
		return -1
	}
	idx := int(float64(at.Sub(start)) / float64(span) * float64(cells))
	if idx >= cells {
		idx = cells - 1
	}
	return idx
}

// interpolateAltColor returns RGB for altitude level t in [0, 1].
// Gradient: low (deep orange) → mid (amber) → high (pale yellow).
func interpolateAltColor(t float64) (uint8, uint8, uint8) {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	lerp := func(a, b uint8, s float64) uint8 {
		return uint8(float64(a)*(1-s) + float64(b)*s)
	}

	if t < 0.5 {
		s := t * 2
		return lerp(altColorLow[0], altColorMid[0], s), lerp(altColorLow[1], altColorMid[1], s), lerp(altColorLow[2], altColorMid[2], s)
	}
	s := (t - 0.5) * 2
	return lerp(altColorMid[0], altColorHigh[0], s), lerp(altColorMid[1], altColorHigh[1], s), lerp(altColorMid[2], altColorHigh[2], s)
}
