package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-sunpos/internal/astro"
	"github.com/litescript/ls-sunpos/internal/geo"
)

var beijing = astro.Observer{LatDeg: 39.907222, LonDeg: 116.391667}

func TestWritePosition(t *testing.T) {
	var buf bytes.Buffer
	err := WritePosition(&buf, astro.HorizontalPosition{AltitudeDeg: 73.1849, AzimuthDeg: 166.996})
	require.NoError(t, err)

	want := "Solar altitude: 73.18 degrees\nSolar azimuth: 167.00 degrees\n"
	if buf.String() != want {
		t.Errorf("WritePosition = %q, want %q", buf.String(), want)
	}
}

func TestExportPosition(t *testing.T) {
	obs, err := geo.ParseObserver("39 54 26 N", "116 23 30 E")
	require.NoError(t, err)
	inst, err := geo.NormalizeInstant("2024-06-21 12:00:00", geo.DefaultUTCOffsetSeconds)
	require.NoError(t, err)

	export := ExportPosition(obs, inst, geo.DefaultUTCOffsetSeconds,
		astro.HorizontalPosition{AltitudeDeg: 73.18, AzimuthDeg: 167.0})

	assert.Equal(t, "2024-06-21 12:00:00", export.CivilTime)
	assert.Equal(t, "UTC+08:00", export.UTCOffset)
	assert.Equal(t, time.Date(2024, 6, 21, 4, 0, 0, 0, time.UTC), export.UT)
	assert.Equal(t, "high", export.Tier)
	assert.Equal(t, `39°54'26.00"N`, export.Observer.Latitude)

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.InDelta(t, 73.18, decoded["altitude_deg"], 1e-9)
	assert.Contains(t, buf.String(), "\n  \"observer\"", "JSON should be indented with two spaces")
	assert.NotContains(t, buf.String(), `"name"`, "unnamed sites omit the name")

	obs.Name = "Beijing"
	assert.Equal(t, "Beijing", ExportObserver(obs).Name)
}

func TestResample(t *testing.T) {
	assert.Nil(t, Resample(nil, 10))
	assert.Nil(t, Resample([]float64{1, 2}, 0))

	got := Resample([]float64{0, 2, 4, 6}, 2)
	assert.Equal(t, []float64{1, 5}, got)

	// Fewer values than cells repeats values
	got = Resample([]float64{3, 9}, 4)
	assert.Equal(t, []float64{3, 3, 9, 9}, got)
}

func TestSparkline(t *testing.T) {
	line := Sparkline([]float64{-10, 0, 45, 90}, 4)
	if got := []rune(line); len(got) != 4 {
		t.Fatalf("Sparkline width = %d, want 4", len(got))
	}
	assert.Equal(t, " ▁▄█", line)
}

func TestBlockFor(t *testing.T) {
	assert.Equal(t, '▁', BlockFor(-1))
	assert.Equal(t, '▁', BlockFor(0))
	assert.Equal(t, '█', BlockFor(1))
	assert.Equal(t, '█', BlockFor(2))
}

func TestSummarizeAndExportTrace(t *testing.T) {
	loc := geo.OffsetZone(geo.DefaultUTCOffsetSeconds)
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, loc)
	trace := astro.ComputeDayTrace(beijing, start, 24*time.Hour, 10*time.Minute)

	s := Summarize(trace, loc)
	require.True(t, s.HasNoon)
	require.True(t, s.HasRise)
	require.True(t, s.HasSet)
	assert.False(t, s.PolarDay)
	assert.False(t, s.PolarNight)
	assert.Equal(t, 12, s.SolarNoon.Hour())
	assert.InDelta(t, 73.5, s.NoonAltitude, 0.1)
	assert.True(t, s.Sunrise.Before(s.SolarNoon))
	assert.True(t, s.Sunset.After(s.SolarNoon))

	export := ExportTrace(trace, loc)
	assert.Len(t, export.Samples, 145)
	assert.Equal(t, "10m0s", export.Interval)
	require.NotNil(t, export.Sunrise)
	assert.Equal(t, loc, export.Samples[0].Time.Location())

	var buf bytes.Buffer
	require.NoError(t, export.WriteJSON(&buf))
	assert.Contains(t, buf.String(), `"altitude_deg"`)
	assert.Contains(t, buf.String(), `"solar_noon"`)
}

func TestExportTrace_PolarNight(t *testing.T) {
	tromso := astro.Observer{LatDeg: 69.6492, LonDeg: 18.9553}
	start := time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC)
	trace := astro.ComputeDayTrace(tromso, start, 24*time.Hour, 10*time.Minute)

	export := ExportTrace(trace, time.UTC)
	assert.True(t, export.PolarNight)
	assert.Nil(t, export.Sunrise)
	assert.Nil(t, export.Sunset)

	var buf bytes.Buffer
	WriteTraceTable(&buf, trace, time.UTC, time.Hour)
	assert.Contains(t, buf.String(), "below the horizon all day")
}

func TestWriteTraceTable(t *testing.T) {
	loc := geo.OffsetZone(geo.DefaultUTCOffsetSeconds)
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, loc)
	trace := astro.ComputeDayTrace(beijing, start, 24*time.Hour, 10*time.Minute)

	var buf bytes.Buffer
	WriteTraceTable(&buf, trace, loc, time.Hour)
	out := buf.String()

	assert.Contains(t, out, "Solar noon: 12:1")
	assert.Contains(t, out, "Sunrise: 04:")
	assert.Contains(t, out, "Sunset: 19:")
	assert.Contains(t, out, "12:00 ")
	assert.NotContains(t, out, "12:10 ", "hourly rows only")

	// one row per hour, 00:00 through 24:00
	rows := 0
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "° ") {
			rows++
		}
	}
	assert.Equal(t, 25, rows)
}

func TestWriteEvents(t *testing.T) {
	loc := geo.OffsetZone(geo.DefaultUTCOffsetSeconds)
	ev := astro.DayEvents{
		Date:      time.Date(2024, 6, 21, 0, 0, 0, 0, loc),
		Sunrise:   time.Date(2024, 6, 21, 4, 46, 0, 0, loc),
		SolarNoon: time.Date(2024, 6, 21, 12, 16, 0, 0, loc),
		Sunset:    time.Date(2024, 6, 21, 19, 46, 0, 0, loc),
	}

	var buf bytes.Buffer
	WriteEvents(&buf, ev)
	out := buf.String()

	assert.Contains(t, out, "Sunrise:    04:46")
	assert.Contains(t, out, "Dawn:       --:--")
	assert.Contains(t, out, "Day length: 15h 00m")
}

func TestWriteComparison(t *testing.T) {
	c := astro.CompareWithReference(beijing, time.Date(2024, 6, 21, 4, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	WriteComparison(&buf, c)
	assert.Contains(t, buf.String(), "engine")
	assert.Contains(t, buf.String(), "meeus")
	assert.Contains(t, buf.String(), "suncalc")

	buf.Reset()
	require.NoError(t, WriteComparisonJSON(&buf, c))
	assert.Contains(t, buf.String(), `"altitude_diff_deg"`)
	assert.Contains(t, buf.String(), `"suncalc"`)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Minute, "45m"},
		{15 * time.Hour, "15h 00m"},
		{9*time.Hour + 5*time.Minute + 40*time.Second, "9h 06m"},
		{-90 * time.Minute, "1h 30m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
