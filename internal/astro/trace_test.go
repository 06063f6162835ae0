package astro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	cst          = time.FixedZone("CST", 8*3600)
	beijingPlain = Observer{LatDeg: 39.907222, LonDeg: 116.391667, Name: "Beijing"}
)

func TestComputeDayTrace_Continuity(t *testing.T) {
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, cst)
	trace := ComputeDayTrace(beijingPlain, start, 24*time.Hour, time.Minute)

	require.Len(t, trace.Samples, 24*60+1)
	assert.Equal(t, start, trace.Start)
	assert.Equal(t, start.Add(24*time.Hour), trace.End)

	assert.Equal(t, 1, trace.LocalMaxima(), "altitude should have a single daily maximum")
	// The Sun never moves more than 0.25° per minute
	assert.Less(t, trace.MaxStep(), 0.3)
}

func TestComputeDayTrace_IntervalBounds(t *testing.T) {
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, cst)

	// Sub-second spacing is raised to the minimum rather than sized from span/interval
	trace := ComputeDayTrace(beijingPlain, start, time.Minute, time.Nanosecond)
	assert.Equal(t, MinTraceInterval, trace.Interval)
	assert.Len(t, trace.Samples, 61)

	trace = ComputeDayTrace(beijingPlain, start, time.Hour, 0)
	assert.Equal(t, DefaultTraceInterval, trace.Interval)
	assert.Len(t, trace.Samples, 7)

	assert.NoError(t, ValidateTraceInterval(MinTraceInterval))
	assert.NoError(t, ValidateTraceInterval(DefaultTraceInterval))
	for _, d := range []time.Duration{0, -time.Minute, time.Nanosecond, 999 * time.Millisecond} {
		assert.ErrorIs(t, ValidateTraceInterval(d), ErrTraceInterval, "interval %v", d)
	}
}

func TestComputeDayTrace_ContinuityManySites(t *testing.T) {
	sites := []Observer{
		{LatDeg: 0, LonDeg: 0},
		{LatDeg: -33.8688, LonDeg: 151.2093},
		{LatDeg: 64.1466, LonDeg: -21.9426},
		{LatDeg: 78.2232, LonDeg: 15.6267},
		{LatDeg: -77.8419, LonDeg: 166.6863},
	}
	days := []time.Time{
		time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC),
	}

	for _, obs := range sites {
		for _, day := range days {
			// Start at local solar midnight so the daily peak is interior
			start := day.Add(-time.Duration(obs.LonDeg / 15 * float64(time.Hour)))
			trace := ComputeDayTrace(obs, start, 24*time.Hour, time.Minute)
			assert.Equal(t, 1, trace.LocalMaxima(), "lat=%v day=%v", obs.LatDeg, day)
			assert.Less(t, trace.MaxStep(), 0.3, "lat=%v day=%v", obs.LatDeg, day)
		}
	}
}

func TestDayTrace_SolarNoon(t *testing.T) {
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, cst)
	trace := ComputeDayTrace(beijingPlain, start, 24*time.Hour, 10*time.Minute)

	noon, alt, err := trace.SolarNoon()
	require.NoError(t, err)

	want := time.Date(2024, 6, 21, 12, 16, 10, 0, cst)
	assert.WithinDuration(t, want, noon, 90*time.Second)
	assert.InDelta(t, 73.53, alt, 0.05)

	assert.InDelta(t, 180, SunHorizontal(beijingPlain, noon).AzimuthDeg, 1)
}

func TestDayTrace_SolarNoonEdge(t *testing.T) {
	// Window ending before noon: peak is the last sample
	start := time.Date(2024, 6, 21, 6, 0, 0, 0, cst)
	trace := ComputeDayTrace(beijingPlain, start, 3*time.Hour, 30*time.Minute)

	noon, _, err := trace.SolarNoon()
	require.NoError(t, err)
	assert.Equal(t, trace.End, noon)

	_, _, err = (&DayTrace{}).SolarNoon()
	assert.ErrorIs(t, err, ErrEmptyTrace)
}

func TestDayTrace_HorizonCrossings(t *testing.T) {
	start := time.Date(2024, 6, 21, 0, 0, 0, 0, cst)
	trace := ComputeDayTrace(beijingPlain, start, 24*time.Hour, 5*time.Minute)

	// Almanac rise/set puts the Sun's centre at -0.833° (refraction plus semi-diameter)
	rise, set, riseOK, setOK := trace.HorizonCrossings(-0.833)
	require.True(t, riseOK)
	require.True(t, setOK)

	// Almanac: sunrise 04:46, sunset 19:46 CST
	assert.WithinDuration(t, time.Date(2024, 6, 21, 4, 46, 0, 0, cst), rise, 3*time.Minute)
	assert.WithinDuration(t, time.Date(2024, 6, 21, 19, 46, 0, 0, cst), set, 3*time.Minute)
	assert.True(t, rise.Before(set))

	assert.False(t, trace.AlwaysAbove(HorizonAltitude))
	assert.False(t, trace.AlwaysBelow(HorizonAltitude))
}

func TestDayTrace_PolarDayAndNight(t *testing.T) {
	tromso := Observer{LatDeg: 69.6492, LonDeg: 18.9553}

	summer := ComputeDayTrace(tromso, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC), 24*time.Hour, 10*time.Minute)
	assert.True(t, summer.AlwaysAbove(HorizonAltitude))
	_, _, riseOK, setOK := summer.HorizonCrossings(HorizonAltitude)
	assert.False(t, riseOK)
	assert.False(t, setOK)

	winter := ComputeDayTrace(tromso, time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC), 24*time.Hour, 10*time.Minute)
	assert.True(t, winter.AlwaysBelow(HorizonAltitude))
}

func TestComputeDayTrace_Defaults(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	trace := ComputeDayTrace(beijingPlain, start, time.Hour, 0)
	assert.Equal(t, DefaultTraceInterval, trace.Interval)
	assert.Len(t, trace.Samples, 7)

	single := ComputeDayTrace(beijingPlain, start, -time.Hour, time.Minute)
	assert.Len(t, single.Samples, 1)
	assert.Len(t, single.Altitudes(), 1)
}

func TestGetAltitudeTier(t *testing.T) {
	tests := []struct {
		alt  float64
		want AltitudeTier
	}{
		{-10, AltitudeBelowHorizon},
		{0, AltitudeBelowHorizon},
		{0.1, AltitudeLow},
		{14.9, AltitudeLow},
		{15, AltitudeMedium},
		{44.9, AltitudeMedium},
		{45, AltitudeHigh},
		{90, AltitudeHigh},
	}

	for _, tt := range tests {
		got := GetAltitudeTier(tt.alt)
		if got != tt.want {
			t.Errorf("GetAltitudeTier(%.1f) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}
