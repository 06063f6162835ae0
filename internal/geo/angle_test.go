package geo

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		name    string
		deg     int
		min     float64
		sec     float64
		hemi    Hemisphere
		want    float64
		wantErr bool
	}{
		{"Beijing latitude", 39, 54, 26, North, 39 + 54.0/60 + 26.0/3600, false},
		{"Beijing longitude", 116, 23, 30, East, 116 + 23.0/60 + 30.0/3600, false},
		{"south is negative", 33, 52, 4, South, -(33 + 52.0/60 + 4.0/3600), false},
		{"west is negative", 74, 0, 21.6, West, -(74 + 0.0/60 + 21.6/3600), false},
		{"zero", 0, 0, 0, North, 0, false},
		{"degrees at upper bound", 180, 0, 0, East, 180, false},
		{"minutes just below 60", 10, 59.999, 0, North, 10 + 59.999/60, false},
		{"seconds just below 60", 10, 0, 59.999, North, 10 + 59.999/3600, false},
		{"degrees 181", 181, 0, 0, East, 0, true},
		{"negative degrees", -1, 0, 0, North, 0, true},
		{"minutes 60", 10, 60, 0, North, 0, true},
		{"negative minutes", 10, -0.5, 0, North, 0, true},
		{"seconds 60", 10, 0, 60, North, 0, true},
		{"NaN seconds", 10, 0, math.NaN(), North, 0, true},
		{"bad hemisphere", 10, 0, 0, Hemisphere('X'), 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAngle(tt.deg, tt.min, tt.sec, tt.hemi)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidCoordinate), "error %v should wrap ErrInvalidCoordinate", err)
				assert.Equal(t, GeoAngle{}, got)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Degrees(), 1e-9)
			assert.Equal(t, tt.hemi, got.Hemisphere())
		})
	}
}

func TestNormalizeAngle_MagnitudeAndSign(t *testing.T) {
	for _, h := range []Hemisphere{North, South, East, West} {
		for deg := 0; deg <= 180; deg += 15 {
			for _, minutes := range []float64{0, 12.5, 59.5} {
				for _, sec := range []float64{0, 7.25, 59.75} {
					got, err := NormalizeAngle(deg, minutes, sec, h)
					require.NoError(t, err)

					mag := float64(deg) + minutes/60 + sec/3600
					assert.InDelta(t, mag, math.Abs(got.Degrees()), 1e-9)
					if mag > 0 {
						assert.Equal(t, h.Sign(), math.Copysign(1, got.Degrees()),
							"sign of %v for hemisphere %s", got.Degrees(), h)
					}
				}
			}
		}
	}
}

func TestParseHemisphere(t *testing.T) {
	tests := []struct {
		in      string
		want    Hemisphere
		wantErr bool
	}{
		{"N", North, false},
		{"s", South, false},
		{" e ", East, false},
		{"w", West, false},
		{"", 0, true},
		{"NE", 0, true},
		{"x", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseHemisphere(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidCoordinate, "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseDMS(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"39 54 26 N", 39.907222222, false},
		{`39°54'26"N`, 39.907222222, false},
		{"116:23:30E", 116.391666667, false},
		{"33 52 4.5 s", -(33 + 52.0/60 + 4.5/3600), false},
		{"39 54.5 0 N", 39 + 54.5/60, false},
		{"0 0 0 W", 0, false},
		{"181 0 0 E", 0, true},
		{"39 60 0 N", 0, true},
		{"39.5 N", 0, true},
		{"north", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDMS(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCoordinate)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Degrees(), 1e-6)
		})
	}
}

func TestGeoAngleString(t *testing.T) {
	a, err := NormalizeAngle(39, 54, 26, North)
	require.NoError(t, err)
	assert.Equal(t, `39°54'26.00"N`, a.String())

	b, err := NormalizeAngle(116, 23, 30, East)
	require.NoError(t, err)
	assert.Equal(t, `116°23'30.00"E`, b.String())

	d, m, s := b.DMS()
	assert.Equal(t, 116, d)
	assert.Equal(t, 23, m)
	assert.InDelta(t, 30, s, 1e-6)
}
