package geo

import (
	"fmt"
	"strings"
	"time"
)

// TimestampLayout is the accepted civil timestamp format (YYYY-MM-DD HH:MM:SS).
const TimestampLayout = "2006-01-02 15:04:05"

// DefaultUTCOffsetSeconds is the civil offset of the reference deployment (UTC+8).
const DefaultUTCOffsetSeconds = 8 * 3600

// MaxUTCOffsetSeconds bounds civil offsets to the range used by real time zones.
const MaxUTCOffsetSeconds = 14 * 3600

// Instant is a point in Universal Time.
type Instant struct {
	ut time.Time
}

// NormalizeInstant parses a civil timestamp taken at a fixed offset east of UT and
// returns the corresponding Universal Time instant (UT = civil - offset).
func NormalizeInstant(civil string, utcOffsetSeconds int) (Instant, error) {
	if err := ValidateOffset(utcOffsetSeconds); err != nil {
		return Instant{}, err
	}

	t, err := time.Parse(TimestampLayout, strings.TrimSpace(civil))
	if err != nil {
		return Instant{}, fmt.Errorf("%w: %q does not match YYYY-MM-DD HH:MM:SS", ErrInvalidTimestamp, civil)
	}

	// time.Parse without a zone yields UTC; shift by the civil offset.
	return Instant{ut: t.Add(-time.Duration(utcOffsetSeconds) * time.Second)}, nil
}

// ValidateOffset checks that a civil offset lies within ±14 hours.
func ValidateOffset(utcOffsetSeconds int) error {
	if utcOffsetSeconds < -MaxUTCOffsetSeconds || utcOffsetSeconds > MaxUTCOffsetSeconds {
		return fmt.Errorf("%w: %d seconds outside ±%d", ErrInvalidOffset, utcOffsetSeconds, MaxUTCOffsetSeconds)
	}
	return nil
}

// InstantFromTime wraps an arbitrary time.Time, converting it to UT.
func InstantFromTime(t time.Time) Instant {
	return Instant{ut: t.UTC()}
}

// UT returns the instant as a UTC time.Time.
func (i Instant) UT() time.Time {
	return i.ut
}

// Civil returns the instant in a fixed zone utcOffsetSeconds east of UT.
func (i Instant) Civil(utcOffsetSeconds int) time.Time {
	return i.ut.In(OffsetZone(utcOffsetSeconds))
}

// OffsetZone returns a fixed zone named like "UTC+08:00".
func OffsetZone(utcOffsetSeconds int) *time.Location {
	return time.FixedZone(FormatOffset(utcOffsetSeconds), utcOffsetSeconds)
}

// FormatOffset renders an offset in seconds as UTC±HH:MM.
func FormatOffset(utcOffsetSeconds int) string {
	sign := '+'
	if utcOffsetSeconds < 0 {
		sign = '-'
		utcOffsetSeconds = -utcOffsetSeconds
	}
	h := utcOffsetSeconds / 3600
	m := (utcOffsetSeconds % 3600) / 60
	return fmt.Sprintf("UTC%c%02d:%02d", sign, h, m)
}

func (i Instant) String() string {
	return i.ut.Format(TimestampLayout) + " UT"
}
