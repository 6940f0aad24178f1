package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// shopTime builds an instant at the given shop-local wall-clock time.
func shopTime(hour, min int) time.Time {
	loc := time.FixedZone("UTC-3", -3*60*60)
	return time.Date(2025, 6, 10, hour, min, 0, 0, loc)
}

func TestWithinBusinessHours(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before opening", shopTime(7, 59), false},
		{"opening edge", shopTime(8, 30), true},
		{"mid morning", shopTime(11, 0), true},
		{"midday close edge", shopTime(13, 0), false},
		{"siesta", shopTime(14, 30), false},
		{"afternoon opening", shopTime(16, 30), true},
		{"last slot", shopTime(20, 29), true},
		{"closing edge", shopTime(20, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, cfg.WithinBusinessHours(tc.at))
		})
	}
}

func TestWithinBusinessHoursNormalizesTimezone(t *testing.T) {
	cfg := DefaultConfig()

	// 11:30 UTC is 08:30 shop-local, right on the opening edge.
	utc := time.Date(2025, 6, 10, 11, 30, 0, 0, time.UTC)
	assert.True(t, cfg.WithinBusinessHours(utc))
	assert.False(t, cfg.WithinBusinessHours(utc.Add(-time.Minute)))
}

func TestOverlapsHalfOpen(t *testing.T) {
	nine := shopTime(9, 0)
	nineThirty := shopTime(9, 30)
	ten := shopTime(10, 0)

	// Back-to-back slots do not overlap.
	assert.False(t, Overlaps(nineThirty, ten, nine, nineThirty))
	// One minute earlier does.
	assert.True(t, Overlaps(shopTime(9, 29), shopTime(9, 59), nine, nineThirty))
	// Containment overlaps.
	assert.True(t, Overlaps(nine, ten, shopTime(9, 10), shopTime(9, 20)))
}

func TestFindConflict(t *testing.T) {
	cfg := DefaultConfig()
	existing := []Booking{
		{Start: shopTime(9, 0), Duration: 30 * time.Minute, ServiceName: "Cambio de aceite"},
		{Start: shopTime(10, 0), Duration: 60 * time.Minute, ServiceName: "Service completo"},
	}

	t.Run("adjacent slot is free", func(t *testing.T) {
		assert.Nil(t, cfg.FindConflict(shopTime(9, 30), 30*time.Minute, existing))
	})

	t.Run("one minute overlap rejects", func(t *testing.T) {
		conflict := cfg.FindConflict(shopTime(9, 29), 30*time.Minute, existing)
		assert.NotNil(t, conflict)
		assert.Equal(t, "Cambio de aceite", conflict.ServiceName)
		assert.Contains(t, conflict.Error(), "Cambio de aceite")
	})

	t.Run("first conflict wins", func(t *testing.T) {
		conflict := cfg.FindConflict(shopTime(9, 15), 90*time.Minute, existing)
		assert.NotNil(t, conflict)
		assert.Equal(t, "Cambio de aceite", conflict.ServiceName)
	})
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	existing := []Booking{
		{Start: shopTime(9, 0), Duration: 30 * time.Minute, ServiceName: "Cambio de aceite"},
	}

	t.Run("outside hours rejected", func(t *testing.T) {
		err := cfg.Validate(shopTime(7, 0), 30*time.Minute, existing, false)
		assert.Error(t, err)
		var hours *ErrOutsideHours
		assert.ErrorAs(t, err, &hours)
	})

	t.Run("conflict rejected", func(t *testing.T) {
		err := cfg.Validate(shopTime(9, 15), 30*time.Minute, existing, false)
		var conflict *Conflict
		assert.ErrorAs(t, err, &conflict)
	})

	t.Run("force bypasses everything", func(t *testing.T) {
		assert.NoError(t, cfg.Validate(shopTime(7, 0), 30*time.Minute, existing, true))
		assert.NoError(t, cfg.Validate(shopTime(9, 15), 30*time.Minute, existing, true))
	})

	t.Run("clean slot accepted", func(t *testing.T) {
		assert.NoError(t, cfg.Validate(shopTime(11, 0), 30*time.Minute, existing, false))
	})
}

func TestResolveDuration(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 30*time.Minute, cfg.ResolveDuration(0))
	assert.Equal(t, 45*time.Minute, cfg.ResolveDuration(45))
}

func TestSearchRange(t *testing.T) {
	cfg := DefaultConfig()
	from, to := cfg.SearchRange(shopTime(9, 0), 30*time.Minute)
	assert.True(t, from.Equal(shopTime(6, 0)))
	assert.True(t, to.Equal(shopTime(12, 30)))
}
