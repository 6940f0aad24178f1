package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProjectNoPreviousRecord(t *testing.T) {
	cfg := DefaultProjectionConfig()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	p := Project(cfg, now, nil, 50000, 0)
	assert.Equal(t, 30.0, p.AverageDailyKm)
	assert.Equal(t, now.AddDate(0, 0, 333), p.PredictedNextService)
}

func TestProjectClampsOutliers(t *testing.T) {
	cfg := DefaultProjectionConfig()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("clamped down to 200", func(t *testing.T) {
		prev := &PreviousService{Date: now.AddDate(0, 0, -10), Mileage: 30000}
		p := Project(cfg, now, prev, 50000, 30)
		assert.Equal(t, 200.0, p.AverageDailyKm)
		assert.Equal(t, now.AddDate(0, 0, 50), p.PredictedNextService)
	})

	t.Run("clamped up to 5", func(t *testing.T) {
		prev := &PreviousService{Date: now.AddDate(0, 0, -10), Mileage: 49994}
		p := Project(cfg, now, prev, 50000, 30)
		assert.Equal(t, 5.0, p.AverageDailyKm)
		assert.Equal(t, now.AddDate(0, 0, 2000), p.PredictedNextService)
	})
}

func TestProjectGuardsDegenerateDeltas(t *testing.T) {
	cfg := DefaultProjectionConfig()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	t.Run("same-day repeat keeps stored rate", func(t *testing.T) {
		prev := &PreviousService{Date: now.Add(-6 * time.Hour), Mileage: 49900}
		p := Project(cfg, now, prev, 50000, 42)
		assert.Equal(t, 42.0, p.AverageDailyKm)
	})

	t.Run("backward mileage keeps stored rate", func(t *testing.T) {
		prev := &PreviousService{Date: now.AddDate(0, 0, -30), Mileage: 51000}
		p := Project(cfg, now, prev, 50000, 42)
		assert.Equal(t, 42.0, p.AverageDailyKm)
	})

	t.Run("zero stored rate falls back to default", func(t *testing.T) {
		prev := &PreviousService{Date: now.Add(-6 * time.Hour), Mileage: 49900}
		p := Project(cfg, now, prev, 50000, 0)
		assert.Equal(t, 30.0, p.AverageDailyKm)
	})
}

func TestProjectNormalUsage(t *testing.T) {
	cfg := DefaultProjectionConfig()
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// 4000 km over 100 days: 40 km/day, next service in 250 days.
	prev := &PreviousService{Date: now.AddDate(0, 0, -100), Mileage: 46000}
	p := Project(cfg, now, prev, 50000, 30)
	assert.InDelta(t, 40.0, p.AverageDailyKm, 0.01)
	assert.Equal(t, now.AddDate(0, 0, 250), p.PredictedNextService)
}
