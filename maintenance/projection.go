package maintenance

import "time"

// Projection defaults and clamps. The shop plans around a fixed 10,000 km
// service interval; 333 days is that interval at the 30 km/day default rate.
type ProjectionConfig struct {
	DefaultDailyKm    float64
	MinDailyKm        float64
	MaxDailyKm        float64
	ServiceIntervalKm float64
	FallbackDays      int
}

func DefaultProjectionConfig() ProjectionConfig {
	return ProjectionConfig{
		DefaultDailyKm:    30,
		MinDailyKm:        5,
		MaxDailyKm:        200,
		ServiceIntervalKm: 10000,
		FallbackDays:      333,
	}
}

// PreviousService is the most recent earlier delivered work order with a
// known mileage, excluding the one just completed.
type PreviousService struct {
	Date    time.Time
	Mileage int
}

// Projection is the recomputed vehicle enrichment written through after a
// mileage-bearing service is delivered.
type Projection struct {
	AverageDailyKm       float64
	PredictedNextService time.Time
}

// Project recomputes the average daily distance and the predicted next
// service date. With no usable prior record the defaults apply. The rate is
// only recomputed when deltaKM > 0 and deltaDays > 1; same-day repeats and
// backward odometer readings keep the previously stored rate. Recomputed
// rates are clamped to reject outlier data.
func Project(cfg ProjectionConfig, now time.Time, prev *PreviousService, currentMileage int, storedDailyKm float64) Projection {
	if prev == nil {
		return Projection{
			AverageDailyKm:       cfg.DefaultDailyKm,
			PredictedNextService: now.AddDate(0, 0, cfg.FallbackDays),
		}
	}

	rate := storedDailyKm
	if rate <= 0 {
		rate = cfg.DefaultDailyKm
	}

	deltaKM := float64(currentMileage - prev.Mileage)
	deltaDays := now.Sub(prev.Date).Hours() / 24
	if deltaKM > 0 && deltaDays > 1 {
		rate = deltaKM / deltaDays
		if rate < cfg.MinDailyKm {
			rate = cfg.MinDailyKm
		}
		if rate > cfg.MaxDailyKm {
			rate = cfg.MaxDailyKm
		}
	}

	days := int(cfg.ServiceIntervalKm / rate)
	return Projection{
		AverageDailyKm:       rate,
		PredictedNextService: now.AddDate(0, 0, days),
	}
}
