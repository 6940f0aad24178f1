package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemByKey(t *testing.T, report Report, key ItemKey) ItemStatus {
	t.Helper()
	for _, item := range report.Items {
		if item.Key == key {
			return item
		}
	}
	t.Fatalf("item %s not in report", key)
	return ItemStatus{}
}

func TestEvaluateEmptyHistory(t *testing.T) {
	report := Evaluate(DefaultConfig(), time.Now(), nil)

	require.Len(t, report.Items, len(Catalog))
	for _, item := range report.Items {
		assert.Equal(t, StatusUnknown, item.Status)
		assert.Nil(t, item.LastDate)
		assert.Nil(t, item.Mileage)
		assert.Nil(t, item.DaysAgo)
	}
	assert.Nil(t, report.OilCapacity)
	assert.Nil(t, report.BatteryVoltage)
}

func TestEvaluateStatusThresholds(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		daysAgo int
		want    string
	}{
		{"recent change is OK", 300, StatusOK},
		{"threshold edge is OK", 365, StatusOK},
		{"stale change warns", 400, StatusWarning},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			history := []Record{{
				Date:    now.AddDate(0, 0, -tc.daysAgo),
				Mileage: 78000,
				Detail:  map[string]interface{}{"oilBrand": "Shell", "oilType": "10W40"},
			}}
			report := Evaluate(DefaultConfig(), now, history)
			oil := itemByKey(t, report, EngineOil)
			assert.Equal(t, tc.want, oil.Status)
			require.NotNil(t, oil.DaysAgo)
			assert.Equal(t, tc.daysAgo, *oil.DaysAgo)
			assert.Equal(t, "Shell 10W40", oil.Detail)
		})
	}
}

func TestEvaluateNewestValidMatchWins(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// The newer record only carries a done-flag, the older one a product
	// code. Newest-first scanning means the flag wins, with the default
	// detail text.
	history := []Record{
		{
			Date:    now.AddDate(0, 0, -200),
			Mileage: 60000,
			Notes:   "cambio filtro de aceite",
			Detail:  map[string]interface{}{"oilFilter": "MANN W712/75"},
		},
		{
			Date:    now.AddDate(0, 0, -20),
			Mileage: 64000,
			Notes:   "service, filtro de aceite",
			Detail:  map[string]interface{}{"oilFilter": true},
		},
	}

	report := Evaluate(DefaultConfig(), now, history)
	filter := itemByKey(t, report, OilFilter)
	require.NotNil(t, filter.DaysAgo)
	assert.Equal(t, 20, *filter.DaysAgo)
	assert.Equal(t, "Cambiado", filter.Detail)
	assert.Equal(t, 64000, *filter.Mileage)
}

func TestEvaluateMentionWithoutConfirmationIsSkipped(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	history := []Record{
		{
			// Mentioned in the notes but neither a line item nor a
			// structured confirmation: not a valid match.
			Date:  now.AddDate(0, 0, -10),
			Notes: "cliente consulta por refrigerante",
		},
		{
			Date:    now.AddDate(0, 0, -100),
			Mileage: 55000,
			Detail:  map[string]interface{}{"coolant": "Organico rosa"},
		},
	}

	report := Evaluate(DefaultConfig(), now, history)
	coolant := itemByKey(t, report, Coolant)
	assert.Equal(t, StatusOK, coolant.Status)
	require.NotNil(t, coolant.DaysAgo)
	assert.Equal(t, 100, *coolant.DaysAgo)
	assert.Equal(t, "Organico rosa", coolant.Detail)
}

func TestEvaluateLineItemMatch(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	history := []Record{{
		Date:      now.AddDate(0, 0, -5),
		Mileage:   81000,
		LineItems: []string{"Escobillas Bosch Aerotwin 20\""},
	}}

	report := Evaluate(DefaultConfig(), now, history)
	wipers := itemByKey(t, report, Wipers)
	assert.Equal(t, StatusOK, wipers.Status)
	assert.Equal(t, "Escobillas Bosch Aerotwin 20\"", wipers.Detail)
}

func TestEvaluateEndToEnd(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	// No history: everything unknown.
	empty := Evaluate(DefaultConfig(), now, nil)
	assert.Equal(t, StatusUnknown, itemByKey(t, empty, EngineOil).Status)
	assert.Nil(t, empty.OilCapacity)

	// One work order delivered today with structured oil data.
	history := []Record{{
		Date:    now,
		Mileage: 90000,
		Detail: map[string]interface{}{
			"oilBrand":  "Shell",
			"oilType":   "10W40",
			"oilLiters": float64(4),
		},
	}}
	report := Evaluate(DefaultConfig(), now, history)

	oil := itemByKey(t, report, EngineOil)
	assert.Equal(t, StatusOK, oil.Status)
	assert.Equal(t, "Shell 10W40", oil.Detail)
	require.NotNil(t, report.OilCapacity)
	assert.Equal(t, "4", *report.OilCapacity)
}

func TestMineOilCapacityFromFreeText(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		text string
		want string
	}{
		{"4L Shell Helix", "4"},
		{"4,5 LTS Total 9000", "4.5"},
		{"3.5l Elaion F50", "3.5"},
	}

	for _, tc := range cases {
		history := []Record{{
			Date:   now,
			Detail: map[string]interface{}{"oil": tc.text},
		}}
		report := Evaluate(DefaultConfig(), now, history)
		require.NotNil(t, report.OilCapacity, tc.text)
		assert.Equal(t, tc.want, *report.OilCapacity)
	}
}

func TestMineBatteryVoltage(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	history := []Record{
		{
			Date:   now.AddDate(0, 0, -30),
			Detail: map[string]interface{}{"batteryVoltage": 12.6},
		},
		{
			Date:   now.AddDate(0, 0, -400),
			Detail: map[string]interface{}{"batteryVoltage": 12.1},
		},
	}

	report := Evaluate(DefaultConfig(), now, history)
	require.NotNil(t, report.BatteryVoltage)
	assert.Equal(t, "12.6", *report.BatteryVoltage)
}

func TestClassify(t *testing.T) {
	rec := Record{
		ServiceName: "Cambio de aceite",
		Notes:       "se cambió filtro de aire, cliente pide presupuesto batería",
		LineItems:   []string{"Refrigerante Paraflu 1L"},
	}

	hits := Classify(rec)
	assert.True(t, hits[EngineOil])
	assert.True(t, hits[AirFilter])
	assert.True(t, hits[Battery])
	assert.True(t, hits[Coolant])
	assert.False(t, hits[Wipers])
}
