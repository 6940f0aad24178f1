package maintenance

import (
	"regexp"
	"sort"
	"time"
)

// Health status per tracked item.
const (
	StatusOK      = "OK"
	StatusWarning = "WARNING"
	// StatusDanger exists for forward compatibility; no threshold currently
	// assigns it.
	StatusDanger  = "DANGER"
	StatusUnknown = "UNKNOWN"
)

type Config struct {
	// A valid match older than this many days downgrades OK to WARNING.
	WarningAfterDays int
}

func DefaultConfig() Config {
	return Config{WarningAfterDays: 365}
}

// ItemStatus is the per-item rollup: most recent valid occurrence plus a
// derived health status. Derived fresh on every query, never persisted.
type ItemStatus struct {
	Key      ItemKey      `json:"key"`
	Label    string       `json:"label"`
	Category ItemCategory `json:"category"`
	Status   string       `json:"status"`
	LastDate *time.Time   `json:"lastDate"`
	Mileage  *int         `json:"lastMileage"`
	DaysAgo  *int         `json:"daysAgo"`
	Detail   string       `json:"detail,omitempty"`
}

// Report is the full rollup plus auxiliary figures mined independently of
// the per-item logic.
type Report struct {
	Items          []ItemStatus `json:"items"`
	OilCapacity    *string      `json:"oilCapacity"`
	BatteryVoltage *string      `json:"batteryVoltage"`
}

// leading numeric token with optional decimal separator and L/LTS suffix
var capacityPattern = regexp.MustCompile(`(?i)^\s*(\d+(?:[.,]\d+)?)\s*(?:LTS|L)?\b`)

// Evaluate scans the vehicle's history once per tracked item, newest first,
// stopping at the first valid match. A match is valid when a line item named
// the item, or the structured payload positively confirmed it; a bare
// mention in free text is not enough.
func Evaluate(cfg Config, now time.Time, history []Record) Report {
	records := make([]Record, len(history))
	copy(records, history)
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})

	report := Report{Items: make([]ItemStatus, 0, len(Catalog))}
	for _, def := range Catalog {
		report.Items = append(report.Items, evaluateItem(cfg, now, def, records))
	}
	report.OilCapacity = mineOilCapacity(records)
	report.BatteryVoltage = mineBatteryVoltage(records)
	return report
}

func evaluateItem(cfg Config, now time.Time, def ItemDef, records []Record) ItemStatus {
	status := ItemStatus{
		Key:      def.Key,
		Label:    def.Label,
		Category: def.Category,
		Status:   StatusUnknown,
	}

	extract := extractors[def.Key]
	for _, rec := range records {
		lineText, lineHit := rec.matchLineItem(def.Keywords)

		detail, confirmed := "", false
		if extract != nil {
			detail, confirmed = extract(rec.Detail)
		}
		// A keyword mention in notes or the service name alone is not
		// enough; the item must appear as a line item or be positively
		// confirmed by the structured payload.
		if !lineHit && !confirmed {
			continue
		}
		if detail == "" {
			if lineText != "" {
				detail = lineText
			} else {
				detail = detailDone
			}
		}

		daysAgo := daysBetween(rec.Date, now)
		date := rec.Date
		mileage := rec.Mileage
		status.LastDate = &date
		status.Mileage = &mileage
		status.DaysAgo = &daysAgo
		status.Detail = detail
		if daysAgo <= cfg.WarningAfterDays {
			status.Status = StatusOK
		} else {
			status.Status = StatusWarning
		}
		return status
	}
	return status
}

// mineOilCapacity returns the newest explicit liters figure, either from the
// structured payload or from the leading token of a free-text oil field.
func mineOilCapacity(records []Record) *string {
	for _, rec := range records {
		if f, ok := numberField(rec.Detail, "oilLiters"); ok && f > 0 {
			s := formatNumber(f)
			return &s
		}
		if free := stringField(rec.Detail, "oil"); free != "" {
			if m := capacityPattern.FindStringSubmatch(free); m != nil {
				s := normalizeDecimal(m[1])
				return &s
			}
		}
	}
	return nil
}

func mineBatteryVoltage(records []Record) *string {
	for _, rec := range records {
		if f, ok := numberField(rec.Detail, "batteryVoltage"); ok && f > 0 {
			s := formatNumber(f)
			return &s
		}
	}
	return nil
}

func normalizeDecimal(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == ',' {
			out[i] = '.'
		} else {
			out[i] = s[i]
		}
	}
	return string(out)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
