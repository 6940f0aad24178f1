package maintenance

import (
	"strconv"
	"strings"
)

// detailDone is the detail text used when a payload only confirms an item
// was serviced (boolean flag) without any free text or product code.
const detailDone = "Cambiado"

// extractor pulls a per-item detail string out of the structured payload.
// The second return reports positive confirmation that the item was actually
// performed, as opposed to merely mentioned somewhere in the record.
type extractor func(detail map[string]interface{}) (string, bool)

// fieldExtractor handles the common shape shared by filters, fluids and
// simple services: a payload key holding either a free-text/product-code
// string or a plain "it was done" boolean.
func fieldExtractor(key string) extractor {
	return func(detail map[string]interface{}) (string, bool) {
		v, ok := detail[key]
		if !ok {
			return "", false
		}
		switch t := v.(type) {
		case string:
			if s := strings.TrimSpace(t); s != "" {
				return s, true
			}
			return "", false
		case bool:
			if t {
				return detailDone, true
			}
			return "", false
		default:
			return "", false
		}
	}
}

// oilExtractor concatenates brand and type when present; a liters figure
// alone still confirms the change was performed.
func oilExtractor(detail map[string]interface{}) (string, bool) {
	brand := stringField(detail, "oilBrand")
	oilType := stringField(detail, "oilType")
	parts := []string{}
	if brand != "" {
		parts = append(parts, brand)
	}
	if oilType != "" {
		parts = append(parts, oilType)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " "), true
	}
	if free := stringField(detail, "oil"); free != "" {
		return free, true
	}
	if _, ok := numberField(detail, "oilLiters"); ok {
		return detailDone, true
	}
	return "", false
}

var extractors = map[ItemKey]extractor{
	OilFilter:    fieldExtractor("oilFilter"),
	AirFilter:    fieldExtractor("airFilter"),
	FuelFilter:   fieldExtractor("fuelFilter"),
	CabinFilter:  fieldExtractor("cabinFilter"),
	EngineOil:    oilExtractor,
	Coolant:      fieldExtractor("coolant"),
	BrakeFluid:   fieldExtractor("brakeFluid"),
	GearboxOil:   fieldExtractor("gearboxOil"),
	Tyres:        fieldExtractor("tyres"),
	TireRotation: fieldExtractor("tireRotation"),
	Wipers:       fieldExtractor("wipers"),
	Battery:      fieldExtractor("battery"),
}

func stringField(detail map[string]interface{}, key string) string {
	if v, ok := detail[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// numberField accepts both JSON numbers and numeric strings; JSONB payloads
// round-trip numbers as float64.
func numberField(detail map[string]interface{}, key string) (float64, bool) {
	v, ok := detail[key]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case int:
		return float64(t), true
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", ".")
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
