package maintenance

import (
	"encoding/json"
	"strings"
	"time"
)

// Record is one delivered work order as the engine sees it: line-item
// descriptions, free-text fields and the semi-structured detail payload.
// History is expected newest-first; Evaluate sorts defensively anyway.
type Record struct {
	Date        time.Time
	Mileage     int
	ServiceName string
	Notes       string
	LineItems   []string
	Detail      map[string]interface{}
}

// searchText returns the lowercase haystack for keyword matching outside of
// line items: notes, service name, and the serialized detail payload.
func (r Record) searchText() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(r.Notes))
	b.WriteString(" ")
	b.WriteString(strings.ToLower(r.ServiceName))
	if len(r.Detail) > 0 {
		if raw, err := json.Marshal(r.Detail); err == nil {
			b.WriteString(" ")
			b.WriteString(strings.ToLower(string(raw)))
		}
	}
	return b.String()
}

// matchLineItem returns the first line item containing one of the keywords.
func (r Record) matchLineItem(keywords []string) (string, bool) {
	for _, item := range r.LineItems {
		lowered := strings.ToLower(item)
		for _, kw := range keywords {
			if strings.Contains(lowered, kw) {
				return item, true
			}
		}
	}
	return "", false
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// Classify reports which tracked items a record mentions, via line items or
// free text. A mention is not yet a valid match; extractors decide that.
func Classify(r Record) map[ItemKey]bool {
	hits := make(map[ItemKey]bool)
	text := r.searchText()
	for _, def := range Catalog {
		if _, ok := r.matchLineItem(def.Keywords); ok {
			hits[def.Key] = true
			continue
		}
		if containsAny(text, def.Keywords) {
			hits[def.Key] = true
		}
	}
	return hits
}
