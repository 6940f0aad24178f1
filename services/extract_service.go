// services/extract_service.go
package services

// LeadGuess is the advisory output of the text-extraction collaborator.
type LeadGuess struct {
	VehicleModel string `json:"vehicleModel"`
	Plate        string `json:"plate"`
	Urgency      string `json:"urgency"` // low, medium, high
	Summary      string `json:"summary"`
}

// TextExtractor turns raw intake free-text into a structured best-effort
// guess. The output is advisory only; intake never blocks on its success.
type TextExtractor interface {
	Extract(raw string) (LeadGuess, error)
}

// NoopExtractor is the default when no extraction backend is configured.
type NoopExtractor struct{}

func (NoopExtractor) Extract(raw string) (LeadGuess, error) {
	return LeadGuess{Summary: raw}, nil
}
