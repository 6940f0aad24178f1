// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var plateRegex = regexp.MustCompile(`^([A-Z]{3}\d{3}|[A-Z]{2}\d{3}[A-Z]{2})$`)

// ValidatePlate accepts Argentinean plates, old (ABC123) and Mercosur
// (AB123CD) formats.
func ValidatePlate(plate string) bool {
	cleaned := strings.ToUpper(strings.ReplaceAll(plate, " ", ""))
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	return plateRegex.MatchString(cleaned)
}

// NormalizePlate returns the canonical storage form of a plate.
func NormalizePlate(plate string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(plate, " ", ""))
	return strings.ReplaceAll(cleaned, "-", "")
}
