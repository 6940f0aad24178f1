package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+5493415551234"))
	assert.True(t, ValidatePhone("341 555-1234"))
	assert.False(t, ValidatePhone("abc"))
	assert.False(t, ValidatePhone("0"))
}

func TestValidatePlate(t *testing.T) {
	assert.True(t, ValidatePlate("ABC123"))
	assert.True(t, ValidatePlate("abc 123"))
	assert.True(t, ValidatePlate("AB123CD"))
	assert.True(t, ValidatePlate("ab-123-cd"))
	assert.False(t, ValidatePlate("A123"))
	assert.False(t, ValidatePlate("ABCD1234"))
}

func TestNormalizePlate(t *testing.T) {
	assert.Equal(t, "AB123CD", NormalizePlate("ab 123-cd"))
}
