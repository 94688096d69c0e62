package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStationName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
		errMsg  string
	}{
		{name: "ascii name", input: "Jamsil", wantErr: false},
		{name: "hangul name", input: "잠실새내", wantErr: false},
		{name: "name with spaces and dots", input: "St. James's Park", wantErr: false},
		{name: "empty name is left to the path service", input: "", wantErr: false},
		{name: "name too long", input: strings.Repeat("a", 101), wantErr: true, errMsg: "name too long (max 100 characters)"},
		{name: "hangul at the limit", input: strings.Repeat("역", 100), wantErr: false},
		{name: "punctuation is left to the lookup", input: "Jamsil'; DROP TABLE stations; --", wantErr: false},
		{name: "double hyphen", input: "Seokchon--Gobun", wantErr: false},
		{name: "control character", input: "Jam\x00sil", wantErr: true, errMsg: "name contains control characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStationName(tt.input)
			if tt.wantErr {
				assert.EqualError(t, err, tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePathParams(t *testing.T) {
	assert.Empty(t, ValidatePathParams("Jamsil", "Samjeon", "distance"))
	assert.Empty(t, ValidatePathParams("Jamsil", "Samjeon", "fare"), "unknown criteria is not a field error")

	fieldErrors := ValidatePathParams("Jam\tsil", strings.Repeat("x", 101), strings.Repeat("d", 21))
	assert.Len(t, fieldErrors, 3)
	assert.Equal(t, []string{"name contains control characters"}, fieldErrors["source"])
	assert.Equal(t, []string{"name too long (max 100 characters)"}, fieldErrors["target"])
	assert.Equal(t, []string{"criteria too long (max 20 characters)"}, fieldErrors["criteria"])
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "Jamsil", SanitizeInput("  Jamsil "))
	assert.Equal(t, "Jamsil", SanitizeInput("<b>Jamsil</b>"))
	assert.Equal(t, "", SanitizeInput("   "))
}

func TestHaversine(t *testing.T) {
	assert.InDelta(t, 0, Haversine(37.5133, 127.1001, 37.5133, 127.1001), 1e-9)

	// one degree of latitude is roughly 111km
	assert.InDelta(t, 111195, Haversine(0, 0, 1, 0), 50)

	assert.InDelta(t, Haversine(37.5, 127.0, 37.6, 127.1), Haversine(37.6, 127.1, 37.5, 127.0), 1e-6)
}
