package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxNameLength = 100

// Detect HTML/script tags
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// ValidateStationName checks a caller-supplied station name. Empty or unknown names are
// allowed here; they fail later as unknown stations. Store lookups are parameterized, so
// punctuation such as ';' or "--" is a legal part of a name.
func ValidateStationName(name string) error {
	if utf8.RuneCountInString(name) > maxNameLength {
		return errors.New("name too long (max 100 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return errors.New("name contains control characters")
		}
	}

	return nil
}

// ValidateCriteria only bounds the length; unknown values are reported by the path service.
func ValidateCriteria(criteria string) error {
	if len(criteria) > 20 {
		return errors.New("criteria too long (max 20 characters)")
	}
	return nil
}

// SanitizeInput removes HTML tags and surrounding whitespace
func SanitizeInput(input string) string {
	sanitized := htmlTagPattern.ReplaceAllString(input, "")
	return strings.TrimSpace(sanitized)
}

// ValidatePathParams validates the fields of a path query and returns per-field errors.
func ValidatePathParams(source, target, criteria string) map[string][]string {
	fieldErrors := make(map[string][]string)

	if err := ValidateStationName(source); err != nil {
		fieldErrors["source"] = append(fieldErrors["source"], err.Error())
	}

	if err := ValidateStationName(target); err != nil {
		fieldErrors["target"] = append(fieldErrors["target"], err.Error())
	}

	if err := ValidateCriteria(criteria); err != nil {
		fieldErrors["criteria"] = append(fieldErrors["criteria"], err.Error())
	}

	return fieldErrors
}
