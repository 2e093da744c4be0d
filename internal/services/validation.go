package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrValidation matches every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a field constraint violation. Its message is shown
// to API callers as-is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, format string, args ...interface{}) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// requiredText trims value and checks it is non-empty and at most max runes.
func requiredText(field, label, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", invalid(field, "%s is required", label)
	}
	if utf8.RuneCountInString(value) > max {
		return "", invalid(field, "%s cannot exceed %d characters", label, max)
	}
	return value, nil
}

// optionalText trims value and checks it is at most max runes.
func optionalText(field, label, value string, max int) (string, error) {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) > max {
		return "", invalid(field, "%s cannot exceed %d characters", label, max)
	}
	return value, nil
}

// uniqueUint64 removes duplicate values from a slice of uint64
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
