package models

import (
	"strings"

	apperrors "fundit/internal/errors"
)

// fieldErrors collects per-field validation messages.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return apperrors.Validation(f)
}

// checkCategory verifies category is one of allowed and that the escape
// value comes with a free-text label.
func (f fieldErrors) checkCategory(category string, allowed []string, escape, label string) {
	if category == "" {
		f.add("category", "This field is required.")
		return
	}
	if !contains(allowed, category) {
		f.add("category", `"`+category+`" is not a valid choice.`)
		return
	}
	if category == escape && strings.TrimSpace(label) == "" {
		f.add("custom_category", `Custom category is required when "`+escape+`" is selected.`)
	}
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
