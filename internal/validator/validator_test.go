package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Mode     string `validate:"omitempty,deadline_mode"`
	Sex      string `validate:"omitempty,sex"`
	Currency string `validate:"omitempty,supported_currency"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	for tag, fn := range map[string]validator.Func{
		"deadline_mode":      validateDeadlineMode,
		"sex":                validateSex,
		"supported_currency": validateSupportedCurrency,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			t.Fatalf("register %s: %v", tag, err)
		}
	}
	return v
}

func TestCustomValidators(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		name  string
		input sample
		valid bool
	}{
		{"ongoing mode", sample{Mode: "ongoing"}, true},
		{"fixed mode", sample{Mode: "fixed"}, true},
		{"unknown mode", sample{Mode: "sometimes"}, false},
		{"sex", sample{Sex: "Female"}, true},
		{"lower-case sex", sample{Sex: "female"}, false},
		{"supported currency", sample{Currency: "GBP"}, true},
		{"unsupported currency", sample{Currency: "JPY"}, false},
		{"empty fields", sample{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.input)
			if tt.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
