package testutil

import (
	"errors"
	"testing"

	apperrors "fundit/internal/errors"
)

// AssertAppError fails unless err is an *AppError carrying expectedCode.
func AssertAppError(t *testing.T, err error, expectedCode string) *apperrors.AppError {
	t.Helper()

	if err == nil {
		t.Fatalf("expected AppError with code %q, got nil", expectedCode)
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}

	if appErr.Code != expectedCode {
		t.Errorf("expected error code %q, got %q (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
	return appErr
}

// AssertValidationFields fails unless err is a VALIDATION_ERROR naming
// every one of fields.
func AssertValidationFields(t *testing.T, err error, fields ...string) {
	t.Helper()

	appErr := AssertAppError(t, err, apperrors.ErrValidation.Code)
	for _, field := range fields {
		if appErr.Fields[field] == "" {
			t.Errorf("expected a message for field %q, got %v", field, appErr.Fields)
		}
	}
}

// AssertMoney fails unless got formats as want with two fraction digits.
func AssertMoney(t *testing.T, got interface{ StringFixed(int32) string }, want string) {
	t.Helper()

	if s := got.StringFixed(2); s != want {
		t.Errorf("expected amount %s, got %s", want, s)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
