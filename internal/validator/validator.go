// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fundit/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("deadline_mode", validateDeadlineMode)
		_ = v.RegisterValidation("sex", validateSex)
		_ = v.RegisterValidation("supported_currency", validateSupportedCurrency)
	}
}

func validateDeadlineMode(fl validator.FieldLevel) bool {
	switch models.DeadlineMode(fl.Field().String()) {
	case models.DeadlineOngoing, models.DeadlineFixed:
		return true
	}
	return false
}

func validateSex(fl validator.FieldLevel) bool {
	switch models.Sex(fl.Field().String()) {
	case models.SexMale, models.SexFemale:
		return true
	}
	return false
}

func validateSupportedCurrency(fl validator.FieldLevel) bool {
	code := fl.Field().String()
	for _, c := range models.SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
