// Package validation checks decoded API request bodies against their
// validate struct tags.
package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/chris/transaction-backoffice/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
	errValidate  error
)

func initValidators() (*validator.Validate, error) {
	vld := validator.New(validator.WithRequiredStructEnabled())

	// positive_amount accepts decimal strings greater than zero.
	if err := vld.RegisterValidation("positive_amount", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		if str == "" {
			return true // Let required tag handle empty strings
		}
		d, err := decimal.NewFromString(str)
		if err != nil {
			return false
		}
		return d.IsPositive()
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'positive_amount': %w", err)
	}

	if err := vld.RegisterValidation("nonnegative_amount", func(fl validator.FieldLevel) bool {
		str := fl.Field().String()
		if str == "" {
			return true
		}
		d, err := decimal.NewFromString(str)
		if err != nil {
			return false
		}
		return !d.IsNegative()
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'nonnegative_amount': %w", err)
	}

	if err := vld.RegisterValidation("tx_status", func(fl validator.FieldLevel) bool {
		_, err := models.ParseTransactionStatus(fl.Field().String())
		return err == nil
	}); err != nil {
		return nil, fmt.Errorf("failed to register 'tx_status': %w", err)
	}

	return vld, nil
}

// GetValidator returns the singleton validator instance.
func GetValidator() (*validator.Validate, error) {
	validateOnce.Do(func() {
		validate, errValidate = initValidators()
	})
	return validate, errValidate
}

// Struct validates payload. Failures wrap models.ErrValidation and name the
// first offending field.
func Struct(payload any) error {
	vld, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator initialization failed: %w", err)
	}

	if err := vld.Struct(payload); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
			return formatValidationError(validationErrors[0])
		}
		return fmt.Errorf("%w: %w", models.ErrValidation, err)
	}
	return nil
}

// IsCurrency reports whether code is an upper-case ISO 4217 currency code.
func IsCurrency(code string) bool {
	vld, err := GetValidator()
	if err != nil {
		return false
	}
	return vld.Var(code, "iso4217") == nil
}

var validationErrorFormatters = map[string]func(field, param string) error{
	"required": func(field, _ string) error {
		return fmt.Errorf("%w: '%s' is required", models.ErrValidation, field)
	},
	"min": func(field, param string) error {
		return fmt.Errorf("%w: '%s' must have at least %s entries", models.ErrValidation, field, param)
	},
	"max": func(field, param string) error {
		return fmt.Errorf("%w: '%s' must be at most %s", models.ErrValidation, field, param)
	},
	"email": func(field, _ string) error {
		return fmt.Errorf("%w: '%s' must be a valid email", models.ErrValidation, field)
	},
	"oneof": func(field, param string) error {
		return fmt.Errorf("%w: '%s' must be one of [%s]", models.ErrValidation, field, param)
	},
	"positive_amount": func(field, _ string) error {
		return fmt.Errorf("%w: '%s' must be a positive amount", models.ErrValidation, field)
	},
	"nonnegative_amount": func(field, _ string) error {
		return fmt.Errorf("%w: '%s' must not be negative", models.ErrValidation, field)
	},
	"iso4217": func(field, _ string) error {
		return fmt.Errorf("%w: '%s' must be an ISO 4217 currency code", models.ErrValidation, field)
	},
	"tx_status": func(field, _ string) error {
		return fmt.Errorf("%w: '%s' is not a known transaction status", models.ErrValidation, field)
	},
}

func formatValidationError(fe validator.FieldError) error {
	field := lowerFirst(fe.Field())
	if formatter, ok := validationErrorFormatters[fe.Tag()]; ok {
		return formatter(field, fe.Param())
	}
	return fmt.Errorf("%w: '%s' failed '%s' check", models.ErrValidation, field, fe.Tag())
}

// lowerFirst turns a Go field name into its JSON spelling.
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
