package preferences

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

const keyTag = "prefkey"

var keyPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_.-]*$`)

// reservedKeys are path segments routed before KeyPath. A preference stored
// under one of them could not be read back.
var reservedKeys = map[string]struct{}{ //nolint:gochecknoglobals
	"defaults": {},
	"seed":     {},
}

// ValidKey reports whether key can be stored through the API.
func ValidKey(key string) bool {
	if _, reserved := reservedKeys[key]; reserved {
		return false
	}

	return keyPattern.MatchString(key)
}

type (
	// ErrorResponse represents a validation error response.
	ErrorResponse struct {
		Error       bool        `json:"error"`
		FailedField string      `json:"failedField"`
		Tag         string      `json:"tag"`
		Value       interface{} `json:"value"`
	}

	// XValidator validates request data.
	XValidator struct {
		validator *validator.Validate
	}
)

// NewValidator returns a validator that knows the prefkey tag.
func NewValidator() XValidator {
	v := validator.New()

	_ = v.RegisterValidation(keyTag, func(fl validator.FieldLevel) bool {
		return ValidKey(fl.Field().String())
	})

	return XValidator{validator: v}
}

// Validate performs validation on the provided data and returns a slice of ErrorResponse.
func (v XValidator) Validate(data interface{}) []ErrorResponse {
	var validationErrors []ErrorResponse

	errs := v.validator.Struct(data)
	if errs != nil {
		for _, err := range errs.(validator.ValidationErrors) { //nolint:errorlint,errcheck,forcetypeassert // ok here
			validationErrors = append(validationErrors, ErrorResponse{
				Error:       true,
				FailedField: err.Field(),
				Tag:         err.Tag(),
				Value:       err.Value(),
			})
		}
	}

	return validationErrors
}
