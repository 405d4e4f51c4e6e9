package validation

import (
	"errors"
	"fmt"
	"net"
	"slices"
	"strconv"
)

// MaxVolume bounds the volume of a single segment.
const MaxVolume = 100000

// FieldError is one failed check on a configuration field.
type FieldError struct {
	Field   string // dotted path, prefixed with the config name
	Problem string
	Err     error
}

func (e *FieldError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Problem, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Problem)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ConfigValidator checks configuration values fluently and reports every
// failure at once from Validate.
type ConfigValidator struct {
	name   string
	errors []error
}

// NewConfigValidator creates a validator whose errors are prefixed with
// configName.
func NewConfigValidator(configName string) *ConfigValidator {
	return &ConfigValidator{name: configName}
}

func (cv *ConfigValidator) fail(field, problem string, err error) {
	cv.errors = append(cv.errors, &FieldError{
		Field:   cv.name + "." + field,
		Problem: problem,
		Err:     err,
	})
}

// RangeInt checks that min <= value <= max.
func (cv *ConfigValidator) RangeInt(field string, value, min, max int) *ConfigValidator {
	if value < min || value > max {
		cv.fail(field, fmt.Sprintf("value %d is outside range [%d, %d]", value, min, max), nil)
	}
	return cv
}

// Volume checks a segment volume. Zero is allowed and means the default.
func (cv *ConfigValidator) Volume(field string, value float64) *ConfigValidator {
	if value < 0 || value > MaxVolume {
		cv.fail(field, fmt.Sprintf("volume %g is outside range [0, %d]", value, MaxVolume), nil)
	}
	return cv
}

// Address checks a host:port listen address with a numeric port.
func (cv *ConfigValidator) Address(field, value string) *ConfigValidator {
	if value == "" {
		cv.fail(field, "required field is empty", nil)
		return cv
	}
	_, port, err := net.SplitHostPort(value)
	if err != nil {
		cv.fail(field, fmt.Sprintf("invalid address %q", value), err)
		return cv
	}
	if n, err := strconv.Atoi(port); err != nil || n < 0 || n > 65535 {
		cv.fail(field, fmt.Sprintf("invalid port %q", port), err)
	}
	return cv
}

// OneOf checks that value is one of allowed.
func (cv *ConfigValidator) OneOf(field, value string, allowed []string) *ConfigValidator {
	if !slices.Contains(allowed, value) {
		cv.fail(field, fmt.Sprintf("value %q must be one of %v", value, allowed), nil)
	}
	return cv
}

// Custom records the error returned by fn, if any.
func (cv *ConfigValidator) Custom(field string, fn func() error) *ConfigValidator {
	if err := fn(); err != nil {
		cv.fail(field, "invalid", err)
	}
	return cv
}

// When applies validations only if condition holds.
func (cv *ConfigValidator) When(condition bool, validations func(*ConfigValidator)) *ConfigValidator {
	if condition {
		validations(cv)
	}
	return cv
}

// Validate returns every collected error joined together, or nil.
func (cv *ConfigValidator) Validate() error {
	return errors.Join(cv.errors...)
}
