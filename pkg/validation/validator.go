package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/dd0wney/pipenet/pkg/grid"
)

// MaxCoordinate bounds every axis of a placement.
const MaxCoordinate = 1 << 16

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("facing", func(fl validator.FieldLevel) bool {
		_, err := grid.ParseFacing(fl.Field().String())
		return err == nil
	})
}

// PlaceRequest asks for a new segment at a cell.
type PlaceRequest struct {
	X      int     `json:"x" yaml:"x" validate:"gte=-65536,lte=65536"`
	Y      int     `json:"y" yaml:"y" validate:"gte=-65536,lte=65536"`
	Z      int     `json:"z" yaml:"z" validate:"gte=-65536,lte=65536"`
	Facing string  `json:"facing" yaml:"facing" validate:"required,facing"`
	Volume float64 `json:"volume" yaml:"volume" validate:"gte=0,lte=100000"`
}

// Position returns the requested cell.
func (r *PlaceRequest) Position() grid.Point {
	return grid.Point{X: r.X, Y: r.Y, Z: r.Z}
}

// StepRequest is one scripted placement action. To is only used by move.
type StepRequest struct {
	Op      string      `json:"op" yaml:"op" validate:"required,oneof=anchor unanchor wrench move rotate remove"`
	Segment string      `json:"segment" yaml:"segment" validate:"required,max=64"`
	To      *grid.Point `json:"to,omitempty" yaml:"to,omitempty" validate:"required_if=Op move"`
}

// ValidatePlaceRequest validates a placement request
func ValidatePlaceRequest(req *PlaceRequest) error {
	if req == nil {
		return errors.New("place request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// ValidateStepRequest validates a scripted step
func ValidateStepRequest(req *StepRequest) error {
	if req == nil {
		return errors.New("step request cannot be nil")
	}
	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "gte":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "lte", "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of [%s]", field, param)
		case "required_if":
			return fmt.Errorf("%s: field is required when %s", field, param)
		case "facing":
			return fmt.Errorf("%s: %q is not a facing (north, south, east, west)", field, e.Value())
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
