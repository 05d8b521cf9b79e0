// Package validate wraps go-playground/validator with the salon catalog rules.
package validate

import (
	"errors"
	"fmt"
	"nailstudio/internal/domain/constant"
	appErrors "nailstudio/internal/pkg/errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// Validator validates request DTOs. It satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the catalog tags registered:
// timeslot, service, nailstyle and status, plus notblank.
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("timeslot", oneOf(constant.TimeSlots()))
	_ = v.RegisterValidation("service", oneOf(constant.Services()))
	_ = v.RegisterValidation("nailstyle", oneOf(constant.Styles()))
	_ = v.RegisterValidation("status", func(fl validator.FieldLevel) bool {
		_, err := constant.ParseStatus(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

func oneOf(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Validate checks i and returns an ErrValidation-wrapped error naming each failed field.
func (cv *Validator) Validate(i interface{}) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", appErrors.ErrValidation, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("%w: %s", appErrors.ErrValidation, strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "notblank":
		return fe.Field() + " must not be blank"
	case "min":
		return fmt.Sprintf("%s needs at least %s item(s)", fe.Field(), fe.Param())
	case "datetime":
		return fe.Field() + " must be a date in YYYY-MM-DD form"
	case "timeslot":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(constant.TimeSlots(), ", "))
	case "service":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(constant.Services(), ", "))
	case "nailstyle":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.Join(constant.Styles(), ", "))
	case "status":
		return fe.Field() + " is not a known status"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
