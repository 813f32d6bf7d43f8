package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/BearBump/ShipperBox/internal/apperr"
	"github.com/go-playground/validator/v10"
)

// Violation is a single failed constraint.
type Violation struct {
	Field   string
	Message string
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// notblank: строка не пустая и не из одних пробелов.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return &Validator{v: v}
}

// Validate checks obj and returns the first violation as an argument error.
// A nil pointer yields an argument-null error naming param.
func (v *Validator) Validate(obj any, param string) error {
	if isNil(obj) {
		return apperr.ArgumentNull(param)
	}
	vs := v.Violations(obj)
	if len(vs) == 0 {
		return nil
	}
	return apperr.InvalidArgument(vs[0].Field, vs[0].Message)
}

// Violations returns every failed constraint of obj in declaration order.
func (v *Validator) Violations(obj any) []Violation {
	err := v.v.Struct(obj)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []Violation{{Field: "", Message: err.Error()}}
	}
	out := make([]Violation, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, Violation{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", fe.Field())
	case "required_without":
		return fmt.Sprintf("The %s field is required when %s is empty.", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("The field %s must be a string with a maximum length of %s.", fe.Field(), fe.Param())
	case "gt", "gte":
		return fmt.Sprintf("The field %s must be greater than %s.", fe.Field(), boundary(fe))
	case "lte":
		return fmt.Sprintf("The field %s must be less than or equal to %s.", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("The field %s failed on the '%s' rule.", fe.Field(), fe.Tag())
	}
}

func boundary(fe validator.FieldError) string {
	if fe.Tag() == "gte" {
		return "or equal to " + fe.Param()
	}
	return fe.Param()
}

func isNil(obj any) bool {
	if obj == nil {
		return true
	}
	rv := reflect.ValueOf(obj)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
