package utils

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"travel-booking/internal/data/entity"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("travel_service", func(fl validator.FieldLevel) bool {
		return entity.Service(fl.Field().String()).Valid()
	})
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// ValidateStruct returns field -> message, or nil when data is valid.
func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errors := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, err := range validationErrors {
			errors[fieldPath(err)] = getSimpleErrorMessage(err)
		}
	}

	return errors
}

// Validate is ValidateStruct wrapped as an ErrValidation error.
func Validate(data interface{}) error {
	if fields := ValidateStruct(data); len(fields) > 0 {
		return NewValidationError("Validation failed", fields)
	}
	return nil
}

// fieldPath drops the top-level struct name so nested errors read "selectedServices[0]".
func fieldPath(err validator.FieldError) string {
	ns := err.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return err.Field()
}

func getSimpleErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		return fmt.Sprintf("Minimum length is %s", err.Param())
	case "max":
		return fmt.Sprintf("Maximum length is %s", err.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", err.Param())
	case "oneof":
		options := strings.ReplaceAll(err.Param(), " ", ", ")
		return fmt.Sprintf("Must be one of: %s", options)
	case "uuid":
		return "Must be a valid UUID"
	case "travel_service":
		return fmt.Sprintf("Must be one of: %s", strings.Join(entity.ServicesToStrings(entity.AllServices), ", "))
	default:
		return fmt.Sprintf("Invalid %s field", err.Field())
	}
}
