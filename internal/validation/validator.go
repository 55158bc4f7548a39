package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

var phoneNumberRegex = regexp.MustCompile(`^09\d{9}$`)

// ValidationError maps a json field path to a readable failure reason
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("field '%s': %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator wraps go-playground/validator with the project's custom rules
type Validator struct {
	validate *validator.Validate
}

// New creates a Validator that reports json field names
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	for tag, fn := range map[string]validator.Func{
		"phone":  isPhoneNumber,
		"digits": isDigits,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("validation: register %q: %v", tag, err))
		}
	}

	return &Validator{validate: v}
}

// Struct validates s and converts failures into a *ValidationError
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &ValidationError{Errors: make(map[string]string, len(validationErrors))}
	for _, fe := range validationErrors {
		out.Errors[fieldPath(fe)] = message(fe)
	}
	return out
}

// fieldPath drops the root struct name: "UserUpdate.skills[0]" -> "skills[0]"
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s long", fe.Param())
	case "unique":
		return "must not contain duplicates"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return fmt.Sprintf("must be a date formatted as %s", fe.Param())
	case "phone":
		return "must be empty or a phone number like 09XXXXXXXXX"
	case "digits":
		return "must contain digits only"
	default:
		return fmt.Sprintf("failed on the '%s' rule", fe.Tag())
	}
}

// An empty phone number is accepted and clears the field.
func isPhoneNumber(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return value == "" || phoneNumberRegex.MatchString(value)
}

func isDigits(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
