package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// EmailPattern is the loose address check used by the contact form and the
// mailer: something@something.something with no whitespace.
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("address", func(fl validator.FieldLevel) bool {
		return IsEmail(fl.Field().String())
	})
}

// IsEmail reports whether s passes EmailPattern.
func IsEmail(s string) bool {
	return EmailPattern.MatchString(s)
}

// errorMessages maps validation tags to messages.
var errorMessages = map[string]string{
	"required": "The field '%s' is required.",
	"address":  "The field '%s' must be a valid email address.",
	"email":    "The field '%s' must be a valid email address.",
	"min":      "The field '%s' must be at least %s characters long.",
	"max":      "The field '%s' must be no longer than %s characters.",
	"lte":      "The field '%s' must be less than or equal to %s.",
	"gte":      "The field '%s' must be greater than or equal to %s.",
	"oneof":    "The field '%s' must be one of %s.",
}

// parseMessage constructs a friendly error message based on the validation tag.
func parseMessage(jsonTag string, e validator.FieldError) string {
	if msg, ok := errorMessages[e.Tag()]; ok {
		switch strings.Count(msg, "%s") {
		case 1:
			return fmt.Sprintf(msg, jsonTag)
		case 2:
			return fmt.Sprintf(msg, jsonTag, e.Param())
		}
	}
	return fmt.Sprintf("Field '%s' is invalid: %s", jsonTag, e.Tag())
}

// Errors holds per-field messages keyed by json name, plus the failing tag.
type Errors struct {
	Messages map[string]string
	Tags     map[string]string
}

// Empty reports whether validation passed.
func (e Errors) Empty() bool {
	return len(e.Messages) == 0
}

// HasTag reports whether any field failed tag.
func (e Errors) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Validate validates a struct pointer and collects field errors.
func Validate(s any) Errors {
	out := Errors{Messages: map[string]string{}, Tags: map[string]string{}}

	err := validate.Struct(s)
	if err == nil {
		return out
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		out.Messages["_"] = err.Error()
		out.Tags["_"] = "invalid"
		return out
	}

	structType := reflect.TypeOf(s)
	if structType.Kind() == reflect.Ptr {
		structType = structType.Elem()
	}
	for _, e := range validationErrs {
		jsonTag := e.StructField()
		if field, ok := structType.FieldByName(e.StructField()); ok {
			if tag := field.Tag.Get("json"); tag != "" {
				jsonTag = strings.Split(tag, ",")[0]
			}
		}
		out.Messages[jsonTag] = parseMessage(jsonTag, e)
		out.Tags[jsonTag] = e.Tag()
	}
	return out
}
