// Package validation contains the logic for binding and
// validating request data.
//
// It uses the `validator` library to enforce rules defined
// in struct tags, translates Echo binding failures, and
// extracts validation errors into a format the client can
// understand
package validation

import (
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns the shared validator instance.
//
// Field names are reported by their json tag and the "notblank" tag is
// registered for string fields that must contain a non-space character.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New()

		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		_ = validate.RegisterValidation("notblank", validators.NotBlank)
	})

	return validate
}

// MessageProvider is implemented by payloads that override the default
// message for a field and tag. Keys have the form "<field>.<tag>", e.g.
// "title.min".
type MessageProvider interface {
	ValidationMessages() map[string]string
}

// Struct validates s with the shared validator and merges the result with
// extra checks the tags cannot express. It returns nil or
// CustomValidationErrors.
func Struct(s any, extra ...CustomValidationError) error {
	var out CustomValidationErrors

	if err := Validator().Struct(s); err != nil {
		var overrides map[string]string
		if mp, ok := s.(MessageProvider); ok {
			overrides = mp.ValidationMessages()
		}

		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		for _, fe := range validationErrors {
			msg, found := overrides[fe.Field()+"."+fe.Tag()]
			if !found {
				msg = tagMessage(fe)
			}
			out = append(out, CustomValidationError{Field: fe.Field(), Message: msg})
		}
	}

	for _, e := range extra {
		if !out.has(e.Field) {
			out = append(out, e)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
