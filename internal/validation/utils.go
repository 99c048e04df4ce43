package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/go-tasks/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate returns nil, validator.ValidationErrors or CustomValidationErrors.
type Validatable interface {
	Validate() error
}

// Binder is implemented by payloads that read path or query values
// themselves. Errors for path and query values must be *echo.BindingError
// so the offending parameter name is reported.
type Binder interface {
	Bind(c echo.Context) error
}

// CustomValidationError represents a single validation issue for a specific field.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return "Validation failed"
}

func (c CustomValidationErrors) has(field string) bool {
	for _, e := range c {
		if e.Field == field {
			return true
		}
	}
	return false
}

// BindAndValidate binds request data into payload and validates it.
//
// Binding goes through payload.Bind when payload implements Binder and
// through c.Bind otherwise. Both binding and validation failures come back
// as *errs.HTTPError with field level errors.
func BindAndValidate(c echo.Context, payload Validatable) error {
	var err error
	if b, ok := payload.(Binder); ok {
		err = b.Bind(c)
	} else {
		err = c.Bind(payload)
	}
	if err != nil {
		return BindError(err)
	}

	if err := payload.Validate(); err != nil {
		fieldErrors, ok := extractValidationError(err)
		if !ok {
			return err
		}
		return errs.ValidationError(fieldErrors)
	}

	return nil
}

// BindError translates an error returned while binding a request.
//
//   - *echo.BindingError (path, query): 400 "Invalid Input Type" naming the parameter
//   - JSON syntax, type or field format errors: 400 "Failed to parse JSON request"
//   - any other *echo.HTTPError: returned as is
func BindError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var bindingErr *echo.BindingError
	if errors.As(err, &bindingErr) {
		return errs.NewBadRequestError(errs.MessageInvalidInputType, true, nil, []errs.FieldError{
			{Field: bindingErr.Field, Error: parameterMessage(err, bindingErr)},
		})
	}

	var fieldErr *errs.InvalidFieldError
	if errors.As(err, &fieldErr) {
		return errs.NewBadRequestError(errs.MessageMalformedJSON, true, nil, []errs.FieldError{
			{Field: fieldErr.Field, Error: fieldErr.Message},
		})
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return errs.NewBadRequestError(errs.MessageMalformedJSON, true, nil, []errs.FieldError{
			{Field: typeErr.Field, Error: "Expected type " + jsonTypeName(typeErr.Type)},
		})
	}

	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return errs.NewBadRequestError(errs.MessageMalformedJSON, true, nil, nil)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if echoErr.Code == http.StatusBadRequest {
			return errs.NewBadRequestError(errs.MessageMalformedJSON, true, nil, nil)
		}
		return echoErr
	}

	return err
}

func parameterMessage(err error, bindingErr *echo.BindingError) string {
	var fieldErr *errs.InvalidFieldError
	if errors.As(err, &fieldErr) {
		return fieldErr.Message
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		return "Expected a number"
	}

	return fmt.Sprint(bindingErr.Message)
}

func jsonTypeName(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "array"
	default:
		if t.Name() != "" {
			return t.Name()
		}
		return "object"
	}
}

// extractValidationError converts the result of Validate into field errors.
// ok is false when err is neither validator.ValidationErrors nor
// CustomValidationErrors.
func extractValidationError(err error) ([]errs.FieldError, bool) {
	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		fieldErrors := make([]errs.FieldError, 0, len(customErrors))
		for _, e := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: e.Field, Error: e.Message})
		}
		return fieldErrors, true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fieldErrors := make([]errs.FieldError, 0, len(validationErrors))
		for _, fe := range validationErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: fe.Field(), Error: tagMessage(fe)})
		}
		return fieldErrors, true
	}

	return nil, false
}

// tagMessage is the default message for a failed validator tag.
func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "notblank":
		return "cannot be empty"

	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("%s: %s:%s", fe.Field(), fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("%s: %s", fe.Field(), fe.Tag())
	}
}
