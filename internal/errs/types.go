package errs

import (
	"net/http"
)

// Messages shared by the binding layer and the global error handler.
const (
	MessageMalformedJSON    = "Failed to parse JSON request"
	MessageInvalidInputType = "Invalid Input Type"
	MessageInvalidField     = "Invalid field for task"
	MessageInvalidArguments = "Invalid arguments provided"
	MessageRouteNotFound    = "Route not found"
	MessageTooManyRequests  = "Too many requests"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// This supports extra payload:
//   - code: optional custom code string (if nil, defaults to "BAD_REQUEST")
//   - errors: optional slice of field errors
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	formattedCode := statusCode(http.StatusBadRequest)

	// Note: this assumes the caller already formatted the custom code.
	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Supports optional custom code override similar to NewBadRequestError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	formattedCode := statusCode(http.StatusNotFound)

	if code != nil {
		formattedCode = *code
	}

	return &HTTPError{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewTooManyRequestsError creates a 429 Too Many Requests HTTPError.
func NewTooManyRequestsError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusTooManyRequests),
		Message:  MessageTooManyRequests,
		Status:   http.StatusTooManyRequests,
		Override: true,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// NewInvalidFieldError converts a domain InvalidFieldError into the 400 shape
// used for bad enum values in request bodies.
func NewInvalidFieldError(err *InvalidFieldError) *HTTPError {
	return NewBadRequestError(MessageInvalidField, true, nil, []FieldError{
		{Field: err.Field, Error: err.Message},
	})
}

// ValidationError converts a list of field errors into a 400 Bad Request HTTPError.
//
//	return errs.ValidationError(fieldErrors)
func ValidationError(fieldErrors []FieldError) *HTTPError {
	return NewBadRequestError(MessageInvalidArguments, true, nil, fieldErrors)
}
