package errs

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// FieldError is one field-level error. In the envelope all field errors are
// rendered as a single object keyed by field:
//
//	"errors": { "title": "Title must be at least 5 characters" }
type FieldError struct {
	// Field is the JSON name of the offending field (e.g. "dueDate").
	Field string

	// Error is the human-readable error message.
	Error string
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error() and is serialized directly
// as the uniform error envelope:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "TASK_NOT_FOUND").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Timestamp: epoch milliseconds when the error was produced.
//   - Errors: per-field errors (validation, binding), written as an object
//     keyed by field. Omitted when empty.
//
// Override is not serialized. It tells the error handler that Message is safe
// to show to clients even when it came from a lower layer (e.g. sqlerr).
type HTTPError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Status    int    `json:"status"`
	Timestamp int64  `json:"timeStamp"`
	Override  bool   `json:"-"`

	// Errors holds field-level errors. When a field appears twice the first
	// message wins on the wire.
	Errors []FieldError `json:"-"`
}

// envelope is the wire form of HTTPError.
type envelope struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Status    int               `json:"status"`
	Timestamp int64             `json:"timeStamp"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// MarshalJSON writes the error envelope with Errors as a field -> message object.
func (e HTTPError) MarshalJSON() ([]byte, error) {
	out := envelope{
		Code:      e.Code,
		Message:   e.Message,
		Status:    e.Status,
		Timestamp: e.Timestamp,
	}

	if len(e.Errors) > 0 {
		out.Errors = make(map[string]string, len(e.Errors))
		for _, fe := range e.Errors {
			if _, seen := out.Errors[fe.Field]; !seen {
				out.Errors[fe.Field] = fe.Error
			}
		}
	}

	return json.Marshal(out)
}

// UnmarshalJSON reads an envelope written by MarshalJSON. Field errors come
// back sorted by field.
func (e *HTTPError) UnmarshalJSON(data []byte) error {
	var in envelope
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	e.Code = in.Code
	e.Message = in.Message
	e.Status = in.Status
	e.Timestamp = in.Timestamp
	e.Errors = nil

	for field, msg := range in.Errors {
		e.Errors = append(e.Errors, FieldError{Field: field, Error: msg})
	}
	sort.Slice(e.Errors, func(i, j int) bool { return e.Errors[i].Field < e.Errors[j].Field })

	return nil
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It only checks whether the other thing is the same *type* (*HTTPError),
// it does NOT compare Code/Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// WithMessage returns a *copy* of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:      e.Code,
		Message:   message,
		Status:    e.Status,
		Timestamp: e.Timestamp,
		Override:  e.Override,
		Errors:    e.Errors,
	}
}

// Stamp returns a copy of the error with Timestamp set to now, unless it is
// already set. Used by the error handler right before writing the envelope.
func (e *HTTPError) Stamp() *HTTPError {
	out := *e
	if out.Timestamp == 0 {
		out.Timestamp = time.Now().UnixMilli()
	}
	return &out
}

// InvalidFieldError is a domain error raised when a single field carries a
// value outside its allowed set (e.g. an unknown task status).
//
// It is not an HTTP error by itself. The validation layer and the global
// error handler translate it into a 400 envelope with one field error.
type InvalidFieldError struct {
	Field   string
	Message string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Message)
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
