package task

import (
	"strconv"
	"time"

	"github.com/deppfellow/go-tasks/internal/errs"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

// DateFormatMessage is reported for any malformed date.
const DateFormatMessage = "Invalid date format supplied, expected yyyy-MM-dd"

// now is replaced in tests.
var now = time.Now

// Date is a calendar date without time of day, stored at UTC midnight.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date.
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a yyyy-MM-dd string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, &errs.InvalidFieldError{Field: "date", Message: DateFormatMessage}
	}
	return NewDate(t), nil
}

// Today is the current local calendar date.
func Today() Date {
	return NewDate(now())
}

// IsFuture reports whether d is strictly after today.
func (d Date) IsFuture() bool {
	return d.After(Today().Time)
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return &errs.InvalidFieldError{Field: "date", Message: DateFormatMessage}
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler for query parameters.
func (d *Date) UnmarshalParam(param string) error {
	parsed, err := ParseDate(param)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}
