package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/deppfellow/go-tasks/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var checkPattern = regexp.MustCompile(`^[a-z]+_([a-z_]+?)_check$`)

// ErrCode reports the mapped sqlerr.Code for a given error.
//
// If err unwraps into *sqlerr.Error its Code is returned, a raw
// *pgconn.PgError is classified on the fly, anything else is Other.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return MapCode(pgErr.Code)
	}
	return Other
}

// ConvertPgError converts a pgconn.PgError (raw Postgres error) into our custom sqlerr.Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// generateErrorCode creates "application error codes" from DB errors in the
// form <DOMAIN>_<ACTION>, e.g. tasks + NotNullViolation => TASK_REQUIRED.
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)

	// Naive singularization: "TASKS" -> "TASK".
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidTextValue, StringTooLong, NumericOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// formatUserFriendlyMessage produces an end-user-facing error message.
func formatUserFriendlyMessage(sqlErr *Error) string {
	switch sqlErr.Code {
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)

	case CheckViolation:
		fieldName := humanizeText(extractColumnForCheckViolation(sqlErr))
		if fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"

	case StringTooLong:
		return "One or more values are too long"

	case InvalidTextValue, NumericOutOfRange:
		return "One or more values have an invalid format"

	default:
		return "An error occurred while processing your request"
	}
}

// humanizeText converts snake_case into Title Case: "due_date" -> "Due Date".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// extractColumnForCheckViolation infers the column of a CHECK violation.
// Postgres names column constraints "<table>_<column>_check".
func extractColumnForCheckViolation(sqlErr *Error) string {
	if sqlErr.ColumnName != "" {
		return sqlErr.ColumnName
	}
	name := strings.TrimPrefix(sqlErr.ConstraintName, sqlErr.TableName+"_")
	if name != sqlErr.ConstraintName {
		return strings.TrimSuffix(name, "_check")
	}
	matches := checkPattern.FindStringSubmatch(sqlErr.ConstraintName)
	if len(matches) > 1 {
		return matches[1]
	}
	return ""
}

// HandleError converts a low-level database error into an application-level error.
//
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: constraint and value errors the tasks schema can
//     raise map to a 400 with a friendly message, everything else to a 500
//   - ErrNoRows: mapped to a 404
//   - anything else: 500
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		errorCode := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case CheckViolation:
			var fieldErrors []errs.FieldError
			if column := extractColumnForCheckViolation(sqlErr); column != "" {
				fieldErrors = append(fieldErrors, errs.FieldError{
					Field: strings.ToLower(column),
					Error: "is invalid",
				})
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)

		case StringTooLong, InvalidTextValue, NumericOutOfRange:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)

		default:
			// Unknown DB errors should not leak details to clients.
			return errs.NewInternalServerError()
		}
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
