package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the engine reports to the presentation layer
type ErrorKind string

const (
	KindMissingField     ErrorKind = "missing_field"
	KindFormatMismatch   ErrorKind = "format_mismatch"
	KindNotANumber       ErrorKind = "not_a_number"
	KindOutOfRange       ErrorKind = "out_of_range"
	KindDuplicateValue   ErrorKind = "duplicate_value"
	KindStoreConflict    ErrorKind = "store_conflict"
	KindStoreUnavailable ErrorKind = "store_unavailable"
	KindStoreError       ErrorKind = "store_error"
	KindNotFound         ErrorKind = "not_found"
	KindAuditWriteFailed ErrorKind = "audit_write_failed"
)

// UserCorrectable reports whether the kind is a validation failure the user can fix
func (k ErrorKind) UserCorrectable() bool {
	switch k {
	case KindMissingField, KindFormatMismatch, KindNotANumber, KindOutOfRange, KindDuplicateValue:
		return true
	}
	return false
}

// DateHint is the example shown for malformed date fields
const DateHint = "YYYY-MM-DD"

// ErrNothingToExport is returned when an export is requested for an empty table
var ErrNothingToExport = errors.New("there is no data to export")

// Error is the single error type returned by the engine
type Error struct {
	Kind   ErrorKind
	Field  string // offending field label
	Value  string
	Hint   string // example format or remediation
	Min    int64
	Max    int64
	ID     int64
	Detail string
	Err    error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindMissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case KindFormatMismatch:
		return fmt.Sprintf("%s format is invalid, expected format: %s", e.Field, e.Hint)
	case KindNotANumber:
		return fmt.Sprintf("%s must be a whole number", e.Field)
	case KindOutOfRange:
		return fmt.Sprintf("%s must be between %d and %d", e.Field, e.Min, e.Max)
	case KindDuplicateValue:
		return fmt.Sprintf("%s '%s' already exists", e.Field, e.Value)
	case KindStoreConflict:
		return "this record already exists in the database"
	case KindStoreUnavailable:
		return fmt.Sprintf("database unavailable: %s", e.Detail)
	case KindNotFound:
		return fmt.Sprintf("record with ID %d not found", e.ID)
	case KindAuditWriteFailed:
		return fmt.Sprintf("failed to write audit entry for record %d: %s", e.ID, e.Detail)
	default:
		return fmt.Sprintf("database error: %s", e.Detail)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of an engine error, empty for foreign errors
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an engine error of the given kind
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

func MissingField(label string) *Error {
	return &Error{Kind: KindMissingField, Field: label}
}

func FormatMismatch(label, hint string) *Error {
	return &Error{Kind: KindFormatMismatch, Field: label, Hint: hint}
}

func NotANumber(label string) *Error {
	return &Error{Kind: KindNotANumber, Field: label}
}

func OutOfRange(label string, min, max int64) *Error {
	return &Error{Kind: KindOutOfRange, Field: label, Min: min, Max: max}
}

func DuplicateValue(label, value string) *Error {
	return &Error{Kind: KindDuplicateValue, Field: label, Value: value}
}

func StoreConflict(err error) *Error {
	return &Error{
		Kind: KindStoreConflict,
		Hint: "change the unique fields and try again",
		Err:  err,
	}
}

func StoreUnavailable(err error) *Error {
	return &Error{
		Kind:   KindStoreUnavailable,
		Detail: errDetail(err),
		Hint:   "check that the database service is running, the database exists and the credentials are correct",
		Err:    err,
	}
}

func StoreError(err error) *Error {
	return &Error{Kind: KindStoreError, Detail: errDetail(err), Err: err}
}

func NotFound(id int64) *Error {
	return &Error{
		Kind: KindNotFound,
		ID:   id,
		Hint: "reload the records and select an existing one",
	}
}

func AuditWriteFailed(id int64, err error) *Error {
	return &Error{Kind: KindAuditWriteFailed, ID: id, Detail: errDetail(err), Err: err}
}

func errDetail(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
