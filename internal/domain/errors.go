package domain

import (
	"errors"
	"sort"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is the sentinel matched by every *ValidationError.
// Handlers should map this to HTTP 400 and render the field details.
var ErrValidation = errors.New("validation error")

// NonFieldErrors is the FieldErrors key used for violations that span
// several fields, such as composite uniqueness.
const NonFieldErrors = "non_field_errors"

// FieldErrors maps a field path (e.g. "traveler.name" or
// "room_allocations[1].quantity") to every message recorded against it.
type FieldErrors map[string][]string

// Add records msg against field.
func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

// Merge copies every entry of other into fe, prefixing each key with prefix.
func (fe FieldErrors) Merge(prefix string, other FieldErrors) {
	for k, msgs := range other {
		key := JoinPath(prefix, k)
		fe[key] = append(fe[key], msgs...)
	}
}

// Err returns nil when no errors were recorded, otherwise a *ValidationError.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: fe}
}

// ValidationError carries field-level validation failures.
// errors.Is(err, ErrValidation) reports true for any *ValidationError.
type ValidationError struct {
	Fields FieldErrors
}

// Error renders the fields in sorted order so messages are stable in logs.
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], " "))
	}
	return "validation error: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Prefixed returns a copy of e with every field key nested under prefix.
func (e *ValidationError) Prefixed(prefix string) *ValidationError {
	out := FieldErrors{}
	out.Merge(prefix, e.Fields)
	return &ValidationError{Fields: out}
}

// Invalid is shorthand for a ValidationError with a single field message.
func Invalid(field, msg string) error {
	return &ValidationError{Fields: FieldErrors{field: {msg}}}
}

// JoinPath appends key to a field path. Index keys ("[2]") attach directly,
// named keys are separated by a dot.
func JoinPath(prefix, key string) string {
	switch {
	case prefix == "":
		return key
	case key == "":
		return prefix
	case strings.HasPrefix(key, "["):
		return prefix + key
	default:
		return prefix + "." + key
	}
}
