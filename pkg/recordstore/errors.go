package recordstore

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrNotAvailable  = errors.New("not available")
	ErrMalformedLine = errors.New("malformed line")
)

// MinRating and MaxRating bound every rating, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidationError reports a missing or out-of-range field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is reports ErrValidation so callers can match any validation failure.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ParseError is returned by a strict load for the first line that could not be decoded.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}

// Required returns a ValidationError when value is empty or only whitespace.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// Storable rejects a value that cannot be written as one flat-file field:
// it must not contain FieldSeparator or a line break.
func Storable(field, value string) error {
	if strings.ContainsAny(value, FieldSeparator+"\r\n") {
		return &ValidationError{Field: field, Reason: fmt.Sprintf("must not contain %q or line breaks", FieldSeparator)}
	}
	return nil
}

// StorableList is Storable for a list field. Every item must also be
// non-blank and free of ListSeparator.
func StorableList(field string, items []string) error {
	for _, item := range items {
		if err := Required(field, item); err != nil {
			return err
		}
		if strings.ContainsAny(item, FieldSeparator+ListSeparator+"\r\n") {
			return &ValidationError{
				Field:  field,
				Reason: fmt.Sprintf("items must not contain %q, %q or line breaks", FieldSeparator, ListSeparator),
			}
		}
	}
	return nil
}

// RatingInRange rejects ratings outside [MinRating, MaxRating]. Values are never clamped.
func RatingInRange(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return &ValidationError{
			Field:  "rating",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", MinRating, MaxRating, rating),
		}
	}
	return nil
}

// Malformed builds a decode error for a flat-file line.
func Malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedLine, fmt.Sprintf(format, args...))
}
