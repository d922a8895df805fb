package recordstore

import (
	"strings"
	"time"
)

// Flat-file separators.
const (
	FieldSeparator = "|"
	ListSeparator  = ","
)

// TimeLayout is the textual date format of persisted records.
const TimeLayout = time.RFC3339Nano

// JoinFields builds one line from its fields.
func JoinFields(fields ...string) string {
	return strings.Join(fields, FieldSeparator)
}

// SplitFields splits line and checks that it has exactly n fields.
func SplitFields(line string, n int) ([]string, error) {
	parts := strings.Split(line, FieldSeparator)
	if len(parts) != n {
		return nil, Malformed("expected %d fields, got %d", n, len(parts))
	}
	return parts, nil
}

// JoinList encodes a nested list.
func JoinList(items []string) string {
	return strings.Join(items, ListSeparator)
}

// SplitList decodes a nested list; an empty field is an empty list.
func SplitList(field string) []string {
	if field == "" {
		return nil
	}
	return strings.Split(field, ListSeparator)
}

// FormatBool writes the literal True or False.
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ParseBool accepts True or False in any letter case.
func ParseBool(field string) (bool, error) {
	switch Fold(strings.TrimSpace(field)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, Malformed("boolean %q", field)
}

// FormatTime writes t in TimeLayout, normalized to UTC.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime reads a TimeLayout field back into a UTC time.
func ParseTime(field string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, field)
	if err != nil {
		return time.Time{}, Malformed("date %q", field)
	}
	return t.UTC(), nil
}
