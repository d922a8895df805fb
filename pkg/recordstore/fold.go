package recordstore

import (
	"cmp"
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s used for every case-insensitive comparison.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// EqualFold reports whether a and b are equal under case folding.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// ContainsFold reports whether substr occurs in s under case folding.
// An empty substr matches every s.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// KeyEquals matches records whose key case-insensitively equals key.
func KeyEquals[T interface{ Key() string }](key string) func(T) bool {
	folded := Fold(key)
	return func(r T) bool {
		return Fold(r.Key()) == folded
	}
}

// InRange reports lo <= v <= hi.
func InRange[N cmp.Ordered](v, lo, hi N) bool {
	return v >= lo && v <= hi
}

// TimeInRange reports start <= t <= end.
func TimeInRange(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
