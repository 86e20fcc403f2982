package math

import "golang.org/x/exp/constraints"

// Abs returns the absolute value of f.
func Abs[T constraints.Float](f T) T {
	if f < 0 {
		return -f
	}
	return f
}

// WithinTolerance reports whether a and b differ by no more than tolerance.
func WithinTolerance[T constraints.Float](a, b, tolerance T) bool {
	return Abs(a-b) <= tolerance
}
