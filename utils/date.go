package utils

import "time"

// ToUTC normalizes a client-supplied timestamp; the store only ever holds UTC
// regardless of the submitted timezone.
func ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// SameInstant compares two timestamps ignoring their locations.
func SameInstant(a, b time.Time) bool {
	return a.UTC().Equal(b.UTC())
}
