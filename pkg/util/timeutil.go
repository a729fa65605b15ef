package util

import "time"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// Expiry returns the deadline for ttl from now, or the zero time when ttl is not positive.
func Expiry(now time.Time, ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return now.Add(ttl)
}

// Expired reports whether deadline has passed. The zero deadline never expires.
func Expired(now, deadline time.Time) bool {
	if deadline.IsZero() {
		return false
	}
	return !now.Before(deadline)
}
