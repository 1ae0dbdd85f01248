package record

import (
	"strings"
	"time"
)

// DateOnly truncates an upstream timestamp ("2026-02-10T14:30:00Z") to its
// date portion. Already date-only strings pass through unchanged.
func DateOnly(s string) string {
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

// AgeAt computes whole years between a YYYY-MM-DD birth date and now, with
// the usual anniversary-not-yet-reached correction. Comparison is date-only;
// no timezone normalization. An unparseable birth date yields 0.
func AgeAt(birthDate string, now time.Time) int {
	birth, err := time.Parse("2006-01-02", DateOnly(birthDate))
	if err != nil {
		return 0
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// Age is AgeAt as of today.
func Age(birthDate string) int {
	return AgeAt(birthDate, time.Now())
}
