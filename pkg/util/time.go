package util

import (
	"time"

	"github.com/araddon/dateparse"
)

const (
	DateTimeFormat = "2006-01-02 15:04:05"
	DateFormat     = "2006-01-02"
)

// ParseTime parses a store timestamp in any common layout. Values without a
// zone are read in loc; epoch numbers are accepted. Zero time on failure.
func ParseTime(s string, loc *time.Location) time.Time {
	if s == "" {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}
	}
	return t
}

func DateToStr(dt time.Time) string {
	return dt.Format(DateFormat)
}

func DateTimeToStr(dt time.Time) string {
	return dt.Format(DateTimeFormat)
}

// LoadLocation returns the named zone, falling back to UTC.
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
