package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	want := time.Date(2025, 4, 1, 10, 30, 0, 0, time.UTC)
	assert.True(t, want.Equal(ParseTime("2025-04-01T10:30:00Z", time.UTC)))
	assert.True(t, want.Equal(ParseTime("2025-04-01 10:30:00", time.UTC)))
	assert.True(t, ParseTime("not a date", time.UTC).IsZero())
	assert.True(t, ParseTime("", nil).IsZero())
}

func TestNumbers(t *testing.T) {
	assert.Equal(t, 66.67, Round2(Percent(10, 15)))
	assert.Equal(t, 0.0, Percent(3, 0))
}

func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, Dedupe([]string{"a", "b", "a"}))
	assert.Equal(t, []int{2, 4}, MapSlice([]int{1, 2}, func(i int) int { return i * 2 }))
}
