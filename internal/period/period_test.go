package period

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"analytics-srv/internal/model"
	"analytics-srv/internal/query"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, _ := time.Parse(model.DateLayout, s)
	return t
}

func TestPreviousWindow(t *testing.T) {
	cur := query.DateRange{Start: day("2025-04-01"), End: day("2025-04-10")}
	prev := Previous(cur)
	assert.Equal(t, "2025-03-22", prev.StartString())
	assert.Equal(t, "2025-03-31", prev.EndString())
	assert.Equal(t, cur.Days(), prev.Days())

	single := Previous(query.DateRange{Start: day("2025-03-01"), End: day("2025-03-01")})
	assert.Equal(t, "2025-02-28", single.StartString())
	assert.Equal(t, "2025-02-28", single.EndString())
}

func TestCompare(t *testing.T) {
	m := Compare(100, 50)
	assert.Equal(t, 50.0, m.Delta)
	require.NotNil(t, m.Pct)
	assert.Equal(t, 100.0, *m.Pct)

	zero := Compare(10, 0)
	assert.Nil(t, zero.Pct)
	assert.Equal(t, 10.0, zero.Delta)
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "1.2K", FormatCompact(1234))
	assert.Equal(t, "1.2M", FormatCompact(1234567))
	assert.Equal(t, "999", FormatCompact(999))
	assert.Equal(t, "2B", FormatCompact(2e9))
}

func TestRunComparesBothWindows(t *testing.T) {
	clock := query.Clock{Now: func() time.Time { return day("2025-04-20") }}
	f := model.Filter{DateFilter: model.DateCustom, CustomStartDate: "2025-04-01", CustomEndDate: "2025-04-10"}.Normalize()

	// 100 posts in the window, 50 in the ten days before it.
	counts := map[string]float64{"2025-04-01": 100, "2025-03-22": 50}
	var calls atomic.Int32
	cur, prev, err := Run(context.Background(), clock, f, func(_ context.Context, w model.Filter) (float64, error) {
		calls.Add(1)
		assert.Equal(t, model.Scalar(model.DateCustom), w.DateFilter)
		return counts[string(w.CustomStartDate)], nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())

	m := Compare(cur, prev)
	assert.Equal(t, 100.0, m.Value)
	assert.Equal(t, 50.0, m.Previous)
	assert.Equal(t, 50.0, m.Delta)
	require.NotNil(t, m.Pct)
	assert.Equal(t, 100.0, *m.Pct)
}
