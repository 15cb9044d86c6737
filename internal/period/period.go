// Package period compares a filter window with the window right before it.
package period

import (
	"context"
	"math"
	"strconv"

	"analytics-srv/internal/model"
	"analytics-srv/internal/query"

	"golang.org/x/sync/errgroup"
)

// Previous returns the window of equal length ending the day before cur starts.
func Previous(cur query.DateRange) query.DateRange {
	d := cur.Days()
	return query.DateRange{
		Start: cur.Start.AddDate(0, 0, -d),
		End:   cur.Start.AddDate(0, 0, -1),
	}
}

// Windows resolves f and returns the current filter pinned to its window plus
// the filter of the previous window.
func Windows(clock query.Clock, f model.Filter) (cur, prev model.Filter, curRange, prevRange query.DateRange) {
	curRange = clock.Resolve(f)
	prevRange = Previous(curRange)
	return f.WithWindow(curRange.Start, curRange.End), f.WithWindow(prevRange.Start, prevRange.End), curRange, prevRange
}

// Run evaluates fn for the current and the previous window concurrently.
func Run[T any](ctx context.Context, clock query.Clock, f model.Filter, fn func(ctx context.Context, f model.Filter) (T, error)) (cur, prev T, err error) {
	curF, prevF, _, _ := Windows(clock, f)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cur, err = fn(gctx, curF)
		return err
	})
	g.Go(func() error {
		var err error
		prev, err = fn(gctx, prevF)
		return err
	})
	err = g.Wait()
	return cur, prev, err
}

// Metric is one scalar compared across windows.
type Metric struct {
	Value    float64  `json:"value"`
	Previous float64  `json:"previous"`
	Delta    float64  `json:"delta"`
	Pct      *float64 `json:"pct"`
	Display  string   `json:"display"`
}

// Compare builds the Metric of value against previous. Pct is nil when previous is zero.
func Compare(value, previous float64) Metric {
	m := Metric{
		Value:    value,
		Previous: previous,
		Delta:    value - previous,
		Display:  FormatCompact(value),
	}
	if previous != 0 {
		pct := m.Delta / previous * 100
		if !math.IsNaN(pct) && !math.IsInf(pct, 0) {
			m.Pct = &pct
		}
	}
	return m
}

// FormatCompact renders 1234 as "1.2K" and 1234567 as "1.2M".
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return trim(v/1e9) + "B"
	case abs >= 1e6:
		return trim(v/1e6) + "M"
	case abs >= 1e3:
		return trim(v/1e3) + "K"
	default:
		return trim(v)
	}
}

func trim(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
