package query

import (
	"time"

	"analytics-srv/internal/model"
)

// AllTimeStart is the lower bound of "all time".
var AllTimeStart = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// DateRange is an inclusive window of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// StartString returns Start as YYYY-MM-DD.
func (r DateRange) StartString() string { return r.Start.Format(model.DateLayout) }

// EndString returns End as YYYY-MM-DD.
func (r DateRange) EndString() string { return r.End.Format(model.DateLayout) }

// Days is the inclusive length of the window.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Clock yields "today" in the service timezone.
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// Today returns the current calendar day at midnight UTC.
func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := now().In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ResolveDateRange turns a named window into absolute bounds relative to today.
// A custom window missing either bound, or an unknown name, is "all time".
func ResolveDateRange(filter, customStart, customEnd string, today time.Time) DateRange {
	day := func(offset int) time.Time { return today.AddDate(0, 0, offset) }
	switch filter {
	case model.DateYesterday:
		return DateRange{day(-1), day(-1)}
	case model.DateThisWeek:
		offset := (int(today.Weekday()) + 6) % 7
		return DateRange{day(-offset), today}
	case model.DateLast7Days:
		return DateRange{day(-7), today}
	case model.DateLast14Days:
		return DateRange{day(-14), today}
	case model.DateLast30Days:
		return DateRange{day(-30), today}
	case model.DateLast3Months:
		return DateRange{day(-90), today}
	case model.DateThisYear:
		return DateRange{time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), today}
	case model.DateLastYear:
		y := today.Year() - 1
		return DateRange{
			time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
		}
	case model.DateCustom:
		s, errS := time.Parse(model.DateLayout, customStart)
		e, errE := time.Parse(model.DateLayout, customEnd)
		if errS == nil && errE == nil {
			return DateRange{s, e}
		}
	}
	return DateRange{AllTimeStart, today}
}

// Resolve resolves the window of f.
func (c Clock) Resolve(f model.Filter) DateRange {
	return ResolveDateRange(string(f.DateFilter), string(f.CustomStartDate), string(f.CustomEndDate), c.Today())
}
