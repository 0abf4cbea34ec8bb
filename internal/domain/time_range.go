package domain

import "fmt"

// TimeRange is the window selected on the dashboard chart
type TimeRange string

const (
	TimeRangeDay   TimeRange = "day"
	TimeRangeWeek  TimeRange = "week"
	TimeRangeMonth TimeRange = "month"
	TimeRangeYear  TimeRange = "year"
)

// DefaultTimeRange is used until the user picks a range
const DefaultTimeRange = TimeRangeMonth

// timeRangeDays maps each range to its day count
var timeRangeDays = map[TimeRange]int{
	TimeRangeDay:   1,
	TimeRangeWeek:  7,
	TimeRangeMonth: 30,
	TimeRangeYear:  365,
}

// timeRangeOrder is the order in which ranges are offered to the selector
var timeRangeOrder = []TimeRange{TimeRangeDay, TimeRangeWeek, TimeRangeMonth, TimeRangeYear}

// AllTimeRanges returns every range in selector order
func AllTimeRanges() []TimeRange {
	out := make([]TimeRange, len(timeRangeOrder))
	copy(out, timeRangeOrder)
	return out
}

// ParseTimeRange validates a key coming from outside the process
func ParseTimeRange(key string) (TimeRange, error) {
	tr := TimeRange(key)
	if _, ok := timeRangeDays[tr]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeRange, key)
	}
	return tr, nil
}

// IsValid reports whether the range belongs to the enumeration
func (t TimeRange) IsValid() bool {
	_, ok := timeRangeDays[t]
	return ok
}

// Days returns the day count of the range. Ranges must come from
// ParseTimeRange or the declared constants; anything else is a programming
// error and panics.
func (t TimeRange) Days() int {
	days, ok := timeRangeDays[t]
	if !ok {
		panic(fmt.Sprintf("domain: unknown time range %q", string(t)))
	}
	return days
}
