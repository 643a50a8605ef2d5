package progress

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRange rejects malformed custom ranges before any fetch occurs.
var ErrInvalidRange = errors.New("invalid time range")

type RangeKind string

const (
	RangeDaily   RangeKind = "daily"
	RangeWeekly  RangeKind = "weekly"
	RangeMonthly RangeKind = "monthly"
	RangeCustom  RangeKind = "custom"
)

// TimeRange is the bucketing window for one progress request. Start/End are
// only meaningful for custom ranges; the calendar kinds resolve against the
// clock at request time.
type TimeRange struct {
	Kind  RangeKind
	Start time.Time
	End   time.Time
}

func Daily() TimeRange   { return TimeRange{Kind: RangeDaily} }
func Weekly() TimeRange  { return TimeRange{Kind: RangeWeekly} }
func Monthly() TimeRange { return TimeRange{Kind: RangeMonthly} }

func Custom(start, end time.Time) TimeRange {
	return TimeRange{Kind: RangeCustom, Start: start, End: end}
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Resolve turns the range into concrete inclusive bounds.
//
//	daily    [midnight(now), now]
//	weekly   [most recent Monday 00:00, +7 calendar days)
//	monthly  [1st of month 00:00, last moment of the month]
//	custom   [start, end], start <= end
func (r TimeRange) Resolve(now time.Time) (time.Time, time.Time, error) {
	switch r.Kind {
	case RangeDaily:
		return midnight(now), now, nil
	case RangeWeekly:
		start := midnight(now)
		// Weekday is Sunday-based; shift so Monday opens the week.
		offset := (int(now.Weekday()) + 6) % 7
		start = start.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 7).Add(-time.Nanosecond), nil
	case RangeMonthly:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0).Add(-time.Nanosecond), nil
	case RangeCustom:
		if r.End.Before(r.Start) {
			return time.Time{}, time.Time{}, fmt.Errorf("custom range end %s before start %s: %w",
				r.End.Format("2006-01-02"), r.Start.Format("2006-01-02"), ErrInvalidRange)
		}
		return r.Start, r.End, nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("unknown range kind %q: %w", r.Kind, ErrInvalidRange)
	}
}
