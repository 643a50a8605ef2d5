package progress_test

import (
	"errors"
	"testing"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/progress"
)

func TestDailyRangeIsMidnightToNow(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 11, 14, 30, 0, 0, time.UTC)
	start, end, err := progress.Daily().Resolve(now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !start.Equal(time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("daily start should be midnight, got %v", start)
	}
	if !end.Equal(now) {
		t.Fatalf("daily end should be now, got %v", end)
	}
}

func TestWeeklyRangeStartsMondayAndSpansSevenDays(t *testing.T) {
	t.Parallel()

	// One assertion per weekday, including Monday and Sunday themselves.
	for day := 9; day <= 15; day++ {
		now := time.Date(2026, 3, day, 10, 0, 0, 0, time.UTC)
		start, end, err := progress.Weekly().Resolve(now)
		if err != nil {
			t.Fatalf("resolve for %v: %v", now, err)
		}
		if start.Weekday() != time.Monday {
			t.Fatalf("%v: week should start Monday, got %v", now, start.Weekday())
		}
		if !start.Equal(time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)) {
			t.Fatalf("%v: expected Monday 2026-03-09, got %v", now, start)
		}
		// Inclusive of its start the window covers exactly 7 calendar days.
		days := int(end.Sub(start).Hours()/24) + 1
		if days != 7 {
			t.Fatalf("%v: weekly range spans %d days, want 7", now, days)
		}
		if !end.Before(start.AddDate(0, 0, 7)) {
			t.Fatalf("%v: end %v leaks into the next week", now, end)
		}
	}
}

func TestMonthlyRangeCoversWholeMonth(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC)
	start, end, err := progress.Monthly().Resolve(now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if !start.Equal(time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("monthly start: got %v", start)
	}
	if end.Month() != time.February || end.Day() != 28 {
		t.Fatalf("monthly end should be the last day of February, got %v", end)
	}
}

func TestCustomRangeValidation(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	s, e, err := progress.Custom(start, end).Resolve(time.Now())
	if err != nil {
		t.Fatalf("valid custom range rejected: %v", err)
	}
	if !s.Equal(start) || !e.Equal(end) {
		t.Fatalf("custom bounds altered: [%v, %v]", s, e)
	}

	_, _, err = progress.Custom(end, start).Resolve(time.Now())
	if !errors.Is(err, progress.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}

	// start == end is a valid single-instant range.
	if _, _, err := progress.Custom(start, start).Resolve(time.Now()); err != nil {
		t.Fatalf("equal bounds should be accepted: %v", err)
	}
}

func TestUnknownRangeKindRejected(t *testing.T) {
	t.Parallel()

	_, _, err := progress.TimeRange{Kind: progress.RangeKind("hourly")}.Resolve(time.Now())
	if !errors.Is(err, progress.ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}
