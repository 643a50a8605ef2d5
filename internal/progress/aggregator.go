// Package progress turns per-metric logs and goals into time-ranged
// snapshots: one ProgressData per (user, range) request, with snapshot
// caching and explicit forced refresh.
package progress

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/model"
)

// Default per-metric goals used when the profile does not carry one. The
// calorie goal has no default; it is derived from the profile.
const (
	defaultExerciseGoalMin = 30
	defaultStepGoal        = 10000
	defaultWaterGoalMl     = 2000
)

// ProfileSource is the slice of the profile repository the aggregator needs.
type ProfileSource interface {
	GetUser(ctx context.Context, id string) (model.UserProfile, error)
	QueryLogs(ctx context.Context, kind model.LogKind, userID string, start, end time.Time) ([]model.LogEntry, error)
	DailyGoal(ctx context.Context, p model.UserProfile) float64
}

// StepSource is the external health collaborator that owns step counts.
type StepSource interface {
	Steps(ctx context.Context, userID string, start, end time.Time) (float64, error)
}

// NoSteps is a StepSource for builds without a health integration; it
// reports zero steps.
type NoSteps struct{}

func (NoSteps) Steps(context.Context, string, time.Time, time.Time) (float64, error) {
	return 0, nil
}

// Aggregator assembles ProgressData snapshots. It holds no freshness
// policy of its own: a cached snapshot is served until the caller passes
// forceRefresh, and the LastRefreshed stamp on the result lets the caller
// decide staleness.
type Aggregator struct {
	repo   ProfileSource
	steps  StepSource
	logger *log.Logger

	// Now is the clock; tests override it.
	Now func() time.Time

	mu    sync.Mutex
	cache map[string]model.ProgressData
}

func NewAggregator(repo ProfileSource, steps StepSource, logger *log.Logger) *Aggregator {
	if steps == nil {
		steps = NoSteps{}
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Aggregator{
		repo:   repo,
		steps:  steps,
		logger: logger,
		Now:    time.Now,
		cache:  make(map[string]model.ProgressData),
	}
}

// Snapshot builds one metric snapshot with the percentage rule:
// clamp(current/goal, 0, 1) for positive goals, 0 otherwise.
func Snapshot(current, goal float64, unit string) model.MetricSnapshot {
	s := model.MetricSnapshot{Current: current, Goal: goal, Unit: unit}
	if goal > 0 {
		pct := current / goal
		if pct < 0 {
			pct = 0
		}
		if pct > 1 {
			pct = 1
		}
		s.Percentage = pct
	}
	return s
}

func cacheKey(userID string, r TimeRange) string {
	if r.Kind == RangeCustom {
		return fmt.Sprintf("%s|custom|%d|%d", userID, r.Start.Unix(), r.End.Unix())
	}
	return userID + "|" + string(r.Kind)
}

// ProgressData produces the snapshot for one (user, range) request. The
// range is validated before any fetch. With forceRefresh false a cached
// snapshot for the same key is returned without touching any source. A
// failing metric source degrades that metric to zero; the overall result
// still returns.
func (a *Aggregator) ProgressData(ctx context.Context, userID string, r TimeRange, forceRefresh bool) (model.ProgressData, error) {
	start, end, err := r.Resolve(a.Now())
	if err != nil {
		return model.ProgressData{}, err
	}

	key := cacheKey(userID, r)
	if !forceRefresh {
		a.mu.Lock()
		cached, ok := a.cache[key]
		a.mu.Unlock()
		if ok {
			return cached, nil
		}
	}

	prof, err := a.repo.GetUser(ctx, userID)
	if err != nil {
		// Goals degrade to defaults; the snapshot still assembles.
		a.logger.Printf("progress: profile for %s unavailable, using default goals: %v", userID, err)
		prof = model.UserProfile{ID: userID}
	}

	calorieGoal := 0.0
	if prof.DailyCalorieGoal != nil {
		calorieGoal = *prof.DailyCalorieGoal
	} else if prof.WeightKg != nil && prof.HeightCm != nil {
		calorieGoal = a.repo.DailyGoal(ctx, prof)
	}
	exerciseGoal := float64(defaultExerciseGoalMin)
	if prof.ExerciseGoalMin != nil {
		exerciseGoal = *prof.ExerciseGoalMin
	}
	stepGoal := float64(defaultStepGoal)
	if prof.StepGoal != nil {
		stepGoal = *prof.StepGoal
	}
	waterGoal := float64(defaultWaterGoalMl)
	if prof.WaterGoalMl != nil {
		waterGoal = *prof.WaterGoalMl
	}

	// The four sources are independent reads; fan out, fan in.
	var wg sync.WaitGroup
	var calories, exercise, steps, water float64

	sumLogs := func(kind model.LogKind, pick func(model.LogEntry) float64, dst *float64) {
		defer wg.Done()
		entries, err := a.repo.QueryLogs(ctx, kind, userID, start, end)
		if err != nil {
			a.logger.Printf("progress: %s source for %s failed, reporting zero: %v", kind, userID, err)
			return
		}
		var total float64
		for _, e := range entries {
			total += pick(e)
		}
		*dst = total
	}

	wg.Add(4)
	go sumLogs(model.LogFood, func(e model.LogEntry) float64 { return e.Calories }, &calories)
	go sumLogs(model.LogExercise, func(e model.LogEntry) float64 { return e.DurationMin }, &exercise)
	go sumLogs(model.LogWater, func(e model.LogEntry) float64 { return e.AmountMl }, &water)
	go func() {
		defer wg.Done()
		count, err := a.steps.Steps(ctx, userID, start, end)
		if err != nil {
			a.logger.Printf("progress: step source for %s failed, reporting zero: %v", userID, err)
			return
		}
		steps = count
	}()
	wg.Wait()

	data := model.ProgressData{
		UserID:        userID,
		Start:         start,
		End:           end,
		Calories:      Snapshot(calories, calorieGoal, "kcal"),
		Exercise:      Snapshot(exercise, exerciseGoal, "min"),
		Steps:         Snapshot(steps, stepGoal, "steps"),
		Water:         Snapshot(water, waterGoal, "ml"),
		LastRefreshed: a.Now(),
	}

	a.mu.Lock()
	a.cache[key] = data
	a.mu.Unlock()
	return data, nil
}
