package cache_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/cache"
	"github.com/Snape93/nutrition-sub006/internal/model"
)

func newTestStore(t *testing.T) *cache.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nutri.db")
	sqldb, err := cache.Open(path)
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { _ = sqldb.Close() })
	if err := cache.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return cache.NewStore(sqldb)
}

func seedUser(t *testing.T, s *cache.Store, id string) {
	t.Helper()
	if err := s.UpsertUser(context.Background(), model.UserProfile{ID: id, Username: "user-" + id}); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
}

func TestUpsertAndGetUserRoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	age := 25
	sex := model.SexFemale
	height := 165.0
	weight := 60.0
	level := model.ActivityModeratelyActive
	goal := model.GoalLoseWeight
	calGoal := 1546.39

	in := model.UserProfile{
		ID:               "u1",
		Username:         "ana",
		Email:            "ana@example.com",
		Age:              &age,
		Sex:              &sex,
		HeightCm:         &height,
		WeightKg:         &weight,
		ActivityLevel:    &level,
		Goal:             &goal,
		DailyCalorieGoal: &calGoal,
		OnboardingDone:   true,
	}
	if err := s.UpsertUser(ctx, in); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	out, found, err := s.GetUser(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !found {
		t.Fatal("expected user to be found")
	}
	if out.Username != "ana" || out.Email != "ana@example.com" {
		t.Fatalf("identity mismatch: %+v", out)
	}
	if out.Age == nil || *out.Age != 25 || out.Sex == nil || *out.Sex != model.SexFemale {
		t.Fatalf("demographics mismatch: %+v", out)
	}
	if out.DailyCalorieGoal == nil || *out.DailyCalorieGoal != 1546.39 {
		t.Fatalf("calorie goal mismatch: %+v", out.DailyCalorieGoal)
	}
	if !out.OnboardingDone {
		t.Fatal("onboarding flag lost")
	}
}

func TestGetUserMissingFieldsStayNil(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "sparse")
	out, found, err := s.GetUser(ctx, "sparse")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if out.Age != nil || out.Sex != nil || out.WeightKg != nil || out.Goal != nil || out.Theme != nil {
		t.Fatalf("optional fields should be nil for a sparse row: %+v", out)
	}
}

func TestGetUserNotFound(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, found, err := s.GetUser(context.Background(), "ghost")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for unknown id")
	}
}

func TestApplyPatchUpdatesOnlyGivenFields(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()

	age := 30
	weight := 80.0
	seedUser(t, s, "u2")
	if _, err := s.ApplyPatch(ctx, "u2", model.ProfilePatch{Age: &age, WeightKg: &weight}); err != nil {
		t.Fatalf("first patch: %v", err)
	}

	newWeight := 78.5
	found, err := s.ApplyPatch(ctx, "u2", model.ProfilePatch{WeightKg: &newWeight})
	if err != nil {
		t.Fatalf("second patch: %v", err)
	}
	if !found {
		t.Fatal("expected patch to hit an existing row")
	}

	out, _, err := s.GetUser(ctx, "u2")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if out.WeightKg == nil || *out.WeightKg != 78.5 {
		t.Fatalf("weight not updated: %+v", out.WeightKg)
	}
	if out.Age == nil || *out.Age != 30 {
		t.Fatalf("age should be untouched: %+v", out.Age)
	}
}

func TestApplyPatchUnknownUser(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	age := 40
	found, err := s.ApplyPatch(context.Background(), "ghost", model.ProfilePatch{Age: &age})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected found=false for unknown id")
	}
}

func TestInsertAndQueryLogsOrderedAscending(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u3")

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for i, cal := range []float64{300, 500, 250} {
		_, err := s.InsertLog(ctx, model.LogEntry{
			UserID:   "u3",
			Kind:     model.LogFood,
			Name:     "meal",
			Calories: cal,
			LoggedAt: base.Add(time.Duration(2-i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("insert food log: %v", err)
		}
	}

	logs, err := s.QueryLogs(ctx, model.LogFood, "u3", base.Add(-time.Hour), base.Add(3*time.Hour))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 logs, got %d", len(logs))
	}
	for i := 1; i < len(logs); i++ {
		if logs[i].LoggedAt.Before(logs[i-1].LoggedAt) {
			t.Fatalf("logs not ascending: %v before %v", logs[i].LoggedAt, logs[i-1].LoggedAt)
		}
	}
	if logs[0].ClientID == "" {
		t.Fatal("client id should be generated on insert")
	}
}

func TestQueryLogsRangeFilters(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u4")

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{-24 * time.Hour, 2 * time.Hour, 30 * time.Hour} {
		if _, err := s.InsertLog(ctx, model.LogEntry{
			UserID:      "u4",
			Kind:        model.LogExercise,
			Name:        "run",
			DurationMin: 30,
			LoggedAt:    day.Add(offset),
		}); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	logs, err := s.QueryLogs(ctx, model.LogExercise, "u4", day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected exactly the in-range entry, got %d", len(logs))
	}
}

func TestQueryLogsEmptyIsSliceNotError(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	logs, err := s.QueryLogs(context.Background(), model.LogWater, "nobody", time.Now().Add(-time.Hour), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logs == nil || len(logs) != 0 {
		t.Fatalf("expected empty slice, got %v", logs)
	}
}

func TestDeleteLog(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u5")

	id, err := s.InsertLog(ctx, model.LogEntry{UserID: "u5", Kind: model.LogWeight, WeightKg: 72.4})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.DeleteLog(ctx, model.LogWeight, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := s.DeleteLog(ctx, model.LogWeight, id); err == nil {
		t.Fatal("second delete should report not found")
	}
}

func TestDeleteUserRemovesLogs(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)
	ctx := context.Background()
	seedUser(t, s, "u6")

	if _, err := s.InsertLog(ctx, model.LogEntry{UserID: "u6", Kind: model.LogWater, AmountMl: 250}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.DeleteUser(ctx, "u6"); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	_, found, err := s.GetUser(ctx, "u6")
	if err != nil || found {
		t.Fatalf("user should be gone: found=%v err=%v", found, err)
	}
	logs, err := s.QueryLogs(ctx, model.LogWater, "u6", time.Now().Add(-24*time.Hour), time.Now().Add(24*time.Hour))
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("logs should be gone, got %d", len(logs))
	}
}

func TestInsertLogUnknownKind(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	if _, err := s.InsertLog(context.Background(), model.LogEntry{UserID: "u7", Kind: model.LogKind("mood")}); err == nil {
		t.Fatal("expected error for unknown log kind")
	}
}
