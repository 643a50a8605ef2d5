package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/model"
	"github.com/Snape93/nutrition-sub006/internal/remote"
)

func TestGetUserParsesProfile(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/u1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "id": "u1",
  "username": "ana",
  "age": 25,
  "sex": "female",
  "weight_kg": 60,
  "height_cm": 165,
  "activity_level": "moderately_active",
  "goal": "lose_weight",
  "daily_calorie_goal": 1546.39,
  "onboarding_done": true
}`))
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	p, err := c.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if p.Username != "ana" || p.Age == nil || *p.Age != 25 {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if p.Goal == nil || *p.Goal != model.GoalLoseWeight {
		t.Fatalf("goal not parsed: %+v", p.Goal)
	}
	if p.Theme != nil {
		t.Fatalf("absent field should stay nil, got %v", *p.Theme)
	}
}

func TestGetUserNotFound(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"no such user"}`, http.StatusNotFound)
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.GetUser(context.Background(), "ghost")
	if !errors.Is(err, remote.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestServerRejectedKeepsMessage(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"email already registered"}`))
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	_, err := c.Register(context.Background(), remote.RegisterInput{Username: "ana"})
	if !errors.Is(err, remote.ErrServerRejected) {
		t.Fatalf("expected ErrServerRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "email already registered") {
		t.Fatalf("server message lost: %q", err.Error())
	}
}

func TestGetRetriesOnceOnTransportFailure(t *testing.T) {
	t.Parallel()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			// Kill the first connection mid-response to force a transport error.
			hj, ok := w.(http.Hijacker)
			if !ok {
				t.Fatal("hijacking unsupported")
			}
			conn, _, err := hj.Hijack()
			if err != nil {
				t.Fatalf("hijack: %v", err)
			}
			conn.Close()
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"u1","username":"ana","onboarding_done":false}`))
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: &http.Client{Timeout: 5 * time.Second}}
	p, err := c.GetUser(context.Background(), "u1")
	if err != nil {
		t.Fatalf("expected retry to succeed: %v", err)
	}
	if p.Username != "ana" {
		t.Fatalf("unexpected profile: %+v", p)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", got)
	}
}

func TestWritesAreSingleAttempt(t *testing.T) {
	t.Parallel()

	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Fatal("hijacking unsupported")
		}
		conn, _, err := hj.Hijack()
		if err != nil {
			t.Fatalf("hijack: %v", err)
		}
		conn.Close()
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: &http.Client{Timeout: 5 * time.Second}}
	err := c.PostLog(context.Background(), model.LogEntry{UserID: "u1", Kind: model.LogFood, Name: "apple", Calories: 52})
	if !errors.Is(err, remote.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("writes must not retry: got %d attempts", got)
	}
}

func TestUnreachableHost(t *testing.T) {
	t.Parallel()

	c := &remote.Client{BaseURL: "http://127.0.0.1:1", HTTPClient: &http.Client{Timeout: 2 * time.Second}}
	err := c.PostLog(context.Background(), model.LogEntry{UserID: "u1", Kind: model.LogWater, AmountMl: 200})
	if !errors.Is(err, remote.ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
}

func TestGetLogsFiltersAndTagsKind(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/log/exercise" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("user_id") != "u1" {
			t.Errorf("missing user_id, got %q", r.URL.Query().Get("user_id"))
		}
		if r.URL.Query().Get("from") == "" || r.URL.Query().Get("to") == "" {
			t.Error("missing date filter params")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
  {"user_id":"u1","name":"run","duration_min":30,"logged_at":"2026-03-10T08:00:00Z"},
  {"user_id":"u1","name":"swim","duration_min":45,"logged_at":"2026-03-10T18:00:00Z"}
]`))
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs, err := c.GetLogs(context.Background(), model.LogExercise, "u1", from, from.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("get logs: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	for _, e := range logs {
		if e.Kind != model.LogExercise {
			t.Fatalf("kind not tagged: %+v", e)
		}
	}
}

func TestCalculateDailyGoal(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/calculate/daily_goal" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var in map[string]any
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		if in["activity_level"] != "moderately_active" {
			t.Errorf("expected underscored activity level, got %v", in["activity_level"])
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"daily_calorie_goal": 1546.39}`))
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	goal, err := c.CalculateDailyGoal(context.Background(), remote.DailyGoalInput{
		Age:           25,
		Sex:           model.SexFemale,
		WeightKg:      60,
		HeightCm:      165,
		ActivityLevel: model.ActivityModeratelyActive,
		Goal:          model.GoalLoseWeight,
	})
	if err != nil {
		t.Fatalf("calculate daily goal: %v", err)
	}
	if goal != 1546.39 {
		t.Fatalf("expected 1546.39, got %v", goal)
	}
}

func TestSearchFoods(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/foods/search" || r.URL.Query().Get("q") != "yogurt" {
			t.Errorf("unexpected request %s %s", r.URL.Path, r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"f1","name":"Greek Yogurt","calories":100,"protein_g":17}]`))
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, HTTPClient: ts.Client()}
	items, err := c.SearchFoods(context.Background(), "yogurt")
	if err != nil {
		t.Fatalf("search foods: %v", err)
	}
	if len(items) != 1 || items[0].Name != "Greek Yogurt" || items[0].ProteinG != 17 {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestAPIKeyAppendedToRequests(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("api_key") != "secret" {
			t.Errorf("api key missing: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := &remote.Client{BaseURL: ts.URL, APIKey: "secret", HTTPClient: ts.Client()}
	if _, err := c.SearchFoods(context.Background(), "apple"); err != nil {
		t.Fatalf("search foods: %v", err)
	}
}
