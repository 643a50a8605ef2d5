package model

import "time"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

type GoalType string

const (
	GoalLoseWeight     GoalType = "lose_weight"
	GoalMaintainWeight GoalType = "maintain_weight"
	GoalGainMuscle     GoalType = "gain_muscle"
)

// UserProfile is the single live record per identity. Optional fields are
// pointers and carry omitempty so absent values are dropped on the wire
// instead of being serialized as null.
type UserProfile struct {
	ID               string         `json:"id"`
	Username         string         `json:"username"`
	Email            string         `json:"email,omitempty"`
	Age              *int           `json:"age,omitempty"`
	Sex              *Sex           `json:"sex,omitempty"`
	HeightCm         *float64       `json:"height_cm,omitempty"`
	WeightKg         *float64       `json:"weight_kg,omitempty"`
	ActivityLevel    *ActivityLevel `json:"activity_level,omitempty"`
	Goal             *GoalType      `json:"goal,omitempty"`
	DailyCalorieGoal *float64       `json:"daily_calorie_goal,omitempty"`
	ExerciseGoalMin  *float64       `json:"exercise_goal_min,omitempty"`
	StepGoal         *float64       `json:"step_goal,omitempty"`
	WaterGoalMl      *float64       `json:"water_goal_ml,omitempty"`
	Theme            *string        `json:"theme,omitempty"`
	OnboardingDone   bool           `json:"onboarding_done"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// ProfilePatch carries partial profile updates; nil fields are left untouched.
type ProfilePatch struct {
	Age              *int           `json:"age,omitempty"`
	Sex              *Sex           `json:"sex,omitempty"`
	HeightCm         *float64       `json:"height_cm,omitempty"`
	WeightKg         *float64       `json:"weight_kg,omitempty"`
	ActivityLevel    *ActivityLevel `json:"activity_level,omitempty"`
	Goal             *GoalType      `json:"goal,omitempty"`
	DailyCalorieGoal *float64       `json:"daily_calorie_goal,omitempty"`
	ExerciseGoalMin  *float64       `json:"exercise_goal_min,omitempty"`
	StepGoal         *float64       `json:"step_goal,omitempty"`
	WaterGoalMl      *float64       `json:"water_goal_ml,omitempty"`
	Theme            *string        `json:"theme,omitempty"`
	OnboardingDone   *bool          `json:"onboarding_done,omitempty"`
}

// TouchesGoalInputs reports whether applying the patch invalidates the
// cached daily calorie goal.
func (p ProfilePatch) TouchesGoalInputs() bool {
	return p.WeightKg != nil || p.HeightCm != nil || p.ActivityLevel != nil ||
		p.Goal != nil || p.Age != nil || p.Sex != nil
}

type LogKind string

const (
	LogFood     LogKind = "food"
	LogExercise LogKind = "exercise"
	LogWeight   LogKind = "weight"
	LogWater    LogKind = "water"
)

// LogEntry is one append-only record. Which payload fields are used depends
// on Kind; unused ones stay zero and are dropped from JSON. ClientID is a
// locally generated uuid giving the entry a stable identity before the
// remote has assigned one.
type LogEntry struct {
	ID          int64     `json:"id,omitempty"`
	ClientID    string    `json:"client_id,omitempty"`
	UserID      string    `json:"user_id"`
	Kind        LogKind   `json:"kind"`
	Name        string    `json:"name,omitempty"`
	Calories    float64   `json:"calories,omitempty"`
	ProteinG    float64   `json:"protein_g,omitempty"`
	CarbsG      float64   `json:"carbs_g,omitempty"`
	FatG        float64   `json:"fat_g,omitempty"`
	DurationMin float64   `json:"duration_min,omitempty"`
	WeightKg    float64   `json:"weight_kg,omitempty"`
	AmountMl    float64   `json:"amount_ml,omitempty"`
	LoggedAt    time.Time `json:"logged_at"`
}

// MetricSnapshot is one tracked metric over a range. Percentage is
// clamp(Current/Goal, 0, 1), or 0 when Goal is not positive.
type MetricSnapshot struct {
	Current    float64 `json:"current"`
	Goal       float64 `json:"goal"`
	Percentage float64 `json:"percentage"`
	Unit       string  `json:"unit"`
}

// ProgressData is the assembled snapshot for one (user, range) request.
// Derived state: recomputed on demand, never persisted.
type ProgressData struct {
	UserID        string         `json:"user_id"`
	Start         time.Time      `json:"start"`
	End           time.Time      `json:"end"`
	Calories      MetricSnapshot `json:"calories"`
	Exercise      MetricSnapshot `json:"exercise"`
	Steps         MetricSnapshot `json:"steps"`
	Water         MetricSnapshot `json:"water"`
	LastRefreshed time.Time      `json:"last_refreshed"`
}

// FoodItem is a catalogue entry returned by search/recommend/info lookups.
type FoodItem struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand,omitempty"`
	Calories float64 `json:"calories"`
	ProteinG float64 `json:"protein_g,omitempty"`
	CarbsG   float64 `json:"carbs_g,omitempty"`
	FatG     float64 `json:"fat_g,omitempty"`
}
