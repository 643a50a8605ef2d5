package cache

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Snape93/nutrition-sub006/internal/model"
)

// UpsertUser writes the full profile row, replacing any previous copy.
// Cache writes are last-write-wins by local wall clock.
func (s *Store) UpsertUser(ctx context.Context, p model.UserProfile) error {
	if p.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO users(id, username, email, age, sex, height_cm, weight_kg, activity_level, goal,
                  daily_calorie_goal, exercise_goal_min, step_goal, water_goal_ml, theme,
                  onboarding_done, updated_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  username=excluded.username,
  email=excluded.email,
  age=excluded.age,
  sex=excluded.sex,
  height_cm=excluded.height_cm,
  weight_kg=excluded.weight_kg,
  activity_level=excluded.activity_level,
  goal=excluded.goal,
  daily_calorie_goal=excluded.daily_calorie_goal,
  exercise_goal_min=excluded.exercise_goal_min,
  step_goal=excluded.step_goal,
  water_goal_ml=excluded.water_goal_ml,
  theme=excluded.theme,
  onboarding_done=excluded.onboarding_done,
  updated_at=excluded.updated_at
`, p.ID, p.Username, nullableString(p.Email), p.Age, sexValue(p.Sex), p.HeightCm, p.WeightKg,
		activityValue(p.ActivityLevel), goalValue(p.Goal), p.DailyCalorieGoal, p.ExerciseGoalMin,
		p.StepGoal, p.WaterGoalMl, p.Theme, p.OnboardingDone, p.UpdatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", p.ID, err)
	}
	return nil
}

// GetUser returns the cached profile, or found=false when the id is unknown.
func (s *Store) GetUser(ctx context.Context, id string) (model.UserProfile, bool, error) {
	var (
		p           model.UserProfile
		email       sql.NullString
		age         sql.NullInt64
		sex         sql.NullString
		heightCm    sql.NullFloat64
		weightKg    sql.NullFloat64
		level       sql.NullString
		goal        sql.NullString
		calorieGoal sql.NullFloat64
		exerciseMin sql.NullFloat64
		stepGoal    sql.NullFloat64
		waterMl     sql.NullFloat64
		theme       sql.NullString
		updatedRaw  string
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, username, email, age, sex, height_cm, weight_kg, activity_level, goal,
       daily_calorie_goal, exercise_goal_min, step_goal, water_goal_ml, theme,
       onboarding_done, updated_at
FROM users WHERE id = ?
`, id).Scan(&p.ID, &p.Username, &email, &age, &sex, &heightCm, &weightKg, &level, &goal,
		&calorieGoal, &exerciseMin, &stepGoal, &waterMl, &theme, &p.OnboardingDone, &updatedRaw)
	if err == sql.ErrNoRows {
		return model.UserProfile{}, false, nil
	}
	if err != nil {
		return model.UserProfile{}, false, fmt.Errorf("get user %s: %w", id, err)
	}

	if email.Valid {
		p.Email = email.String
	}
	if age.Valid {
		v := int(age.Int64)
		p.Age = &v
	}
	if sex.Valid {
		v := model.Sex(sex.String)
		p.Sex = &v
	}
	if heightCm.Valid {
		p.HeightCm = &heightCm.Float64
	}
	if weightKg.Valid {
		p.WeightKg = &weightKg.Float64
	}
	if level.Valid {
		v := model.ActivityLevel(level.String)
		p.ActivityLevel = &v
	}
	if goal.Valid {
		v := model.GoalType(goal.String)
		p.Goal = &v
	}
	if calorieGoal.Valid {
		p.DailyCalorieGoal = &calorieGoal.Float64
	}
	if exerciseMin.Valid {
		p.ExerciseGoalMin = &exerciseMin.Float64
	}
	if stepGoal.Valid {
		p.StepGoal = &stepGoal.Float64
	}
	if waterMl.Valid {
		p.WaterGoalMl = &waterMl.Float64
	}
	if theme.Valid {
		p.Theme = &theme.String
	}
	if parsed, perr := time.Parse(time.RFC3339, updatedRaw); perr == nil {
		p.UpdatedAt = parsed
	}
	return p, true, nil
}

// ApplyPatch updates only the fields the patch carries. Returns found=false
// when the id has no cached row.
func (s *Store) ApplyPatch(ctx context.Context, id string, patch model.ProfilePatch) (bool, error) {
	query := `UPDATE users SET updated_at = ?`
	args := []any{time.Now().Format(time.RFC3339)}

	set := func(column string, value any) {
		query += `, ` + column + ` = ?`
		args = append(args, value)
	}
	if patch.Age != nil {
		set("age", *patch.Age)
	}
	if patch.Sex != nil {
		set("sex", string(*patch.Sex))
	}
	if patch.HeightCm != nil {
		set("height_cm", *patch.HeightCm)
	}
	if patch.WeightKg != nil {
		set("weight_kg", *patch.WeightKg)
	}
	if patch.ActivityLevel != nil {
		set("activity_level", string(*patch.ActivityLevel))
	}
	if patch.Goal != nil {
		set("goal", string(*patch.Goal))
	}
	if patch.DailyCalorieGoal != nil {
		set("daily_calorie_goal", *patch.DailyCalorieGoal)
	}
	if patch.ExerciseGoalMin != nil {
		set("exercise_goal_min", *patch.ExerciseGoalMin)
	}
	if patch.StepGoal != nil {
		set("step_goal", *patch.StepGoal)
	}
	if patch.WaterGoalMl != nil {
		set("water_goal_ml", *patch.WaterGoalMl)
	}
	if patch.Theme != nil {
		set("theme", *patch.Theme)
	}
	if patch.OnboardingDone != nil {
		set("onboarding_done", *patch.OnboardingDone)
	}

	query += ` WHERE id = ?`
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("patch user %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteUser removes the profile row and all of the user's cached logs.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete user %s: %w", id, err)
	}
	for _, table := range []string{"food_logs", "exercise_logs", "weight_logs", "water_logs"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE user_id = ?`, id); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("delete %s for user %s: %w", table, id, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete user %s: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete user %s: %w", id, err)
	}
	return nil
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func sexValue(s *model.Sex) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func activityValue(a *model.ActivityLevel) any {
	if a == nil {
		return nil
	}
	return string(*a)
}

func goalValue(g *model.GoalType) any {
	if g == nil {
		return nil
	}
	return string(*g)
}
