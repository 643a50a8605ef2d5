// Package metrics implements the nutrition calculation engine: BMR, TDEE,
// goal-adjusted calorie targets, macro splits, and BMI. Every function is
// pure and total over its numeric domain; callers validate inputs.
//
// These formulas are the local fallback for the remote daily-goal endpoint.
// Both paths must agree; any divergence is a defect.
package metrics

import "github.com/Snape93/nutrition-sub006/internal/model"

// BMR computes basal metabolic rate (kcal/day) using Mifflin-St Jeor.
// Any sex other than male uses the female constant.
func BMR(age int, sex model.Sex, weightKg, heightCm float64) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == model.SexMale {
		return base + 5
	}
	return base - 161
}

var activityMultipliers = map[model.ActivityLevel]float64{
	model.ActivitySedentary:        1.20,
	model.ActivityLightlyActive:    1.375,
	model.ActivityModeratelyActive: 1.55,
	model.ActivityVeryActive:       1.725,
	model.ActivityExtremelyActive:  1.90,
}

// TDEE scales a BMR by the activity multiplier. An unrecognized level uses
// the lightly_active multiplier; that is the documented default, not an error.
func TDEE(bmr float64, level model.ActivityLevel) float64 {
	m, ok := activityMultipliers[level]
	if !ok {
		m = activityMultipliers[model.ActivityLightlyActive]
	}
	return bmr * m
}

// CalorieTarget is a goal-adjusted daily calorie target with its
// acceptable range.
type CalorieTarget struct {
	Target float64 `json:"target"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
}

// GoalCalories adjusts a TDEE for the user's goal. Unrecognized goals are
// treated as maintain_weight.
func GoalCalories(tdee float64, goal model.GoalType) CalorieTarget {
	switch goal {
	case model.GoalLoseWeight:
		return CalorieTarget{Target: tdee - 500, Min: tdee - 750, Max: tdee - 250}
	case model.GoalGainMuscle:
		return CalorieTarget{Target: tdee + 300, Min: tdee + 200, Max: tdee + 500}
	default:
		return CalorieTarget{Target: tdee, Min: tdee - 100, Max: tdee + 100}
	}
}

// BMI computes body mass index. A non-positive height yields 0 rather than
// a division blowup; the function stays total.
func BMI(weightKg, heightCm float64) float64 {
	if heightCm <= 0 {
		return 0
	}
	m := heightCm / 100
	return weightKg / (m * m)
}

type BMICategory string

const (
	BMIUnderweight BMICategory = "underweight"
	BMINormal      BMICategory = "normal"
	BMIOverweight  BMICategory = "overweight"
	BMIObese       BMICategory = "obese"
)

func ClassifyBMI(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// MacroSplit is a daily macronutrient gram target.
type MacroSplit struct {
	ProteinG float64 `json:"protein_g"`
	FatG     float64 `json:"fat_g"`
	CarbG    float64 `json:"carb_g"`
}

const (
	kcalPerGramProtein = 4
	kcalPerGramCarb    = 4
	kcalPerGramFat     = 9
)

// Macros splits a calorie budget into gram targets. Ratios are keyed by
// goal; for female users 0.05 of the carb ratio shifts onto fat before
// conversion.
func Macros(calories float64, goal model.GoalType, sex model.Sex) MacroSplit {
	var protein, fat, carb float64
	switch goal {
	case model.GoalLoseWeight:
		protein, fat, carb = 0.35, 0.25, 0.40
	case model.GoalGainMuscle:
		protein, fat, carb = 0.30, 0.25, 0.45
	default:
		protein, fat, carb = 0.25, 0.30, 0.45
	}
	if sex == model.SexFemale {
		fat += 0.05
		carb -= 0.05
	}
	return MacroSplit{
		ProteinG: calories * protein / kcalPerGramProtein,
		FatG:     calories * fat / kcalPerGramFat,
		CarbG:    calories * carb / kcalPerGramCarb,
	}
}

// DailyCalorieGoal derives the daily calorie target from a profile,
// chaining BMR, TDEE, and the goal adjustment. Missing demographic fields
// fall back to zero values; sex defaults to female and goal to maintain,
// matching the formula defaults above.
func DailyCalorieGoal(p model.UserProfile) float64 {
	var (
		age    int
		sex    model.Sex
		weight float64
		height float64
		level  model.ActivityLevel
		goal   model.GoalType
	)
	if p.Age != nil {
		age = *p.Age
	}
	if p.Sex != nil {
		sex = *p.Sex
	}
	if p.WeightKg != nil {
		weight = *p.WeightKg
	}
	if p.HeightCm != nil {
		height = *p.HeightCm
	}
	if p.ActivityLevel != nil {
		level = *p.ActivityLevel
	}
	if p.Goal != nil {
		goal = *p.Goal
	}
	return GoalCalories(TDEE(BMR(age, sex, weight, height), level), goal).Target
}
