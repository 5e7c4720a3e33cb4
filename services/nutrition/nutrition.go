// Package nutrition holds the body-metric and calorie-target math. Every function is
// pure: invalid numeric input yields 0 instead of an error, and callers must show a 0
// as "unavailable" rather than as a real value.
package nutrition

import (
	"math"
	"time"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
)

// 熱量增減固定 500 kcal
const goalCalorieDelta = 500

var activityFactors = map[enums.ActivityLevel]float64{
	enums.Sedentary: 1.2,
	enums.Light:     1.375,
	enums.Moderate:  1.55,
	enums.Very:      1.725,
	enums.Extra:     1.9,
}

type activityStep struct {
	below int
	level enums.ActivityLevel
}

// 每週運動分鐘數的級距，上限不含
var adultActivitySteps = []activityStep{
	{60, enums.Sedentary},
	{150, enums.Light},
	{300, enums.Moderate},
	{450, enums.Very},
}

var youthActivitySteps = []activityStep{
	{120, enums.Sedentary},
	{240, enums.Light},
	{420, enums.Moderate},
	{600, enums.Very},
}

type mealSplit struct {
	breakfast float64
	lunch     float64
	dinner    float64
}

var mealSplits = map[enums.Goal]mealSplit{
	enums.LoseWeight: {0.30, 0.40, 0.30},
	enums.Maintain:   {0.25, 0.40, 0.35},
	enums.GainWeight: {0.30, 0.35, 0.35},
}

func round1(value float64) float64 {
	return math.Round(value*10) / 10
}

// BMI is weight over height in metres squared, one decimal.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	meters := heightCm / 100
	return round1(weightKg / (meters * meters))
}

// BMR uses Mifflin-St Jeor. The value is not rounded.
func BMR(weightKg, heightCm float64, age int, gender enums.Gender) float64 {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == enums.Male {
		return bmr + 5
	}
	return bmr - 161
}

// TDEE scales the BMR by the activity factor, one decimal.
func TDEE(bmr float64, level enums.ActivityLevel) float64 {
	factor, ok := activityFactors[level]
	if bmr <= 0 || !ok {
		return 0
	}
	return round1(bmr * factor)
}

// InferActivityLevel maps weekly exercise minutes onto a level using the
// age band the person falls into.
func InferActivityLevel(minutesPerWeek, age int) enums.ActivityLevel {
	if minutesPerWeek < 0 {
		minutesPerWeek = 0
	}
	steps := adultActivitySteps
	if age < 18 {
		steps = youthActivitySteps
	}
	for _, step := range steps {
		if minutesPerWeek < step.below {
			return step.level
		}
	}
	return enums.Extra
}

// DailyCaloriesTarget shifts TDEE by the goal delta and truncates toward zero.
func DailyCaloriesTarget(tdee float64, goal enums.Goal) int {
	if tdee <= 0 {
		return 0
	}
	switch goal {
	case enums.LoseWeight:
		return int(tdee - goalCalorieDelta)
	case enums.GainWeight:
		return int(tdee + goalCalorieDelta)
	case enums.Maintain:
		return int(tdee)
	}
	return 0
}

// MealCalories is the share of the daily target for one meal. Dinner takes the
// remainder so the three meals add up to the daily target exactly.
func MealCalories(tdee float64, goal enums.Goal, category enums.MealCategory) int {
	split, ok := mealSplits[goal]
	if !ok {
		return 0
	}
	target := DailyCaloriesTarget(tdee, goal)
	if target <= 0 {
		return 0
	}
	breakfast := int(math.Round(float64(target) * split.breakfast))
	lunch := int(math.Round(float64(target) * split.lunch))
	switch category {
	case enums.Breakfast:
		return breakfast
	case enums.Lunch:
		return lunch
	case enums.Dinner:
		return target - breakfast - lunch
	}
	return 0
}

// BMICategory buckets a BMI using the Asia-Pacific breakpoints.
func BMICategory(bmi float64) enums.BMICategory {
	bmi = round1(bmi)
	switch {
	case bmi < 16:
		return enums.SevereThinness
	case bmi < 17:
		return enums.ModerateThinness
	case bmi < 18.5:
		return enums.MildThinness
	case bmi < 23:
		return enums.NormalWeight
	case bmi < 25:
		return enums.Overweight
	case bmi < 30:
		return enums.ObeseClassI
	default:
		return enums.ObeseClassII
	}
}

// Recompute builds a fresh snapshot from the user's current inputs.
func Recompute(user models.User, now time.Time) models.HealthMetrics {
	bmr := BMR(user.Weight, user.Height, user.Age, user.Gender)
	return models.HealthMetrics{
		BMI:         BMI(user.Weight, user.Height),
		BMR:         bmr,
		TDEE:        TDEE(bmr, user.ActivityLevel),
		LastUpdated: &now,
	}
}

// ApplyProfile infers the activity level from the weekly routine and replaces
// the metrics snapshot.
func ApplyProfile(user *models.User, now time.Time) {
	user.ActivityLevel = InferActivityLevel(user.ActivityMinutesPerDay*user.ActivityDaysPerWeek, user.Age)
	user.HealthMetrics = Recompute(*user, now)
}

// MealTargets returns the per-meal calorie split for a user's snapshot.
func MealTargets(user models.User) map[enums.MealCategory]int {
	targets := make(map[enums.MealCategory]int, 3)
	for _, category := range []enums.MealCategory{enums.Breakfast, enums.Lunch, enums.Dinner} {
		targets[category] = MealCalories(user.HealthMetrics.TDEE, user.Goal, category)
	}
	return targets
}
