package repository

import (
	"context"
	"fmt"
	"time"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/dailymenu"
	"nutriplan-go-worker/services/datekey"
	"nutriplan-go-worker/structs"
)

func validCategory(category enums.MealCategory) bool {
	switch category {
	case enums.Breakfast, enums.Lunch, enums.Dinner:
		return true
	}
	return false
}

// AddToDailyMenu plans a meal; the snapshot uses the user's effective meal.
func (r *Repository) AddToDailyMenu(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory, portion float64) structs.Result[models.DailyMenuItem] {
	if blank(userID, mealID) {
		return validationError[models.DailyMenuItem]("user id and meal id are required")
	}
	if !validCategory(category) {
		return validationError[models.DailyMenuItem]("unknown meal category %q", category)
	}
	if portion <= 0 {
		return validationError[models.DailyMenuItem]("portion size must be positive")
	}

	meal := r.GetEffectiveMeal(ctx, userID, mealID)
	if !meal.IsSuccess() {
		return structs.Failure[models.DailyMenuItem](meal.Cause, meal.Message)
	}

	item, err := r.menu.AddItem(ctx, models.DailyMenuItem{
		UserID:       userID,
		Date:         date,
		MealID:       mealID,
		MealCategory: category,
		MealName:     meal.Value.Name,
		Calories:     meal.Value.Calories,
		PortionSize:  portion,
	})
	if err != nil {
		return structs.Failure[models.DailyMenuItem](err, "新增菜單失敗")
	}
	return structs.Success(item)
}

// DeleteFromDailyMenu succeeds whether or not a matching row existed.
func (r *Repository) DeleteFromDailyMenu(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory) structs.Result[dailymenu.DeleteReport] {
	if blank(userID, mealID) {
		return validationError[dailymenu.DeleteReport]("user id and meal id are required")
	}
	if !validCategory(category) {
		return validationError[dailymenu.DeleteReport]("unknown meal category %q", category)
	}
	return structs.Success(r.menu.DeleteSpecificMeal(ctx, userID, date, mealID, category))
}

func (r *Repository) GetDailyMenu(ctx context.Context, userID string, date time.Time) structs.Result[[]models.DailyMenuItem] {
	if blank(userID) {
		return validationError[[]models.DailyMenuItem]("user id is required")
	}
	items, err := r.menu.ItemsForDay(ctx, userID, date)
	if err != nil {
		return structs.Failure[[]models.DailyMenuItem](err, "讀取菜單失敗")
	}
	return structs.Success(items)
}

func (r *Repository) GetDaySummary(ctx context.Context, userID string, date time.Time) structs.Result[dailymenu.DaySummary] {
	if blank(userID) {
		return validationError[dailymenu.DaySummary]("user id is required")
	}
	summary, err := r.menu.DayTotals(ctx, userID, date)
	if err != nil {
		return structs.Failure[dailymenu.DaySummary](err, "讀取菜單失敗")
	}
	return structs.Success(summary)
}

// ToggleConsumed marks a planned item of the given day as eaten or not.
func (r *Repository) ToggleConsumed(ctx context.Context, userID string, date time.Time, itemID string, consumed bool) structs.Result[models.MealIntake] {
	if blank(userID, itemID) {
		return validationError[models.MealIntake]("user id and item id are required")
	}
	items, err := r.menu.ItemsForDay(ctx, userID, date)
	if err != nil {
		return structs.Failure[models.MealIntake](err, "讀取菜單失敗")
	}
	for _, item := range items {
		if item.ID != itemID {
			continue
		}
		intake, err := r.menu.ToggleConsumed(ctx, item, consumed)
		if err != nil {
			return structs.Failure[models.MealIntake](err, "更新攝取紀錄失敗")
		}
		return structs.Success(intake)
	}
	return structs.Failure[models.MealIntake](fmt.Errorf("daily menu item %s: %w", itemID, structs.ErrNotFound), "planned meal not found")
}

func (r *Repository) GetIntakes(ctx context.Context, userID string, date time.Time) structs.Result[[]models.MealIntake] {
	if blank(userID) {
		return validationError[[]models.MealIntake]("user id is required")
	}
	intakes, err := r.local.FindMealIntakes(ctx, userID, datekey.StartOfDay(date))
	if err != nil {
		return structs.Failure[[]models.MealIntake](err, "讀取攝取紀錄失敗")
	}
	return structs.Success(intakes)
}
