package dailymenu

import (
	"context"
	"time"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
)

// Store is the slice of the local cache the reconciler works against. Date
// arguments are matched by equality; the reconciler decides which date to pass.
type Store interface {
	InsertDailyMenuItem(ctx context.Context, item *models.DailyMenuItem) error
	UpdateDailyMenuItem(ctx context.Context, item *models.DailyMenuItem) error
	FindDailyMenuItems(ctx context.Context, userID string, date time.Time, category enums.MealCategory) ([]models.DailyMenuItem, error)
	FindDailyMenuItemsForDay(ctx context.Context, userID string, date time.Time) ([]models.DailyMenuItem, error)
	FindDailyMenuItemsByMeal(ctx context.Context, mealID string) ([]models.DailyMenuItem, error)
	DeleteDailyMenuItem(ctx context.Context, id string) error
	DeleteDailyMenuItemsWhere(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory) (int64, error)
	DeleteDailyMenuItemsByMeal(ctx context.Context, mealID string) (int64, error)

	DeleteFavoritesByMeal(ctx context.Context, mealID string) (int64, error)
	DeleteOverridesByMeal(ctx context.Context, mealID string) (int64, error)

	FindMealIntake(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory) (*models.MealIntake, error)
	FindMealIntakes(ctx context.Context, userID string, date time.Time) ([]models.MealIntake, error)
	SaveMealIntake(ctx context.Context, intake *models.MealIntake) error
}
