// Package dailymenu owns every write to planned meals: adding, the delete-verify
// protocol, catalog-change propagation and the lazy intake toggle.
package dailymenu

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services"
	"nutriplan-go-worker/services/datekey"
	"nutriplan-go-worker/structs"
)

const (
	defaultVerifyDelay = 300 * time.Millisecond
	// 第一輪之外最多再重試一輪
	maxDeletePasses = 2
)

type Reconciler struct {
	store        Store
	logger       *logrus.Entry
	legacyDelete bool
	verifyDelay  time.Duration
	now          func() time.Time
}

type Option func(*Reconciler)

// WithLegacyDeleteVerify switches between the multi-pass delete protocol (true)
// and a single predicate delete on the canonical key (false).
func WithLegacyDeleteVerify(enabled bool) Option {
	return func(r *Reconciler) { r.legacyDelete = enabled }
}

// WithVerifyDelay sets the pause between a delete batch and its verification.
func WithVerifyDelay(delay time.Duration) Option {
	return func(r *Reconciler) { r.verifyDelay = delay }
}

func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) { r.now = now }
}

func New(store Store, logger *logrus.Entry, opts ...Option) *Reconciler {
	r := &Reconciler{
		store:        store,
		logger:       logger,
		legacyDelete: true,
		verifyDelay:  defaultVerifyDelay,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return r
}

// DeleteReport describes what a delete call did. It is informational only; the
// delete itself never fails.
type DeleteReport struct {
	Passes    int
	Deleted   int64
	Remaining int
}

// AddItem is the only write path for planned meals; the date key is normalised here.
func (r *Reconciler) AddItem(ctx context.Context, item models.DailyMenuItem) (models.DailyMenuItem, error) {
	now := r.now()
	item.Date = datekey.StartOfDay(item.Date)
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if item.PortionSize <= 0 {
		item.PortionSize = 1
	}
	item.CreatedAt = now
	item.UpdatedAt = now
	if err := r.store.InsertDailyMenuItem(ctx, &item); err != nil {
		return item, fmt.Errorf("insert daily menu item: %w", err)
	}
	return item, nil
}

// DeleteSpecificMeal removes the planned meal identified by
// (userID, date, mealID, category). It runs to completion even if ctx is
// cancelled, and reports success whether or not a row was found.
func (r *Reconciler) DeleteSpecificMeal(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory) DeleteReport {
	ctx = context.WithoutCancel(ctx)
	normalized := datekey.StartOfDay(date)
	logwr := r.logger.WithFields(logrus.Fields{"task": "daily-menu-delete", "user_id": userID, "meal_id": mealID, "category": category})

	if !r.legacyDelete {
		deleted, err := r.store.DeleteDailyMenuItemsWhere(ctx, userID, normalized, mealID, category)
		if err != nil {
			logwr.WithField("error_message", err.Error()).Warn("刪除失敗")
		}
		return DeleteReport{Passes: 1, Deleted: deleted}
	}

	var report DeleteReport
	for pass := 1; pass <= maxDeletePasses; pass++ {
		report.Passes = pass
		report.Deleted += r.deletePass(ctx, logwr, userID, date, normalized, mealID, category)

		if r.verifyDelay > 0 {
			time.Sleep(r.verifyDelay)
		}

		remaining, err := r.matchingRows(ctx, userID, normalized, mealID, category)
		if err != nil {
			logwr.WithField("error_message", err.Error()).Warn("驗證查詢失敗")
		}
		report.Remaining = len(remaining)
		if report.Remaining == 0 {
			return report
		}
		logwr.WithFields(logrus.Fields{"pass": pass, "remaining": report.Remaining}).Info("刪除後仍有資料，重新處理")
	}

	logwr.WithFields(logrus.Fields{"passes": report.Passes, "remaining": report.Remaining}).Warn("planned meal still present after retry pass")
	return report
}

// deletePass deletes row by row, falls back to the raw date when the normalised
// key finds nothing, then issues predicate deletes for both dates.
// Date matching is equality only: a legacy row stored under a timestamp other
// than the caller's original is never found, and a caller passing midnight (as
// the HTTP layer does) only reaches normalised rows. Such rows stay in place and
// are not counted in DeleteReport.Remaining, which re-checks the normalised key.
func (r *Reconciler) deletePass(ctx context.Context, logwr *logrus.Entry, userID string, original, normalized time.Time, mealID string, category enums.MealCategory) int64 {
	var deleted int64

	rows, err := r.matchingRows(ctx, userID, normalized, mealID, category)
	if err != nil {
		logwr.WithField("error_message", err.Error()).Warn("查詢正規化日期失敗")
	}
	if len(rows) == 0 && !original.Equal(normalized) {
		if rows, err = r.matchingRows(ctx, userID, original, mealID, category); err != nil {
			logwr.WithField("error_message", err.Error()).Warn("查詢原始日期失敗")
		}
	}

	for _, row := range rows {
		if err := r.store.DeleteDailyMenuItem(ctx, row.ID); err != nil {
			logwr.WithFields(logrus.Fields{"row_id": row.ID, "error_message": err.Error()}).Warn("單筆刪除失敗")
			continue
		}
		deleted++
	}

	dates := []time.Time{normalized}
	if !original.Equal(normalized) {
		dates = append(dates, original)
	}
	for _, date := range dates {
		count, err := r.store.DeleteDailyMenuItemsWhere(ctx, userID, date, mealID, category)
		if err != nil {
			logwr.WithFields(logrus.Fields{"date": date, "error_message": err.Error()}).Warn("條件刪除失敗")
			continue
		}
		deleted += count
	}
	return deleted
}

func (r *Reconciler) matchingRows(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory) ([]models.DailyMenuItem, error) {
	rows, err := r.store.FindDailyMenuItems(ctx, userID, date, category)
	if err != nil {
		return nil, err
	}
	var matches []models.DailyMenuItem
	for _, row := range rows {
		if row.MealID == mealID {
			matches = append(matches, row)
		}
	}
	return matches, nil
}

// SyncMealUpdated refreshes the name/calorie snapshot on every planned item for
// the meal. Rows that fail stay stale until the next sync; nothing is rolled back.
func (r *Reconciler) SyncMealUpdated(ctx context.Context, meal models.Meal) (structs.StatisticModel, error) {
	var statistic structs.StatisticModel
	items, err := r.store.FindDailyMenuItemsByMeal(ctx, meal.ID)
	if err != nil {
		return statistic, fmt.Errorf("find planned items for meal %s: %w", meal.ID, err)
	}
	statistic.TotalRows = len(items)

	var errs []error
	now := r.now()
	for i := range items {
		item := items[i]
		if item.MealName == meal.Name && item.Calories == meal.Calories {
			statistic.OKRows++
			continue
		}
		item.MealName = meal.Name
		item.Calories = meal.Calories
		item.UpdatedAt = now
		if err := r.store.UpdateDailyMenuItem(ctx, &item); err != nil {
			statistic.FailRows++
			errs = append(errs, fmt.Errorf("update planned item %s: %w", item.ID, err))
			continue
		}
		statistic.OKRows++
	}
	if len(errs) > 0 {
		r.logger.WithFields(logrus.Fields{"task": "catalog-sync", "meal_id": meal.ID, "fail_rows": statistic.FailRows}).Warn("部分菜單同步失敗")
	}
	return statistic, errors.Join(errs...)
}

// SyncMealDeleted cascades a catalog deletion to planned items, favorites and
// overrides by meal id. Intake history is kept.
func (r *Reconciler) SyncMealDeleted(ctx context.Context, mealID string) (structs.StatisticModel, error) {
	var statistic structs.StatisticModel
	steps := []struct {
		name string
		fn   func(context.Context, string) (int64, error)
	}{
		{"daily menu items", r.store.DeleteDailyMenuItemsByMeal},
		{"favorites", r.store.DeleteFavoritesByMeal},
		{"overrides", r.store.DeleteOverridesByMeal},
	}
	var errs []error
	for _, step := range steps {
		count, err := step.fn(ctx, mealID)
		if err != nil {
			statistic.FailRows++
			errs = append(errs, fmt.Errorf("delete %s for meal %s: %w", step.name, mealID, err))
			continue
		}
		statistic.TotalRows += int(count)
		statistic.OKRows += int(count)
	}
	return statistic, errors.Join(errs...)
}

// ToggleConsumed marks a planned meal as eaten or not. The intake row is created
// the first time and updated in place afterwards.
func (r *Reconciler) ToggleConsumed(ctx context.Context, item models.DailyMenuItem, consumed bool) (models.MealIntake, error) {
	date := datekey.StartOfDay(item.Date)
	now := r.now()

	intake, err := r.store.FindMealIntake(ctx, item.UserID, date, item.MealID, item.MealCategory)
	if err != nil {
		return models.MealIntake{}, fmt.Errorf("find intake: %w", err)
	}
	if intake == nil {
		portion := item.PortionSize
		if portion <= 0 {
			portion = 1
		}
		intake = &models.MealIntake{
			ID:          uuid.New().String(),
			UserID:      item.UserID,
			Date:        date,
			MealID:      item.MealID,
			Category:    item.MealCategory,
			PortionSize: portion,
			CreatedAt:   now,
		}
		if item.ID != "" {
			itemID := item.ID
			intake.DailyMenuItemID = &itemID
		}
	}
	intake.IsConsumed = consumed
	intake.UpdatedAt = now
	if err := r.store.SaveMealIntake(ctx, intake); err != nil {
		return *intake, fmt.Errorf("save intake: %w", err)
	}
	return *intake, nil
}

// ItemsForDay lists the planned meals of one day.
func (r *Reconciler) ItemsForDay(ctx context.Context, userID string, date time.Time) ([]models.DailyMenuItem, error) {
	return r.store.FindDailyMenuItemsForDay(ctx, userID, datekey.StartOfDay(date))
}

type DaySummary struct {
	Date             time.Time `json:"date"`
	PlannedCalories  int       `json:"planned_calories"`
	ConsumedCalories int       `json:"consumed_calories"`
	PlannedMeals     int       `json:"planned_meals"`
	ConsumedMeals    int       `json:"consumed_meals"`
}

// DayTotals compares planned against consumed energy for one day.
func (r *Reconciler) DayTotals(ctx context.Context, userID string, date time.Time) (DaySummary, error) {
	day := datekey.StartOfDay(date)
	summary := DaySummary{Date: day}

	items, err := r.store.FindDailyMenuItemsForDay(ctx, userID, day)
	if err != nil {
		return summary, err
	}
	intakes, err := r.store.FindMealIntakes(ctx, userID, day)
	if err != nil {
		return summary, err
	}

	byID := make(map[string]models.DailyMenuItem, len(items))
	for _, item := range items {
		byID[item.ID] = item
		summary.PlannedMeals++
		summary.PlannedCalories += portionCalories(item.Calories, item.PortionSize)
	}
	for _, intake := range intakes {
		if !intake.IsConsumed {
			continue
		}
		item, ok := findIntakeItem(byID, items, intake)
		if !ok {
			continue
		}
		summary.ConsumedMeals++
		summary.ConsumedCalories += portionCalories(item.Calories, intake.PortionSize)
	}
	return summary, nil
}

func findIntakeItem(byID map[string]models.DailyMenuItem, items []models.DailyMenuItem, intake models.MealIntake) (models.DailyMenuItem, bool) {
	if intake.DailyMenuItemID != nil {
		if item, ok := byID[*intake.DailyMenuItemID]; ok {
			return item, true
		}
	}
	for _, item := range items {
		if item.MealID == intake.MealID && item.MealCategory == intake.Category {
			return item, true
		}
	}
	return models.DailyMenuItem{}, false
}

func portionCalories(calories int, portion float64) int {
	if portion <= 0 {
		portion = 1
	}
	return services.Round(float64(calories) * portion)
}
