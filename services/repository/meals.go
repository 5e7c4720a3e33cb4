package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/catalog"
	"nutriplan-go-worker/services/ingredient"
	"nutriplan-go-worker/structs"
)

// GetAllMeals reads the local catalog and pulls from the remote store only
// when nothing is cached. A remote failure still answers with what is local.
func (r *Repository) GetAllMeals(ctx context.Context) structs.Result[[]models.Meal] {
	meals, err := r.local.FindMeals(ctx, "")
	if err != nil {
		return structs.Failure[[]models.Meal](err, "讀取本地餐點失敗")
	}
	if len(meals) > 0 {
		return structs.Success(meals)
	}

	var remoteMeals []models.Meal
	if err := r.remote.GetAll(ctx, enums.MealsCollection, &remoteMeals); err != nil {
		r.logger.WithFields(logrus.Fields{"task": "meals", "error_message": err.Error()}).Warn("remote unavailable, serving local meals")
		return structs.Success(meals)
	}
	if len(remoteMeals) == 0 {
		return structs.Success(meals)
	}
	if err := r.local.ReplaceMeals(ctx, remoteMeals); err != nil {
		r.logger.WithFields(logrus.Fields{"task": "meals", "error_message": err.Error()}).Warn("write-through failed")
		return structs.Success(remoteMeals)
	}

	if meals, err = r.local.FindMeals(ctx, ""); err != nil {
		return structs.Failure[[]models.Meal](err, "讀取本地餐點失敗")
	}
	return structs.Success(meals)
}

// GetMealByID is the catalog view of one meal, without any user override.
func (r *Repository) GetMealByID(ctx context.Context, id string) structs.Result[models.Meal] {
	if blank(id) {
		return validationError[models.Meal]("meal id is required")
	}
	meal, err := r.local.FindMeal(ctx, id)
	if err != nil {
		return structs.Failure[models.Meal](err, "讀取本地餐點失敗")
	}
	if meal != nil {
		return structs.Success(*meal)
	}

	var remoteMeal models.Meal
	found, err := r.remote.Get(ctx, enums.MealsCollection, id, &remoteMeal)
	if err != nil {
		r.logger.WithFields(logrus.Fields{"task": "meals", "meal_id": id, "error_message": err.Error()}).Warn("remote unavailable")
		return structs.Failure[models.Meal](fmt.Errorf("meal %s: %w", id, structs.ErrNotFound), "meal not available offline")
	}
	if !found {
		return structs.Failure[models.Meal](fmt.Errorf("meal %s: %w", id, structs.ErrNotFound), "meal not found")
	}
	if err := r.local.ReplaceMeals(ctx, []models.Meal{remoteMeal}); err != nil {
		r.logger.WithFields(logrus.Fields{"task": "meals", "meal_id": id, "error_message": err.Error()}).Warn("write-through failed")
		return structs.Success(remoteMeal)
	}
	if meal, err = r.local.FindMeal(ctx, id); err != nil || meal == nil {
		return structs.Success(remoteMeal)
	}
	return structs.Success(*meal)
}

// RefreshCatalog pulls one category from the recipe catalog into both stores.
// Recipes that fail to load are skipped and counted.
func (r *Repository) RefreshCatalog(ctx context.Context, category string) structs.Result[structs.StatisticModel] {
	if blank(category) {
		return validationError[structs.StatisticModel]("category is required")
	}
	summaries, err := r.recipes.ByCategory(ctx, category)
	if err != nil {
		return structs.Failure[structs.StatisticModel](err, "無法取得食譜分類")
	}

	statistic := structs.StatisticModel{TotalRows: len(summaries)}
	meals := make([]models.Meal, 0, len(summaries))
	for _, summary := range summaries {
		recipe, err := r.recipes.ByID(ctx, summary.ID)
		if err != nil || recipe == nil {
			statistic.FailRows++
			continue
		}
		if recipe.Category == "" {
			recipe.Category = category
		}
		meal := catalog.ToMeal(*recipe)
		meal.CreatedAt = r.now()
		meal.UpdatedAt = meal.CreatedAt
		if err := r.remote.Put(ctx, enums.MealsCollection, meal.ID, meal); err != nil {
			r.logger.WithFields(logrus.Fields{"task": "catalog-refresh", "meal_id": meal.ID, "error_message": err.Error()}).Warn("remote put failed")
		}
		meals = append(meals, meal)
	}
	if err := r.local.ReplaceMeals(ctx, meals); err != nil {
		return structs.Failure[structs.StatisticModel](err, "寫入本地餐點失敗")
	}
	statistic.OKRows = len(meals)
	return structs.Success(statistic)
}

// ApplyCatalogChange handles one catalog event: the meal row is replaced or
// removed, then planned items, favorites and overrides follow.
func (r *Repository) ApplyCatalogChange(ctx context.Context, event structs.CatalogQueueParam) structs.Result[structs.StatisticModel] {
	mealID := event.MealID
	if mealID == "" && event.Meal != nil {
		mealID = event.Meal.ID
	}
	if blank(mealID) {
		return validationError[structs.StatisticModel]("meal id is required")
	}

	switch event.Event {
	case enums.CatalogUpdated:
		meal, err := r.resolveChangedMeal(ctx, mealID, event.Meal)
		if err != nil {
			return structs.Failure[structs.StatisticModel](err, "無法取得更新後的餐點")
		}
		if err := r.local.ReplaceMeals(ctx, []models.Meal{meal}); err != nil {
			return structs.Failure[structs.StatisticModel](err, "寫入本地餐點失敗")
		}
		if err := r.remote.Put(ctx, enums.MealsCollection, meal.ID, meal); err != nil {
			r.logger.WithFields(logrus.Fields{"task": "catalog-sync", "meal_id": meal.ID, "error_message": err.Error()}).Warn("remote put failed")
		}
		statistic, err := r.menu.SyncMealUpdated(ctx, meal)
		if err != nil {
			return structs.Result[structs.StatisticModel]{Status: structs.StatusError, Value: statistic, Cause: err, Message: err.Error()}
		}
		return structs.Success(statistic)

	case enums.CatalogDeleted:
		if err := r.local.DeleteMeal(ctx, mealID); err != nil {
			return structs.Failure[structs.StatisticModel](err, "刪除本地餐點失敗")
		}
		if err := r.remote.Delete(ctx, enums.MealsCollection, mealID); err != nil {
			r.logger.WithFields(logrus.Fields{"task": "catalog-sync", "meal_id": mealID, "error_message": err.Error()}).Warn("remote delete failed")
		}
		r.deleteRemoteFavorites(ctx, mealID)
		statistic, err := r.menu.SyncMealDeleted(ctx, mealID)
		if err != nil {
			return structs.Result[structs.StatisticModel]{Status: structs.StatusError, Value: statistic, Cause: err, Message: err.Error()}
		}
		return structs.Success(statistic)
	}
	return validationError[structs.StatisticModel]("unknown catalog event %q", event.Event)
}

func (r *Repository) resolveChangedMeal(ctx context.Context, mealID string, meal *models.Meal) (models.Meal, error) {
	if meal != nil {
		changed := *meal
		changed.ID = mealID
		// 熱量一律由食材推算，不採用事件帶來的數值
		changed.Calories = ingredient.MealCalories(changed.Ingredients)
		changed.UpdatedAt = r.now()
		return changed, nil
	}
	recipe, err := r.recipes.ByID(ctx, mealID)
	if err != nil {
		return models.Meal{}, err
	}
	if recipe == nil {
		return models.Meal{}, fmt.Errorf("recipe %s: %w", mealID, structs.ErrNotFound)
	}
	changed := catalog.ToMeal(*recipe)
	changed.UpdatedAt = r.now()
	return changed, nil
}

// deleteRemoteFavorites removes every remote favorite of the meal so the local
// write-through in GetFavorites cannot bring it back.
func (r *Repository) deleteRemoteFavorites(ctx context.Context, mealID string) {
	logwr := r.logger.WithFields(logrus.Fields{"task": "catalog-sync", "meal_id": mealID})

	var favorites []models.Favorite
	if err := r.remote.Query(ctx, enums.FavoritesCollection, "meal_id", mealID, &favorites); err != nil {
		logwr.WithField("error_message", err.Error()).Warn("remote favorites query failed")
		return
	}
	for _, favorite := range favorites {
		if err := r.remote.Delete(ctx, enums.FavoritesCollection, favorite.DocumentID()); err != nil {
			logwr.WithFields(logrus.Fields{"user_id": favorite.UserID, "error_message": err.Error()}).Warn("remote favorite delete failed")
		}
	}
}
