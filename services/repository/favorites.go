package repository

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/override"
	"nutriplan-go-worker/structs"
)

func (r *Repository) GetFavorites(ctx context.Context, userID string) structs.Result[[]models.Favorite] {
	if blank(userID) {
		return validationError[[]models.Favorite]("user id is required")
	}
	favorites, err := r.local.FindFavorites(ctx, userID)
	if err != nil {
		return structs.Failure[[]models.Favorite](err, "讀取本地收藏失敗")
	}
	if len(favorites) > 0 {
		return structs.Success(favorites)
	}

	var remoteFavorites []models.Favorite
	if err := r.remote.Query(ctx, enums.FavoritesCollection, "user_id", userID, &remoteFavorites); err != nil {
		r.logger.WithFields(logrus.Fields{"task": "favorites", "user_id": userID, "error_message": err.Error()}).Warn("remote unavailable, serving local favorites")
		return structs.Success(favorites)
	}
	if len(remoteFavorites) == 0 {
		return structs.Success(favorites)
	}
	if err := r.local.ReplaceFavorites(ctx, userID, remoteFavorites); err != nil {
		r.logger.WithFields(logrus.Fields{"task": "favorites", "user_id": userID, "error_message": err.Error()}).Warn("write-through failed")
		return structs.Success(remoteFavorites)
	}
	if favorites, err = r.local.FindFavorites(ctx, userID); err != nil {
		return structs.Failure[[]models.Favorite](err, "讀取本地收藏失敗")
	}
	return structs.Success(favorites)
}

// AddFavorite writes locally first; the remote copy is best effort.
func (r *Repository) AddFavorite(ctx context.Context, userID, mealID string) structs.Result[models.Favorite] {
	if blank(userID, mealID) {
		return validationError[models.Favorite]("user id and meal id are required")
	}
	if meal := r.GetMealByID(ctx, mealID); !meal.IsSuccess() {
		return structs.Failure[models.Favorite](meal.Cause, meal.Message)
	}

	favorite := models.Favorite{UserID: userID, MealID: mealID, CreatedAt: r.now()}
	if err := r.local.SaveFavorite(ctx, &favorite); err != nil {
		return structs.Failure[models.Favorite](err, "寫入收藏失敗")
	}
	if err := r.remote.Put(ctx, enums.FavoritesCollection, favorite.DocumentID(), favorite); err != nil {
		r.logger.WithFields(logrus.Fields{"task": "favorites", "user_id": userID, "meal_id": mealID, "error_message": err.Error()}).Warn("remote put failed")
	}
	return structs.Success(favorite)
}

// RemoveFavorite also drops the user's override of that meal.
func (r *Repository) RemoveFavorite(ctx context.Context, userID, mealID string) structs.Result[bool] {
	if blank(userID, mealID) {
		return validationError[bool]("user id and meal id are required")
	}
	if err := r.local.DeleteFavorite(ctx, userID, mealID); err != nil {
		return structs.Failure[bool](err, "刪除收藏失敗")
	}
	if err := r.local.DeleteOverride(ctx, userID, mealID); err != nil {
		return structs.Failure[bool](err, "刪除自訂內容失敗")
	}
	favorite := models.Favorite{UserID: userID, MealID: mealID}
	if err := r.remote.Delete(ctx, enums.FavoritesCollection, favorite.DocumentID()); err != nil {
		r.logger.WithFields(logrus.Fields{"task": "favorites", "user_id": userID, "meal_id": mealID, "error_message": err.Error()}).Warn("remote delete failed")
	}
	return structs.Success(true)
}

// SaveOverride stores the difference between the catalog meal and the user's
// edited copy. Nothing is stored when they are equal; a previous override is
// dropped in that case.
func (r *Repository) SaveOverride(ctx context.Context, userID string, modified models.Meal) structs.Result[*override.Override] {
	if blank(userID, modified.ID) {
		return validationError[*override.Override]("user id and meal id are required")
	}
	favorite, err := r.local.FindFavorite(ctx, userID, modified.ID)
	if err != nil {
		return structs.Failure[*override.Override](err, "讀取收藏失敗")
	}
	if favorite == nil {
		cause := fmt.Errorf("%w: %w", structs.ErrValidation, structs.ErrNotFavorite)
		return structs.Failure[*override.Override](cause, "only favorite meals can be customised")
	}

	original := r.GetMealByID(ctx, modified.ID)
	if !original.IsSuccess() {
		return structs.Failure[*override.Override](original.Cause, original.Message)
	}

	diff := override.Diff(original.Value, modified)
	if diff == nil {
		if err := r.local.DeleteOverride(ctx, userID, modified.ID); err != nil {
			return structs.Failure[*override.Override](err, "刪除自訂內容失敗")
		}
		return structs.Success[*override.Override](nil)
	}

	diff.UserID = userID
	diff.MealID = modified.ID
	diff.UpdatedAt = r.now()
	row := override.ToRow(*diff)
	if err := r.local.SaveOverride(ctx, &row); err != nil {
		return structs.Failure[*override.Override](err, "寫入自訂內容失敗")
	}
	return structs.Success(diff)
}

// GetEffectiveMeal is the meal as this user sees it. Overrides only show
// through while the meal is still a favorite.
func (r *Repository) GetEffectiveMeal(ctx context.Context, userID, mealID string) structs.Result[models.Meal] {
	if blank(userID, mealID) {
		return validationError[models.Meal]("user id and meal id are required")
	}
	original := r.GetMealByID(ctx, mealID)
	if !original.IsSuccess() {
		return original
	}

	favorite, err := r.local.FindFavorite(ctx, userID, mealID)
	if err != nil {
		return structs.Failure[models.Meal](err, "讀取收藏失敗")
	}
	if favorite == nil {
		return original
	}
	row, err := r.local.FindOverride(ctx, userID, mealID)
	if err != nil {
		return structs.Failure[models.Meal](err, "讀取自訂內容失敗")
	}
	return structs.Success(override.Apply(original.Value, override.FromRow(row)))
}
