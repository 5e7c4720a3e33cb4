package repository

import (
	"context"
	"fmt"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/nutrition"
	"nutriplan-go-worker/structs"
)

// SaveProfile validates the body metrics, infers the activity level and
// rebuilds the health metrics snapshot before storing the user.
func (r *Repository) SaveProfile(ctx context.Context, user models.User) structs.Result[models.User] {
	if blank(user.ID) {
		return validationError[models.User]("user id is required")
	}
	if user.Weight <= 0 || user.Height <= 0 || user.Age <= 0 {
		return validationError[models.User]("weight, height and age must be positive")
	}
	if user.Gender != enums.Male && user.Gender != enums.Female {
		return validationError[models.User]("unknown gender %q", user.Gender)
	}
	switch user.Goal {
	case enums.LoseWeight, enums.Maintain, enums.GainWeight:
	default:
		return validationError[models.User]("unknown goal %q", user.Goal)
	}
	if user.ActivityMinutesPerDay < 0 || user.ActivityDaysPerWeek < 0 || user.ActivityDaysPerWeek > 7 {
		return validationError[models.User]("activity must be 0-7 days of non-negative minutes")
	}

	existing, err := r.local.FindUser(ctx, user.ID)
	if err != nil {
		return structs.Failure[models.User](err, "讀取使用者失敗")
	}
	now := r.now()
	if existing != nil {
		user.CreatedAt = existing.CreatedAt
	} else {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	nutrition.ApplyProfile(&user, now)

	if err := r.local.SaveUser(ctx, &user); err != nil {
		return structs.Failure[models.User](err, "寫入使用者失敗")
	}
	return structs.Success(user)
}

func (r *Repository) GetProfile(ctx context.Context, userID string) structs.Result[models.User] {
	if blank(userID) {
		return validationError[models.User]("user id is required")
	}
	user, err := r.local.FindUser(ctx, userID)
	if err != nil {
		return structs.Failure[models.User](err, "讀取使用者失敗")
	}
	if user == nil {
		return structs.Failure[models.User](fmt.Errorf("user %s: %w", userID, structs.ErrNotFound), "user not found")
	}
	return structs.Success(*user)
}

// MealTargets splits the user's daily target over breakfast, lunch and dinner.
func (r *Repository) MealTargets(ctx context.Context, userID string) structs.Result[map[enums.MealCategory]int] {
	profile := r.GetProfile(ctx, userID)
	if !profile.IsSuccess() {
		return structs.Failure[map[enums.MealCategory]int](profile.Cause, profile.Message)
	}
	return structs.Success(nutrition.MealTargets(profile.Value))
}
