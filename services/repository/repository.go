// Package repository is the facade the application talks to. Reads are local
// first, writes to planned meals go through the daily-menu reconciler, and
// every operation answers with a structs.Result.
package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/catalog"
	"nutriplan-go-worker/services/dailymenu"
	"nutriplan-go-worker/services/remote"
	"nutriplan-go-worker/structs"
)

// LocalCache is everything the facade reads and writes locally.
type LocalCache interface {
	dailymenu.Store

	FindMeals(ctx context.Context, category string) ([]models.Meal, error)
	FindMeal(ctx context.Context, id string) (*models.Meal, error)
	ReplaceMeals(ctx context.Context, meals []models.Meal) error
	DeleteMeal(ctx context.Context, id string) error

	FindFavorites(ctx context.Context, userID string) ([]models.Favorite, error)
	FindFavorite(ctx context.Context, userID, mealID string) (*models.Favorite, error)
	ReplaceFavorites(ctx context.Context, userID string, favorites []models.Favorite) error
	SaveFavorite(ctx context.Context, favorite *models.Favorite) error
	DeleteFavorite(ctx context.Context, userID, mealID string) error

	FindOverride(ctx context.Context, userID, mealID string) (*models.MealOverride, error)
	SaveOverride(ctx context.Context, row *models.MealOverride) error
	DeleteOverride(ctx context.Context, userID, mealID string) error

	FindUser(ctx context.Context, id string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
}

// RecipeSource is the part of the recipe catalog client the facade uses.
type RecipeSource interface {
	ByCategory(ctx context.Context, category string) ([]catalog.Recipe, error)
	ByID(ctx context.Context, id string) (*catalog.Recipe, error)
}

type Repository struct {
	local   LocalCache
	remote  remote.Store
	recipes RecipeSource
	menu    *dailymenu.Reconciler
	logger  *logrus.Entry
	now     func() time.Time
}

func New(local LocalCache, remoteStore remote.Store, recipes RecipeSource, menu *dailymenu.Reconciler, logger *logrus.Entry) *Repository {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Repository{
		local:   local,
		remote:  remoteStore,
		recipes: recipes,
		menu:    menu,
		logger:  logger,
		now:     time.Now,
	}
}

func validationError[T any](format string, args ...interface{}) structs.Result[T] {
	message := fmt.Sprintf(format, args...)
	return structs.Failure[T](fmt.Errorf("%w: %s", structs.ErrValidation, message), message)
}

func blank(values ...string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			return true
		}
	}
	return false
}
