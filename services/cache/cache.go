// Package cache is the gorm-backed local store. Every read of the application
// goes through it; the remote store only fills it.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"

	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
)

const bulkChunkSize = 3000

// GormStore works on any gorm dialect; the worker uses mysql, tests use sqlite.
// gorm v1 has no context support, so ctx is accepted for the interfaces only.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ---- meals ----

// FindMeals lists catalog meals, optionally restricted to one category.
func (s *GormStore) FindMeals(ctx context.Context, category string) ([]models.Meal, error) {
	var meals []models.Meal
	query := s.db.Order("name asc")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("find meals: %w", err)
	}
	return meals, nil
}

func (s *GormStore) FindMeal(ctx context.Context, id string) (*models.Meal, error) {
	var meal models.Meal
	if err := s.db.Where("id = ?", id).First(&meal).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find meal %s: %w", id, err)
	}
	return &meal, nil
}

// ReplaceMeals swaps the given catalog rows in one transaction.
func (s *GormStore) ReplaceMeals(ctx context.Context, meals []models.Meal) error {
	if len(meals) == 0 {
		return nil
	}
	ids := make([]string, 0, len(meals))
	records := make([]interface{}, 0, len(meals))
	for i := range meals {
		meal := meals[i]
		if err := meal.EncodeColumns(); err != nil {
			return fmt.Errorf("encode meal %s: %w", meal.ID, err)
		}
		ids = append(ids, meal.ID)
		records = append(records, meal)
	}

	tx := s.db.Begin()
	if err := tx.Where("id in (?)", ids).Delete(&models.Meal{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("clear meals: %w", err)
	}
	if err := gormbulk.BulkInsert(tx, records, bulkChunkSize); err != nil {
		tx.Rollback()
		return fmt.Errorf("bulk insert meals: %w", err)
	}
	return tx.Commit().Error
}

func (s *GormStore) DeleteMeal(ctx context.Context, id string) error {
	return s.db.Where("id = ?", id).Delete(&models.Meal{}).Error
}

// ---- favorites ----

func (s *GormStore) FindFavorites(ctx context.Context, userID string) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.Where("user_id = ?", userID).Order("created_at asc").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("find favorites: %w", err)
	}
	return favorites, nil
}

func (s *GormStore) FindFavorite(ctx context.Context, userID, mealID string) (*models.Favorite, error) {
	var favorite models.Favorite
	if err := s.db.Where("user_id = ? and meal_id = ?", userID, mealID).First(&favorite).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find favorite: %w", err)
	}
	return &favorite, nil
}

// ReplaceFavorites writes through the remote copy of a user's favorites.
func (s *GormStore) ReplaceFavorites(ctx context.Context, userID string, favorites []models.Favorite) error {
	records := make([]interface{}, 0, len(favorites))
	for _, favorite := range favorites {
		records = append(records, favorite)
	}

	tx := s.db.Begin()
	if err := tx.Where("user_id = ?", userID).Delete(&models.Favorite{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("clear favorites: %w", err)
	}
	if len(records) > 0 {
		if err := gormbulk.BulkInsert(tx, records, bulkChunkSize); err != nil {
			tx.Rollback()
			return fmt.Errorf("bulk insert favorites: %w", err)
		}
	}
	return tx.Commit().Error
}

func (s *GormStore) SaveFavorite(ctx context.Context, favorite *models.Favorite) error {
	return s.db.Save(favorite).Error
}

func (s *GormStore) DeleteFavorite(ctx context.Context, userID, mealID string) error {
	return s.db.Where("user_id = ? and meal_id = ?", userID, mealID).Delete(&models.Favorite{}).Error
}

func (s *GormStore) DeleteFavoritesByMeal(ctx context.Context, mealID string) (int64, error) {
	result := s.db.Where("meal_id = ?", mealID).Delete(&models.Favorite{})
	return result.RowsAffected, result.Error
}

// ---- overrides ----

func (s *GormStore) FindOverride(ctx context.Context, userID, mealID string) (*models.MealOverride, error) {
	var row models.MealOverride
	if err := s.db.Where("user_id = ? and meal_id = ?", userID, mealID).First(&row).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find override: %w", err)
	}
	return &row, nil
}

// SaveOverride replaces the whole row; absent fields are stored as NULL.
func (s *GormStore) SaveOverride(ctx context.Context, row *models.MealOverride) error {
	return s.db.Save(row).Error
}

func (s *GormStore) DeleteOverride(ctx context.Context, userID, mealID string) error {
	return s.db.Where("user_id = ? and meal_id = ?", userID, mealID).Delete(&models.MealOverride{}).Error
}

func (s *GormStore) DeleteOverridesByMeal(ctx context.Context, mealID string) (int64, error) {
	result := s.db.Where("meal_id = ?", mealID).Delete(&models.MealOverride{})
	return result.RowsAffected, result.Error
}

// ---- users ----

func (s *GormStore) FindUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %s: %w", id, err)
	}
	return &user, nil
}

func (s *GormStore) SaveUser(ctx context.Context, user *models.User) error {
	return s.db.Save(user).Error
}

// ---- daily menu ----

func (s *GormStore) InsertDailyMenuItem(ctx context.Context, item *models.DailyMenuItem) error {
	return s.db.Create(item).Error
}

func (s *GormStore) UpdateDailyMenuItem(ctx context.Context, item *models.DailyMenuItem) error {
	return s.db.Save(item).Error
}

func (s *GormStore) FindDailyMenuItems(ctx context.Context, userID string, date time.Time, category enums.MealCategory) ([]models.DailyMenuItem, error) {
	var items []models.DailyMenuItem
	err := s.db.Where("user_id = ? and date = ? and meal_category = ?", userID, date, category).
		Order("created_at asc").Find(&items).Error
	return items, err
}

func (s *GormStore) FindDailyMenuItemsForDay(ctx context.Context, userID string, date time.Time) ([]models.DailyMenuItem, error) {
	var items []models.DailyMenuItem
	err := s.db.Where("user_id = ? and date = ?", userID, date).
		Order("created_at asc").Find(&items).Error
	return items, err
}

func (s *GormStore) FindDailyMenuItemsByMeal(ctx context.Context, mealID string) ([]models.DailyMenuItem, error) {
	var items []models.DailyMenuItem
	err := s.db.Where("meal_id = ?", mealID).Find(&items).Error
	return items, err
}

func (s *GormStore) DeleteDailyMenuItem(ctx context.Context, id string) error {
	return s.db.Where("id = ?", id).Delete(&models.DailyMenuItem{}).Error
}

func (s *GormStore) DeleteDailyMenuItemsWhere(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory) (int64, error) {
	result := s.db.Where("user_id = ? and date = ? and meal_id = ? and meal_category = ?", userID, date, mealID, category).
		Delete(&models.DailyMenuItem{})
	return result.RowsAffected, result.Error
}

func (s *GormStore) DeleteDailyMenuItemsByMeal(ctx context.Context, mealID string) (int64, error) {
	result := s.db.Where("meal_id = ?", mealID).Delete(&models.DailyMenuItem{})
	return result.RowsAffected, result.Error
}

// ---- intake ----

func (s *GormStore) FindMealIntake(ctx context.Context, userID string, date time.Time, mealID string, category enums.MealCategory) (*models.MealIntake, error) {
	var intake models.MealIntake
	err := s.db.Where("user_id = ? and date = ? and meal_id = ? and category = ?", userID, date, mealID, category).First(&intake).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return &intake, nil
}

func (s *GormStore) FindMealIntakes(ctx context.Context, userID string, date time.Time) ([]models.MealIntake, error) {
	var intakes []models.MealIntake
	err := s.db.Where("user_id = ? and date = ?", userID, date).Order("created_at asc").Find(&intakes).Error
	return intakes, err
}

func (s *GormStore) SaveMealIntake(ctx context.Context, intake *models.MealIntake) error {
	return s.db.Save(intake).Error
}

// ---- activity log ----

func (s *GormStore) InsertActivityLog(ctx context.Context, entity *models.ActivityLog) error {
	return s.db.Create(entity).Error
}
