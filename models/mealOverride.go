package models

import "time"

// MealOverride is the stored form of a user's customisation of a favorite meal.
// Ingredient and instruction lists use the legacy delimiter encoding.
type MealOverride struct {
	UserID             string    `gorm:"column:user_id;primary_key" json:"user_id"`
	MealID             string    `gorm:"column:meal_id;primary_key" json:"meal_id"`
	CustomName         *string   `gorm:"column:custom_name" json:"custom_name"`
	CustomCalories     *int      `gorm:"column:custom_calories" json:"custom_calories"`
	CustomIngredients  *string   `gorm:"column:custom_ingredients;type:text" json:"custom_ingredients"`
	CustomInstructions *string   `gorm:"column:custom_instructions;type:text" json:"custom_instructions"`
	CustomImage        *string   `gorm:"column:custom_image" json:"custom_image"`
	UpdatedAt          time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (m *MealOverride) TableName() string {
	return "meal_overrides"
}
