package models

import (
	"time"

	"nutriplan-go-worker/enums"
)

type MealIntake struct {
	ID              string             `gorm:"column:id;primary_key" json:"id"`
	UserID          string             `gorm:"column:user_id;index:idx_meal_intake_key" json:"user_id"`
	Date            time.Time          `gorm:"column:date;index:idx_meal_intake_key" json:"date"`
	MealID          string             `gorm:"column:meal_id" json:"meal_id"`
	Category        enums.MealCategory `gorm:"column:category" json:"category"`
	PortionSize     float64            `gorm:"column:portion_size" json:"portion_size"`
	IsConsumed      bool               `gorm:"column:is_consumed" json:"is_consumed"`
	DailyMenuItemID *string            `gorm:"column:daily_menu_item_id" json:"daily_menu_item_id"`
	CreatedAt       time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (m *MealIntake) TableName() string {
	return "meal_intakes"
}
