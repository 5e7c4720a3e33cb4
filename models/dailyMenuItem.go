package models

import (
	"time"

	"nutriplan-go-worker/enums"
)

// DailyMenuItem is a planned meal. Name and calories are a snapshot of the catalog
// entry at add time, refreshed by catalog sync.
type DailyMenuItem struct {
	ID           string             `gorm:"column:id;primary_key" json:"id"`
	UserID       string             `gorm:"column:user_id;index:idx_daily_menu_key" json:"user_id"`
	Date         time.Time          `gorm:"column:date;index:idx_daily_menu_key" json:"date"`
	MealID       string             `gorm:"column:meal_id;index" json:"meal_id"`
	MealCategory enums.MealCategory `gorm:"column:meal_category;index:idx_daily_menu_key" json:"meal_category"`
	MealName     string             `gorm:"column:meal_name" json:"meal_name"`
	Calories     int                `gorm:"column:calories" json:"calories"`
	PortionSize  float64            `gorm:"column:portion_size" json:"portion_size"`
	CreatedAt    time.Time          `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time          `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (d *DailyMenuItem) TableName() string {
	return "daily_menu_items"
}
