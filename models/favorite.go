package models

import "time"

type Favorite struct {
	UserID    string    `gorm:"column:user_id;primary_key" json:"user_id"`
	MealID    string    `gorm:"column:meal_id;primary_key" json:"meal_id"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (f *Favorite) TableName() string {
	return "favorites"
}

// DocumentID is the remote document key of a favorite.
func (f *Favorite) DocumentID() string {
	return f.UserID + "_" + f.MealID
}
