package models

import (
	"time"

	"nutriplan-go-worker/enums"
)

// HealthMetrics is rebuilt from scratch whenever a body metric changes.
type HealthMetrics struct {
	BMI         float64    `gorm:"column:bmi" json:"bmi"`
	BMR         float64    `gorm:"column:bmr" json:"bmr"`
	TDEE        float64    `gorm:"column:tdee" json:"tdee"`
	LastUpdated *time.Time `gorm:"column:last_updated" json:"last_updated"`
}

type User struct {
	ID                    string              `gorm:"column:id;primary_key" json:"id"`
	Name                  string              `gorm:"column:name" json:"name"`
	Weight                float64             `gorm:"column:weight" json:"weight"`
	Height                float64             `gorm:"column:height" json:"height"`
	Age                   int                 `gorm:"column:age" json:"age"`
	Gender                enums.Gender        `gorm:"column:gender" json:"gender"`
	ActivityMinutesPerDay int                 `gorm:"column:activity_minutes_per_day" json:"activity_minutes_per_day"`
	ActivityDaysPerWeek   int                 `gorm:"column:activity_days_per_week" json:"activity_days_per_week"`
	ActivityLevel         enums.ActivityLevel `gorm:"column:activity_level" json:"activity_level"`
	Goal                  enums.Goal          `gorm:"column:goal" json:"goal"`
	HealthMetrics         HealthMetrics       `gorm:"embedded;embedded_prefix:metrics_" json:"health_metrics"`
	CreatedAt             time.Time           `gorm:"column:created_at" json:"created_at"`
	UpdatedAt             time.Time           `gorm:"column:updated_at" json:"updated_at"`
}

// TableName sets the insert table name for this struct type
func (u *User) TableName() string {
	return "users"
}
