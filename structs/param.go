package structs

import "nutriplan-go-worker/models"

// CatalogQueueParam is the body published on the meal-catalog queue.
type CatalogQueueParam struct {
	Event     string       `json:"event" form:"event"`
	MealID    string       `json:"meal_id" form:"meal_id"`
	Meal      *models.Meal `json:"meal,omitempty" form:"meal"`
	TaskID    uint         `json:"task_id" form:"task_id"`
	QueueType string       `json:"queue_type" form:"queue_type"`
}

type DailyMenuParam struct {
	Date        string  `json:"date" form:"date" binding:"required"`
	MealID      string  `json:"meal_id" form:"meal_id" binding:"required"`
	Category    string  `json:"category" form:"category" binding:"required"`
	PortionSize float64 `json:"portion_size" form:"portion_size"`
}

type HealthMetricsParam struct {
	Weight                float64 `json:"weight" form:"weight"`
	Height                float64 `json:"height" form:"height"`
	Age                   int     `json:"age" form:"age"`
	Gender                string  `json:"gender" form:"gender"`
	ActivityMinutesPerDay int     `json:"activity_minutes_per_day" form:"activity_minutes_per_day"`
	ActivityDaysPerWeek   int     `json:"activity_days_per_week" form:"activity_days_per_week"`
	Goal                  string  `json:"goal" form:"goal"`
}
