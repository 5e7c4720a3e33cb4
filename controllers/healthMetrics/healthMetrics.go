package healthMetrics

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"nutriplan-go-worker/controllers/response"
	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/nutrition"
	"nutriplan-go-worker/structs"
)

type MetricsResponse struct {
	ActivityLevel       enums.ActivityLevel        `json:"activity_level"`
	BMI                 float64                    `json:"bmi"`
	BMICategory         enums.BMICategory          `json:"bmi_category"`
	BMR                 float64                    `json:"bmr"`
	TDEE                float64                    `json:"tdee"`
	DailyCaloriesTarget int                        `json:"daily_calories_target"`
	MealTargets         map[enums.MealCategory]int `json:"meal_targets"`
}

// Calculate 只做計算，不寫入任何資料
func Calculate(c *gin.Context) {
	var param structs.HealthMetricsParam
	if err := c.ShouldBindJSON(&param); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user := models.User{
		Weight:                param.Weight,
		Height:                param.Height,
		Age:                   param.Age,
		Gender:                enums.Gender(param.Gender),
		ActivityMinutesPerDay: param.ActivityMinutesPerDay,
		ActivityDaysPerWeek:   param.ActivityDaysPerWeek,
		Goal:                  enums.Goal(param.Goal),
	}
	nutrition.ApplyProfile(&user, time.Now())

	c.JSON(http.StatusOK, response.ApiResponse{Success: true, Data: MetricsResponse{
		ActivityLevel:       user.ActivityLevel,
		BMI:                 user.HealthMetrics.BMI,
		BMICategory:         nutrition.BMICategory(user.HealthMetrics.BMI),
		BMR:                 user.HealthMetrics.BMR,
		TDEE:                user.HealthMetrics.TDEE,
		DailyCaloriesTarget: nutrition.DailyCaloriesTarget(user.HealthMetrics.TDEE, user.Goal),
		MealTargets:         nutrition.MealTargets(user),
	}})
}
