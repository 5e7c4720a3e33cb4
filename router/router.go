package router

import (
	"nutriplan-go-worker/controllers/check"
	"nutriplan-go-worker/controllers/dailyMenu"
	"nutriplan-go-worker/controllers/healthMetrics"
	"nutriplan-go-worker/controllers/meal"
	"nutriplan-go-worker/controllers/readProbe"
	"nutriplan-go-worker/services/repository"

	"github.com/gin-gonic/gin"
)

func Router(repo *repository.Repository) *gin.Engine {
	route := gin.Default()

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", check.CheckAlive)

	dailyMenuController := &dailyMenu.Controller{Repo: repo}
	mealController := &meal.Controller{Repo: repo}

	api := route.Group("/api/v1")
	{
		api.POST("/health-metrics", healthMetrics.Calculate)

		user := api.Group("/users/:userId")
		user.PUT("/profile", mealController.SaveProfile)
		user.GET("/meal-targets", mealController.MealTargets)

		user.GET("/daily-menu", dailyMenuController.List)
		user.POST("/daily-menu", dailyMenuController.Add)
		user.DELETE("/daily-menu", dailyMenuController.Delete)
		user.PUT("/daily-menu/:itemId/consumed", dailyMenuController.ToggleConsumed)

		user.GET("/favorites", mealController.Favorites)
		user.POST("/favorites/:mealId", mealController.AddFavorite)
		user.DELETE("/favorites/:mealId", mealController.RemoveFavorite)

		user.GET("/meals/:mealId", mealController.Show)
		user.PUT("/meals/:mealId/override", mealController.SaveOverride)
	}

	return route
}
