package meal

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan-go-worker/controllers/response"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/repository"
)

type Controller struct {
	Repo *repository.Repository
}

// Show 回傳套用使用者自訂內容後的餐點
func (ctl *Controller) Show(c *gin.Context) {
	result := ctl.Repo.GetEffectiveMeal(c.Request.Context(), c.Param("userId"), c.Param("mealId"))
	response.Write(c, http.StatusOK, result)
}

func (ctl *Controller) SaveOverride(c *gin.Context) {
	var modified models.Meal
	if err := c.ShouldBindJSON(&modified); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	modified.ID = c.Param("mealId")
	result := ctl.Repo.SaveOverride(c.Request.Context(), c.Param("userId"), modified)
	response.Write(c, http.StatusOK, result)
}

func (ctl *Controller) Favorites(c *gin.Context) {
	result := ctl.Repo.GetFavorites(c.Request.Context(), c.Param("userId"))
	response.Write(c, http.StatusOK, result)
}

func (ctl *Controller) AddFavorite(c *gin.Context) {
	result := ctl.Repo.AddFavorite(c.Request.Context(), c.Param("userId"), c.Param("mealId"))
	response.Write(c, http.StatusCreated, result)
}

func (ctl *Controller) RemoveFavorite(c *gin.Context) {
	result := ctl.Repo.RemoveFavorite(c.Request.Context(), c.Param("userId"), c.Param("mealId"))
	response.Write(c, http.StatusOK, result)
}

func (ctl *Controller) SaveProfile(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user.ID = c.Param("userId")
	result := ctl.Repo.SaveProfile(c.Request.Context(), user)
	response.Write(c, http.StatusOK, result)
}

func (ctl *Controller) MealTargets(c *gin.Context) {
	result := ctl.Repo.MealTargets(c.Request.Context(), c.Param("userId"))
	response.Write(c, http.StatusOK, result)
}
