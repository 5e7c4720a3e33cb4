package dailyMenu

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nutriplan-go-worker/controllers/response"
	"nutriplan-go-worker/enums"
	"nutriplan-go-worker/models"
	"nutriplan-go-worker/services/dailymenu"
	"nutriplan-go-worker/services/datekey"
	"nutriplan-go-worker/services/repository"
	"nutriplan-go-worker/structs"
)

type Controller struct {
	Repo *repository.Repository
}

type DayResponse struct {
	Items   []models.DailyMenuItem `json:"items"`
	Summary dailymenu.DaySummary   `json:"summary"`
}

// 沒帶 date 時使用今天
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return datekey.StartOfDay(time.Now()), nil
	}
	return datekey.ParseDay(value)
}

func (ctl *Controller) List(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	userID := c.Param("userId")

	items := ctl.Repo.GetDailyMenu(c.Request.Context(), userID, date)
	if !items.IsSuccess() {
		response.Error(c, items.Cause, items.Message)
		return
	}
	summary := ctl.Repo.GetDaySummary(c.Request.Context(), userID, date)
	if !summary.IsSuccess() {
		response.Error(c, summary.Cause, summary.Message)
		return
	}
	c.JSON(http.StatusOK, response.ApiResponse{Success: true, Data: DayResponse{Items: items.Value, Summary: summary.Value}})
}

func (ctl *Controller) Add(c *gin.Context) {
	var param structs.DailyMenuParam
	if err := c.ShouldBindJSON(&param); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	date, err := datekey.ParseDay(param.Date)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	if param.PortionSize == 0 {
		param.PortionSize = 1
	}
	result := ctl.Repo.AddToDailyMenu(c.Request.Context(), c.Param("userId"), date, param.MealID, enums.MealCategory(param.Category), param.PortionSize)
	response.Write(c, http.StatusCreated, result)
}

func (ctl *Controller) Delete(c *gin.Context) {
	var param structs.DailyMenuParam
	if err := c.ShouldBind(&param); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	date, err := datekey.ParseDay(param.Date)
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	result := ctl.Repo.DeleteFromDailyMenu(c.Request.Context(), c.Param("userId"), date, param.MealID, enums.MealCategory(param.Category))
	response.Write(c, http.StatusOK, result)
}

func (ctl *Controller) ToggleConsumed(c *gin.Context) {
	date, err := parseDate(c.Query("date"))
	if err != nil {
		response.BadRequest(c, "date must be YYYY-MM-DD")
		return
	}
	consumed := true
	if value := c.Query("consumed"); value != "" {
		if consumed, err = strconv.ParseBool(value); err != nil {
			response.BadRequest(c, "consumed must be true or false")
			return
		}
	}
	result := ctl.Repo.ToggleConsumed(c.Request.Context(), c.Param("userId"), date, c.Param("itemId"), consumed)
	response.Write(c, http.StatusOK, result)
}
