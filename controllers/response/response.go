package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nutriplan-go-worker/structs"
)

type ApiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Write 將 Result 轉成 HTTP 回應
func Write[T any](c *gin.Context, status int, result structs.Result[T]) {
	if result.IsSuccess() {
		c.JSON(status, ApiResponse{Success: true, Data: result.Value})
		return
	}
	Error(c, result.Cause, result.Message)
}

func Error(c *gin.Context, cause error, message string) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(cause, structs.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(cause, structs.ErrNotFound):
		status = http.StatusNotFound
	}
	c.JSON(status, ApiResponse{Success: false, Message: message})
}

func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Message: message})
}
