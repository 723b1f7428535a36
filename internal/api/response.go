package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一返回体
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

func respondOK(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Message: message})
}

func respondCreated(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data, Message: message})
}

// respondFail data 固定为 null
func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, Response{Success: false, Data: nil, Message: message})
}
