package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the shape of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, &Envelope{Success: true, Data: data})
}

func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, &Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, &Envelope{Success: true, Message: message, Data: data})
}

func Err(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, &Envelope{Success: false, Message: message})
}
