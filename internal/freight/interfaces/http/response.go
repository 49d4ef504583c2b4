package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func success(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, envelope{Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string, err error) {
	e := ""
	if err != nil {
		e = err.Error()
	}
	c.JSON(status, envelope{Message: message, Error: e})
}
