package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Every application response is HTTP 200; the body-level success flag carries
// the outcome. Errors travel in-band as an array of messages.

func OK(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func Fail(c *gin.Context, msgs ...string) {
	if len(msgs) == 0 {
		msgs = []string{"internal error"}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": false,
		"errors":  msgs,
	})
}
