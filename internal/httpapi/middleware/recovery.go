package middleware

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/dozr/sleeptrack/internal/common"
)

// Recovery converts panics into the in-band failure envelope instead of a
// bare 500, keeping the wire contract uniform.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				rid, _ := c.Get(RequestIDKey)
				log.Printf("panic recovered request_id=%v err=%v", rid, r)
				common.Fail(c, "internal error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
