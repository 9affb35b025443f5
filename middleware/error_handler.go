package middleware

import (
	"github.com/Nikk8744/F-T-T-sub000/response"
	"github.com/Nikk8744/F-T-T-sub000/services/logger"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders the last error attached with c.Error when the handler wrote nothing
func ErrorHandler(l logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		l.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
		if c.Writer.Written() {
			return
		}
		response.FromError(c, err)
	}
}
