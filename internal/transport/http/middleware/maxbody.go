package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "estatedesk/internal/transport/http/response"
)

// MaxBodyBytes bounds request body size (multipart uploads included).
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Fail("request body too large"))
		}
	}
}
