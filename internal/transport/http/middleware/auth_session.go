package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"estatedesk/internal/core/auth"
	"estatedesk/internal/identity"
	resp "estatedesk/internal/transport/http/response"
)

// AuthSession validates the bearer session token. When need is non-empty
// the caller's role must hold that capability; role checks are set
// membership, not string matching.
func AuthSession(j *auth.JWTer, need identity.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Fail("invalid token"))
			return
		}
		if need != "" && !identity.Role(claims.UserType).Can(need) {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Fail("forbidden"))
			return
		}
		c.Set("claims", claims)
		c.Set("userId", claims.UID)
		c.Set("userType", claims.UserType)
		c.Next()
	}
}
