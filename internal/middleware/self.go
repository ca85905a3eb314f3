package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/cohort-tools-api/pkg/errors"
	"github.com/noah-isme/cohort-tools-api/pkg/response"
)

// SelfOnly lets a request through only when the path parameter param names
// the authenticated user. It must run after JWT.
func SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if targetID := c.Param(param); targetID == "" || targetID != claims.UserID {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "cannot access another user's record"))
			c.Abort()
			return
		}

		c.Next()
	}
}
