package middleware

import (
	"net/http"

	"unisched/services/access"
	"unisched/utils"

	"github.com/gin-gonic/gin"
)

// RequireOperation rejects callers whose role may never perform op, before
// any body is bound. Ownership rules stay in the services.
func RequireOperation(op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := CurrentIdentity(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized", "")
			return
		}
		if !access.Allowed(id.Role, op) {
			utils.JSONError(c, http.StatusForbidden, "Access denied", string(op))
			return
		}
		c.Next()
	}
}
