package middleware

import (
	"net/http"

	"homeserve/models"
	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// RequireRoles rejects callers whose role is not listed. It must run after JWTAuthMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Authentication required", "")
			return
		}
		for _, role := range roles {
			if actor.Role == role {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Insufficient permissions", "role "+string(actor.Role)+" cannot access this resource")
	}
}
