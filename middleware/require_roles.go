package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mihirannanayakkara/smart-agriguard-backend/models"
)

// RequireRoles allows only the given roles through. It assumes
// AuthMiddleware has already attached the principal; a request with a
// valid token but a role outside the set fails with 403.
func RequireRoles(allowedRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Could not determine user role"})
			c.Abort()
			return
		}

		role, ok := roleValue.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not process user role"})
			c.Abort()
			return
		}

		for _, allowed := range allowedRoles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"message": "You do not have permission to access this resource"})
		c.Abort()
	}
}

// RequireStaff gates routes to admin and agriculture-officer principals.
func RequireStaff() gin.HandlerFunc {
	return RequireRoles(models.RoleAdmin, models.RoleOfficer)
}
