package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/hld/work-schedule-api/internal/constants"
	"github.com/hld/work-schedule-api/internal/database"
	apierrors "github.com/hld/work-schedule-api/internal/errors"
	"github.com/hld/work-schedule-api/internal/models"
)

// RequirePermission gates a route on one operation category (add, edit,
// delete). Administrators pass every gate. Runs after RequireAuth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}

		if !user.HasPermission(permission) {
			apierrors.Forbidden(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// RequireAdmin gates a route on the administrator flag.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := loadCurrentUser(c)
		if !ok {
			return
		}

		if !user.IsAdmin {
			apierrors.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

func loadCurrentUser(c *gin.Context) (*models.User, bool) {
	userID, exists := GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		c.Abort()
		return nil, false
	}

	var user models.User
	if err := database.GetDB().First(&user, userID).Error; err != nil {
		// Session refers to an account that no longer exists.
		apierrors.Unauthorized(c, "")
		c.Abort()
		return nil, false
	}

	c.Set(constants.ContextKeyUser, user)
	return &user, true
}

// GetCurrentUser retrieves the user loaded by a permission middleware.
func GetCurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
