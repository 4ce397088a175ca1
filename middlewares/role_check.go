package middlewares

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/utils"
)

// RequireAdmin lets admins through. Other members are bounced to their own
// meal page with a flash message.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CtxRole); !exists {
			unauthorized(c, errors.New("unauthorized"))
			return
		}

		if !IsAdmin(c) {
			if wantsJSON(c) {
				utils.RespondError(c, http.StatusForbidden, errors.New("admin access required"))
				c.Abort()
				return
			}
			AddFlash(c, FlashError, "Admin access required.")
			c.Redirect(http.StatusFound, "/my-meals")
			c.Abort()
			return
		}

		c.Next()
	}
}
