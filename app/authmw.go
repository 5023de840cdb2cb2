package app

import (
	"net/http"
	"strings"

	"school_booking_tool/db"
	"school_booking_tool/session"

	"github.com/gin-gonic/gin"
)

const AppSessionCookie = "app_session"

// IsAdminUser: administrator iff the hardcoded tech email or an explicit
// admin role.
func IsAdminUser(cfg Config, email, role string) bool {
	return strings.EqualFold(email, cfg.TechEmail) || role == "admin"
}

func AuthRequired(appSess *session.AppSessionStore, repo *db.Repo, cfg Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(AppSessionCookie)
		if err != nil || ck.Value == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		as, err := appSess.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "invalid session"})
			return
		}

		// Confirm the user still exists and resolve the role once.
		u, err := repo.FindUserByID(c.Request.Context(), as.UserID)
		if err != nil {
			_ = appSess.Delete(c.Request.Context(), ck.Value)
			c.AbortWithStatusJSON(http.StatusUnauthorized, H{"error": "unauthorized"})
			return
		}
		c.Set("userID", u.ID)
		c.Set("userName", u.Name)
		c.Set("userEmail", u.Email)
		c.Set("isAdmin", IsAdminUser(cfg, u.Email, u.Role))

		c.Next()
	}
}

func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if v, ok := c.Get("isAdmin"); !ok || v != true {
			c.AbortWithStatusJSON(http.StatusForbidden, H{"error": "forbidden"})
			return
		}
		c.Next()
	}
}
