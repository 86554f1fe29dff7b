package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/foodtruck-app/models"
	"github.com/yeremiapane/foodtruck-app/utils"
	"gorm.io/gorm"
)

// ExtractToken pulls the session token from the Authorization header,
// the token query parameter, or the session_token cookie, in that
// order. Query and cookie exist for websocket clients that cannot set
// headers.
func ExtractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if token, err := c.Cookie("session_token"); err == nil {
		return token
	}
	return ""
}

// AuthMiddleware resolves the session token to a user. Expired
// sessions are deleted on sight so the sessions table does not grow
// unbounded.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ExtractToken(c)
		if token == "" {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}

		var session models.Session
		if err := db.Preload("User").Where("token = ?", token).First(&session).Error; err != nil {
			utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid or expired session"))
			c.Abort()
			return
		}

		if session.Expired(time.Now()) {
			db.Delete(&session)
			utils.RespondError(c, http.StatusUnauthorized, errors.New("session expired"))
			c.Abort()
			return
		}

		c.Set("user_id", session.UserID)
		c.Set("role", session.User.Role)
		c.Set("user", &session.User)

		c.Next()
	}
}
