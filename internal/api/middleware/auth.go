package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pulsefeed/pulsefeed/internal/model"
	"github.com/pulsefeed/pulsefeed/internal/service"
)

const userKey = "currentUser"

// Authenticate resolves the acting user from the auth cookie or an
// Authorization bearer token and stores it in the request context.
// Anonymous requests pass through untouched.
func Authenticate(auth service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if cookie, err := c.Cookie(cookieName); err == nil {
			token = cookie
		}
		if h := c.GetHeader("Authorization"); token == "" && strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
		if token == "" {
			c.Next()
			return
		}
		userID, err := auth.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}
		user, err := auth.UserByID(c.Request.Context(), userID)
		if err != nil {
			c.Next()
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// LoginRequired redirects anonymous requests to the login page, carrying
// the originally requested path in the next parameter.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			c.Redirect(http.StatusFound, "/auth/login/?next="+c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
