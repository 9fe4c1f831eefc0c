package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"forum-service/internal/auth"
	"forum-service/internal/models"
	"forum-service/internal/repositories"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "forum_session"

const userContextKey = "user"

// SetSessionCookie issues the session cookie with a lifetime matching the
// server-side expiry window.
func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(repositories.SessionTTL.Seconds()), "/", "", false, true)
}

// SessionMiddleware resolves the session cookie and stores the full user in
// the request context. Requests without a valid session proceed anonymously.
// The cookie is re-issued on every hit so its lifetime slides together with
// the server-side expiry.
func SessionMiddleware(service *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(SessionCookie); err == nil && token != "" {
			if user, err := service.LoadSessionUser(c.Request.Context(), token); err == nil {
				c.Set(userContextKey, user)
				SetSessionCookie(c, token)
			}
		}
		c.Next()
	}
}

// RequireAuth redirects unauthenticated requests to the login page and stops
// the chain; protected handlers never run without a user in context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(userContextKey); !ok {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the session user placed in the context by
// SessionMiddleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, ok := c.Get(userContextKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}

// SetCurrentUser seeds the context user directly; test helper.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(userContextKey, user)
}
