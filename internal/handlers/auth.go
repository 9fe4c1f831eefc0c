package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"forum-service/internal/auth"
	"forum-service/internal/middleware"
	"forum-service/internal/telemetry"
)

// AuthHandler manages registration, login and session endpoints.
type AuthHandler struct {
	service *auth.Service
	emitter *telemetry.AuditEmitter
}

// NewAuthHandler builds an AuthHandler.
func NewAuthHandler(service *auth.Service, emitter *telemetry.AuditEmitter) *AuthHandler {
	return &AuthHandler{service: service, emitter: emitter}
}

// RegisterForm serves the registration page payload.
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "register"})
}

// Register creates an account from the submitted form.
func (h *AuthHandler) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	passwordAgain := c.PostForm("passwordAgain")

	err := h.service.Register(c.Request.Context(), username, password, passwordAgain)
	switch {
	case errors.Is(err, auth.ErrDuplicateUser):
		c.JSON(http.StatusOK, gin.H{"message": "that username is already taken"})
	case errors.Is(err, auth.ErrPasswordMismatch):
		c.JSON(http.StatusOK, gin.H{"message": "password and confirmation do not match"})
	case err != nil:
		serverError(c, err)
	default:
		h.emitter.Emit(c.Request.Context(), "register", "user", username, requestIDFromContext(c), nil)
		c.Redirect(http.StatusSeeOther, "/list")
	}
}

// LoginForm serves the login page payload.
func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"page": "login"})
}

// Login authenticates the form credentials and establishes the session
// cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" {
		c.JSON(http.StatusOK, gin.H{"message": "enter your username"})
		return
	}
	if password == "" {
		c.JSON(http.StatusOK, gin.H{"message": "enter your password"})
		return
	}

	identity, err := h.service.Authenticate(c.Request.Context(), username, password)
	switch {
	case errors.Is(err, auth.ErrUnknownUser), errors.Is(err, auth.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	case err != nil:
		serverError(c, err)
		return
	}

	token, err := h.service.StartSession(c.Request.Context(), identity)
	if err != nil {
		serverError(c, err)
		return
	}

	middleware.SetSessionCookie(c, token)
	userID := identity.ID.Hex()
	h.emitter.Emit(c.Request.Context(), "login", "user", username, requestIDFromContext(c), &userID)
	c.Redirect(http.StatusSeeOther, "/list")
}

// Logout drops the server-side session and clears the cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.SessionCookie); err == nil && token != "" {
		if err := h.service.EndSession(c.Request.Context(), token); err != nil {
			serverError(c, err)
			return
		}
	}
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/login")
}

// MyPage returns the current session user.
func (h *AuthHandler) MyPage(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{"userinfo": user})
}
