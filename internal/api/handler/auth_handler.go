package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pulsefeed/pulsefeed/internal/service"
	"github.com/pulsefeed/pulsefeed/pkg/response"
)

type signupForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Email    string `form:"email" json:"email" binding:"omitempty,email"`
	Password string `form:"password" json:"password" binding:"required"`
}

type loginForm struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// LoginForm godoc
// @Summary Empty login form; echoes the post-login redirect target
// @Tags auth
// @Param next query string false "path to return to after login"
// @Success 200 {object} response.Response
// @Router /auth/login [get]
func (h *Handler) LoginForm(c *gin.Context) {
	response.Success(c, gin.H{"username": "", "next": c.Query("next")})
}

// Login godoc
// @Summary Log in; sets the auth cookie and redirects to next or /
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "username"
// @Param password formData string true "password"
// @Success 302
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		response.FormInvalid(c, fieldErrors(err), gin.H{"username": form.Username})
		return
	}
	_, token, err := h.auth.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.FormInvalid(c, map[string]string{"credentials": "invalid username or password"}, gin.H{"username": form.Username})
			return
		}
		response.InternalError(c, err)
		return
	}
	h.setAuthCookie(c, token)
	c.Redirect(http.StatusFound, h.nextPath(c))
}

// Signup godoc
// @Summary Create an account and log in
// @Tags auth
// @Accept x-www-form-urlencoded
// @Param username formData string true "username"
// @Param email formData string false "email"
// @Param password formData string true "password"
// @Success 302
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var form signupForm
	if err := c.ShouldBind(&form); err != nil {
		response.FormInvalid(c, fieldErrors(err), gin.H{"username": form.Username, "email": form.Email})
		return
	}
	_, token, err := h.auth.Register(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			response.FormInvalid(c, map[string]string{"username": "already taken"}, gin.H{"username": form.Username, "email": form.Email})
			return
		}
		if ve, ok := service.AsValidation(err); ok {
			response.FormInvalid(c, map[string]string{ve.Field: ve.Reason}, gin.H{"username": form.Username, "email": form.Email})
			return
		}
		response.InternalError(c, err)
		return
	}
	h.setAuthCookie(c, token)
	c.Redirect(http.StatusFound, h.nextPath(c))
}

// Logout godoc
// @Summary Clear the auth cookie
// @Tags auth
// @Success 302
// @Router /auth/logout [get]
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.Auth.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/")
}

func (h *Handler) setAuthCookie(c *gin.Context, token string) {
	maxAge := int(h.cfg.Auth.TokenTTL.Seconds())
	c.SetCookie(h.cfg.Auth.CookieName, token, maxAge, "/", "", false, true)
}

// nextPath honors the next parameter set by the login redirect, falling
// back to the global feed. Only same-site paths are accepted.
func (h *Handler) nextPath(c *gin.Context) string {
	next := c.Query("next")
	if next == "" {
		next = c.PostForm("next")
	}
	if len(next) < 2 || next[0] != '/' || next[1] == '/' {
		return "/"
	}
	return next
}
