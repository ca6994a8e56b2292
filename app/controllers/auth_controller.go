package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/ctx"
	"github.com/shashiranjanraj/storefront/pkg/middleware"
)

type LoginInput struct {
	Email    string `form:"email"    json:"email"    validate:"required,email,max=100"`
	Password string `form:"password" json:"password" validate:"required"`
}

type SignUpInput struct {
	Name     string `form:"name"     json:"name"     validate:"required,max=30"`
	Email    string `form:"email"    json:"email"    validate:"required,email,max=100"`
	Password string `form:"password" json:"password" validate:"required"`
}

const (
	msgBadCredentials = "Email or password incorrect. Try again."
	msgRegistered     = "You've already signed up with that email. Log in instead!"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// ShowLogin renders the login form, or sends a logged-in user to /user.
func (a *AuthController) ShowLogin(c *ctx.Context) {
	if c.Identity() != nil {
		c.Redirect(http.StatusFound, "/user")
		return
	}
	data := view{"form": "login"}
	if msg, ok := c.Session().GetFlash("error"); ok {
		data["error"] = msg
	}
	c.Success(page(c, data))
}

func (a *AuthController) Login(c *ctx.Context) {
	var in LoginInput
	if !c.Bind(&in) {
		return
	}

	id, err := a.service.LogIn(c.Context(), in.Email, in.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		if wantsJSON(c) {
			c.Error(http.StatusUnauthorized, msgBadCredentials)
			return
		}
		c.Session().Flash("error", msgBadCredentials)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	a.startSession(c, id, "/user")
}

// ShowSignUp renders the sign-up form, or sends a logged-in user to /user.
func (a *AuthController) ShowSignUp(c *ctx.Context) {
	if c.Identity() != nil {
		c.Redirect(http.StatusFound, "/user")
		return
	}
	data := view{"form": "signup"}
	if msg, ok := c.Session().GetFlash("error"); ok {
		data["error"] = msg
	}
	c.Success(page(c, data))
}

// SignUp registers the user and logs them in.
func (a *AuthController) SignUp(c *ctx.Context) {
	var in SignUpInput
	if !c.Bind(&in) {
		return
	}

	id, err := a.service.SignUp(c.Context(), in.Name, in.Email, in.Password)
	if errors.Is(err, services.ErrAlreadyRegistered) {
		if wantsJSON(c) {
			c.Error(http.StatusConflict, msgRegistered)
			return
		}
		c.Session().Flash("error", msgRegistered)
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}
	if err != nil {
		fail(c, err)
		return
	}

	a.startSession(c, id, "/")
}

// startSession logs id in on a fresh session id. Browsers are redirected to
// next; JSON clients get a bearer token instead.
func (a *AuthController) startSession(c *ctx.Context, id *auth.Identity, next string) {
	sess := c.Session()
	sess.Regenerate()
	sess.Set(middleware.SessionUserKey, id.UserID)

	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, next)
		return
	}

	token, err := a.service.IssueToken(id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(view{"user": id, "token": token})
}

func (a *AuthController) Logout(c *ctx.Context) {
	a.service.LogOut(c.Session())
	c.Redirect(http.StatusFound, "/")
}
