package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/router"
	"github.com/studybud-project/backend/internal/session"
	"github.com/studybud-project/backend/internal/views"
)

var _ router.Controller = (*AuthController)(nil)

type AuthController struct {
	Users    *forum.UserService
	Sessions *session.Manager
	Views    Renderer
}

func (c *AuthController) handleLogin(w http.ResponseWriter, r *http.Request, me *models.User) {
	if me != nil {
		redirect(w, r, "/")
		return
	}

	page := views.AuthPage{
		Base: base(me),
		Page: "login",
		Next: r.FormValue("next"),
	}

	if r.Method == http.MethodPost {
		ctx := r.Context()
		email := strings.ToLower(r.PostFormValue("email"))
		password := r.PostFormValue("password")
		page.Email = email

		if _, err := c.Users.FindByEmail(ctx, email); errors.Is(err, forum.ErrNotFound) {
			page.Alert("User does not exist")
		} else if err != nil {
			handleError(w, r, err, "failed to look up user")
			return
		}

		user, err := c.Users.Authenticate(ctx, email, password)
		switch {
		case err == nil:
			c.Sessions.Login(w, user.ID)
			redirect(w, r, safeNext(page.Next))
			return
		case errors.Is(err, forum.ErrInvalidCredentials):
			page.Alert("Username or password does not exist")
		default:
			handleError(w, r, err, "failed to authenticate user")
			return
		}
	}

	c.Views.Render(w, http.StatusOK, views.PageLoginRegister, page)
}

func (c *AuthController) handleLogout(w http.ResponseWriter, r *http.Request) {
	c.Sessions.Logout(w)
	redirect(w, r, "/")
}

func (c *AuthController) handleRegister(w http.ResponseWriter, r *http.Request, me *models.User) {
	page := views.AuthPage{
		Base: base(me),
		Page: "register",
	}

	if r.Method == http.MethodPost {
		form := forum.Registration{
			Name:      r.PostFormValue("name"),
			Username:  r.PostFormValue("username"),
			Email:     r.PostFormValue("email"),
			Password1: r.PostFormValue("password1"),
			Password2: r.PostFormValue("password2"),
		}

		user, err := c.Users.Register(r.Context(), form)
		switch {
		case err == nil:
			c.Sessions.Login(w, user.ID)
			redirect(w, r, "/")
			return
		case isFormError(err):
			page.Alert("An error occurred during registration")
		default:
			handleError(w, r, err, "failed to register user")
			return
		}

		form.Password1, form.Password2 = "", ""
		page.Form = form
	}

	c.Views.Render(w, http.StatusOK, views.PageLoginRegister, page)
}

func (c *AuthController) Register(router *mux.Router) {
	router.HandleFunc("/login", withIdentity(c.handleLogin)).
		Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/logout", c.handleLogout).
		Methods(http.MethodGet)
	router.HandleFunc("/register", withIdentity(c.handleRegister)).
		Methods(http.MethodGet, http.MethodPost)
}
