package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/router"
	"github.com/studybud-project/backend/internal/views"
)

var _ router.Controller = (*ProfileController)(nil)

const maxUploadSize = 8 << 20

type ProfileController struct {
	Users *forum.UserService
	Views Renderer
}

func (c *ProfileController) handleProfile(w http.ResponseWriter, r *http.Request, me *models.User) {
	userID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	profile, err := c.Users.Profile(r.Context(), userID)
	if err != nil {
		handleError(w, r, err, "failed to load profile")
		return
	}

	c.Views.Render(w, http.StatusOK, views.PageProfile, views.ProfilePage{
		Base:    base(me),
		Profile: profile,
	})
}

func (c *ProfileController) handleUpdateUser(w http.ResponseWriter, r *http.Request, me models.User) {
	page := views.UpdateUserPage{
		Base: base(&me),
		Form: forum.ProfileUpdate{
			Name:     me.Name,
			Username: me.Username,
			Email:    me.Email,
			Bio:      me.Bio,
		},
	}

	if r.Method == http.MethodPost {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		form := forum.ProfileUpdate{
			Name:     r.PostFormValue("name"),
			Username: r.PostFormValue("username"),
			Email:    r.PostFormValue("email"),
			Bio:      r.PostFormValue("bio"),
		}

		file, header, err := r.FormFile("avatar")
		switch {
		case err == nil:
			defer file.Close()
			form.Avatar = &forum.Upload{Filename: header.Filename, Content: file}
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		default:
			http.Error(w, "invalid avatar upload", http.StatusBadRequest)
			return
		}

		_, err = c.Users.UpdateProfile(r.Context(), me, form)
		switch {
		case err == nil:
			redirect(w, r, profilePath(me.ID))
			return
		case isFormError(err):
			page.Alert("An error occurred while updating your profile")
			form.Avatar = nil
			page.Form = form
		default:
			handleError(w, r, err, "failed to update profile")
			return
		}
	}

	c.Views.Render(w, http.StatusOK, views.PageUpdateUser, page)
}

func (c *ProfileController) Register(router *mux.Router) {
	router.HandleFunc("/profile/update", loginRequired(c.handleUpdateUser)).
		Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/profile/{id:[0-9]+}", withIdentity(c.handleProfile)).
		Methods(http.MethodGet)
}
