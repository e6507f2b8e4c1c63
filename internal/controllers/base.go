package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/cctx"
	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/views"
)

const loginPath = "/login"

// Renderer renders a named page with its data.
type Renderer interface {
	Render(w http.ResponseWriter, status int, page string, data interface{})
}

// identityHandler receives the caller, which is nil for anonymous requests.
type identityHandler func(w http.ResponseWriter, r *http.Request, me *models.User)

// authenticatedHandler only runs for signed in callers.
type authenticatedHandler func(w http.ResponseWriter, r *http.Request, me models.User)

func withIdentity(h identityHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h(w, r, cctx.User(r.Context()))
	}
}

// loginRequired sends anonymous callers to the login page, remembering where
// they were headed.
func loginRequired(h authenticatedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		me := cctx.User(r.Context())
		if me == nil {
			target := loginPath + "?next=" + url.QueryEscape(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusFound)
			return
		}

		h(w, r, *me)
	}
}

func base(me *models.User) views.Base {
	return views.Base{CurrentUser: me}
}

func pathID(r *http.Request) (id int64, ok bool) {
	var err error
	if id, err = strconv.ParseInt(mux.Vars(r)["id"], 10, 64); err != nil {
		return
	}
	return id, true
}

func redirect(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusFound)
}

func roomPath(roomID int64) string {
	return fmt.Sprintf("/rooms/%d", roomID)
}

func profilePath(userID int64) string {
	return fmt.Sprintf("/profile/%d", userID)
}

// safeNext only lets through local absolute paths.
func safeNext(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}

func forbidden(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusForbidden)
	fmt.Fprintln(w, msg)
}

// handleError writes the response for a service error that the handler has
// no specific recovery for.
func handleError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	switch {
	case errors.Is(err, forum.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, forum.ErrForbidden):
		forbidden(w, "Forbidden")
	default:
		zap.L().Error(msg, zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func isFormError(err error) bool {
	var verr *forum.ValidationError
	return errors.As(err, &verr) || errors.Is(err, forum.ErrConflict)
}
