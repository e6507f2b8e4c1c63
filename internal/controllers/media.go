package controllers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"

	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/media"
	"github.com/studybud-project/backend/internal/router"
)

var _ router.Controller = (*MediaController)(nil)

// MediaController serves uploaded images, falling back to the bundled default
// avatar. Files with any other extension are never served.
type MediaController struct {
	Store *media.Store
}

func (c *MediaController) handleMedia(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if name != filepath.Base(name) {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Content-Security-Policy", "default-src 'none'; sandbox")

	path := filepath.Join(c.Store.Root, name)
	if media.IsImage(name) {
		if _, err := os.Stat(path); err == nil {
			http.ServeFile(w, r, path)
			return
		}
	}

	if name == models.DefaultAvatar {
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(media.DefaultAvatarSVG)
		return
	}

	http.NotFound(w, r)
}

func (c *MediaController) Register(router *mux.Router) {
	router.HandleFunc("/media/{name}", c.handleMedia).
		Methods(http.MethodGet, http.MethodHead)
}
