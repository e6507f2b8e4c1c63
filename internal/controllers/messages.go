package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/router"
	"github.com/studybud-project/backend/internal/views"
)

var _ router.Controller = (*MessageController)(nil)

type MessageController struct {
	Messages *forum.MessageService
	Views    Renderer
}

func (c *MessageController) handleDeleteMessage(w http.ResponseWriter, r *http.Request, me models.User) {
	messageID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	msg, err := c.Messages.Get(r.Context(), messageID)
	if err != nil {
		handleError(w, r, err, "failed to load message")
		return
	}

	if !msg.IsAuthor(me.ID) {
		forbidden(w, "You can't delete someone else's message")
		return
	}

	if r.Method == http.MethodPost {
		if err = c.Messages.Delete(r.Context(), me, messageID); err != nil {
			handleError(w, r, err, "failed to delete message")
			return
		}

		redirect(w, r, "/")
		return
	}

	c.Views.Render(w, http.StatusOK, views.PageDelete, views.DeletePage{
		Base:   base(&me),
		Object: msg.Body,
	})
}

func (c *MessageController) Register(router *mux.Router) {
	router.HandleFunc("/messages/{id:[0-9]+}/delete", loginRequired(c.handleDeleteMessage)).
		Methods(http.MethodGet, http.MethodPost)
}
