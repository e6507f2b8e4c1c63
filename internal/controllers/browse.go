package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/router"
	"github.com/studybud-project/backend/internal/views"
)

var _ router.Controller = (*BrowseController)(nil)

// BrowseController serves the topic and activity listings.
type BrowseController struct {
	Topics   *forum.TopicService
	Messages *forum.MessageService
	Views    Renderer
}

func (c *BrowseController) handleTopics(w http.ResponseWriter, r *http.Request, me *models.User) {
	q := r.URL.Query().Get("q")
	topics, err := c.Topics.List(r.Context(), q)
	if err != nil {
		handleError(w, r, err, "failed to list topics")
		return
	}

	c.Views.Render(w, http.StatusOK, views.PageTopics, views.TopicsPage{
		Base:   base(me),
		Query:  q,
		Topics: topics,
	})
}

func (c *BrowseController) handleActivity(w http.ResponseWriter, r *http.Request, me *models.User) {
	messages, err := c.Messages.Activity(r.Context())
	if err != nil {
		handleError(w, r, err, "failed to list activity")
		return
	}

	c.Views.Render(w, http.StatusOK, views.PageActivity, views.ActivityPage{
		Base:     base(me),
		Messages: messages,
	})
}

func (c *BrowseController) Register(router *mux.Router) {
	router.HandleFunc("/topics", withIdentity(c.handleTopics)).
		Methods(http.MethodGet)
	router.HandleFunc("/activity", withIdentity(c.handleActivity)).
		Methods(http.MethodGet)
}
