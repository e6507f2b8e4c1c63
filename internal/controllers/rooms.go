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

var _ router.Controller = (*RoomController)(nil)

type RoomController struct {
	Rooms    *forum.RoomService
	Topics   *forum.TopicService
	Messages *forum.MessageService
	Views    Renderer
}

func (c *RoomController) handleHome(w http.ResponseWriter, r *http.Request, me *models.User) {
	result, err := c.Rooms.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, r, err, "failed to search rooms")
		return
	}

	c.Views.Render(w, http.StatusOK, views.PageHome, views.HomePage{
		Base:         base(me),
		SearchResult: result,
	})
}

func (c *RoomController) handleRoom(w http.ResponseWriter, r *http.Request, me *models.User) {
	roomID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	detail, err := c.Rooms.Detail(r.Context(), roomID)
	if err != nil {
		handleError(w, r, err, "failed to load room")
		return
	}

	c.Views.Render(w, http.StatusOK, views.PageRoom, views.RoomPage{
		Base:       base(me),
		RoomDetail: detail,
	})
}

func (c *RoomController) handlePostMessage(w http.ResponseWriter, r *http.Request, me models.User) {
	roomID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var verr *forum.ValidationError
	_, err := c.Messages.Post(r.Context(), me, roomID, r.PostFormValue("body"))
	if err != nil && !errors.As(err, &verr) {
		handleError(w, r, err, "failed to post message")
		return
	}

	redirect(w, r, roomPath(roomID))
}

func roomInput(r *http.Request) forum.RoomInput {
	return forum.RoomInput{
		Topic:       r.PostFormValue("topic"),
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}
}

func (c *RoomController) renderForm(w http.ResponseWriter, r *http.Request, page views.RoomFormPage) {
	topics, err := c.Topics.All(r.Context())
	if err != nil {
		handleError(w, r, err, "failed to list topics")
		return
	}

	page.Topics = topics
	c.Views.Render(w, http.StatusOK, views.PageRoomForm, page)
}

func (c *RoomController) handleCreateRoom(w http.ResponseWriter, r *http.Request, me models.User) {
	page := views.RoomFormPage{Base: base(&me)}

	if r.Method == http.MethodPost {
		input := roomInput(r)
		_, err := c.Rooms.Create(r.Context(), me, input)
		switch {
		case err == nil:
			redirect(w, r, "/")
			return
		case isFormError(err):
			page.Alert("A room needs a name and a topic")
			page.Form = input
		default:
			handleError(w, r, err, "failed to create room")
			return
		}
	}

	c.renderForm(w, r, page)
}

func (c *RoomController) handleUpdateRoom(w http.ResponseWriter, r *http.Request, me models.User) {
	roomID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	room, err := c.Rooms.Get(r.Context(), roomID)
	if err != nil {
		handleError(w, r, err, "failed to load room")
		return
	}

	if !room.IsHost(me.ID) {
		forbidden(w, "You can't update someone else's room")
		return
	}

	page := views.RoomFormPage{
		Base: base(&me),
		Room: &room,
		Form: forum.RoomInput{
			Name:        room.Name,
			Description: room.Description,
		},
	}
	if room.Topic != nil {
		page.Form.Topic = room.Topic.Name
	}

	if r.Method == http.MethodPost {
		input := roomInput(r)
		_, err = c.Rooms.Update(r.Context(), me, roomID, input)
		switch {
		case err == nil:
			redirect(w, r, "/")
			return
		case isFormError(err):
			page.Alert("A room needs a name and a topic")
			page.Form = input
		default:
			handleError(w, r, err, "failed to update room")
			return
		}
	}

	c.renderForm(w, r, page)
}

func (c *RoomController) handleDeleteRoom(w http.ResponseWriter, r *http.Request, me models.User) {
	roomID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	room, err := c.Rooms.Get(r.Context(), roomID)
	if err != nil {
		handleError(w, r, err, "failed to load room")
		return
	}

	if !room.IsHost(me.ID) {
		forbidden(w, "You can't delete someone else's room")
		return
	}

	if r.Method == http.MethodPost {
		if err = c.Rooms.Delete(r.Context(), me, roomID); err != nil {
			handleError(w, r, err, "failed to delete room")
			return
		}

		redirect(w, r, "/")
		return
	}

	c.Views.Render(w, http.StatusOK, views.PageDelete, views.DeletePage{
		Base:   base(&me),
		Object: room.Name,
	})
}

func (c *RoomController) Register(router *mux.Router) {
	router.HandleFunc("/", withIdentity(c.handleHome)).
		Methods(http.MethodGet)
	router.HandleFunc("/rooms/create", loginRequired(c.handleCreateRoom)).
		Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/rooms/{id:[0-9]+}", withIdentity(c.handleRoom)).
		Methods(http.MethodGet)
	router.HandleFunc("/rooms/{id:[0-9]+}", loginRequired(c.handlePostMessage)).
		Methods(http.MethodPost)
	router.HandleFunc("/rooms/{id:[0-9]+}/update", loginRequired(c.handleUpdateRoom)).
		Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc("/rooms/{id:[0-9]+}/delete", loginRequired(c.handleDeleteRoom)).
		Methods(http.MethodGet, http.MethodPost)
}
