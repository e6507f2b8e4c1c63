package controllers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/router"
	"github.com/studybud-project/backend/internal/serializers"
)

var _ router.Controller = (*APIController)(nil)

// APIController exposes rooms as JSON.
type APIController struct {
	Rooms *forum.RoomService
}

var apiRoutes = []string{
	"GET /api",
	"GET /api/rooms",
	"GET /api/rooms/:id",
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("failed to write json response", zap.Error(err))
	}
}

func (c *APIController) handleRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, apiRoutes)
}

func (c *APIController) handleRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := c.Rooms.All(r.Context())
	if err != nil {
		zap.L().Error("failed to list rooms", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, serializers.RoomsFromModels(rooms))
}

func (c *APIController) handleRoom(w http.ResponseWriter, r *http.Request) {
	roomID, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	room, err := c.Rooms.WithParticipants(r.Context(), roomID)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, serializers.RoomFromModel(room))
	case errors.Is(err, forum.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
	default:
		zap.L().Error("failed to load room", zap.Int64("room_id", roomID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "internal error"})
	}
}

func (c *APIController) Register(router *mux.Router) {
	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("", c.handleRoutes).Methods(http.MethodGet)
	api.HandleFunc("/", c.handleRoutes).Methods(http.MethodGet)
	api.HandleFunc("/rooms", c.handleRooms).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id:[0-9]+}", c.handleRoom).Methods(http.MethodGet)
}
