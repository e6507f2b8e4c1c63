package serializers

import (
	"sort"
	"time"

	mapset "github.com/deckarep/golang-set"

	"github.com/studybud-project/backend/internal/database/models"
)

// Room is the API representation of a room: every column, with relations
// reduced to their ids.
type Room struct {
	ID           int64     `json:"id"`
	Host         int64     `json:"host"`
	Topic        int64     `json:"topic"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Updated      time.Time `json:"updated"`
	Created      time.Time `json:"created"`
	Participants []int64   `json:"participants"`
}

func RoomFromModel(room models.Room) (r Room) {
	r.FromModel(room)
	return
}

func RoomsFromModels(rooms []models.Room) []Room {
	out := make([]Room, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, RoomFromModel(room))
	}
	return out
}

func (r *Room) FromModel(room models.Room) {
	r.ID = room.ID
	r.Host = room.HostID
	r.Topic = room.TopicID
	r.Name = room.Name
	r.Description = room.Description
	r.Updated = room.Updated
	r.Created = room.Created
	r.Participants = participantIDs(room.Participants)
}

// Fields returns the room as a field name to value mapping.
func (r Room) Fields() map[string]interface{} {
	return map[string]interface{}{
		"id":           r.ID,
		"host":         r.Host,
		"topic":        r.Topic,
		"name":         r.Name,
		"description":  r.Description,
		"updated":      r.Updated,
		"created":      r.Created,
		"participants": r.Participants,
	}
}

func participantIDs(users []models.User) []int64 {
	seen := mapset.NewThreadUnsafeSet()
	ids := make([]int64, 0, len(users))
	for _, u := range users {
		if seen.Add(u.ID) {
			ids = append(ids, u.ID)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
