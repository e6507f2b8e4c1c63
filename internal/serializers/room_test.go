package serializers

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studybud-project/backend/internal/database/models"
)

func testRoom() models.Room {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	return models.Room{
		ID:          3,
		HostID:      1,
		TopicID:     2,
		Name:        "Chess Club",
		Description: "Openings and endgames",
		Updated:     created.Add(time.Hour),
		Created:     created,
		Participants: []models.User{
			{ID: 5}, {ID: 1}, {ID: 5},
		},
	}
}

func TestRoomFromModel(t *testing.T) {
	r := RoomFromModel(testRoom())

	assert.Equal(t, int64(3), r.ID)
	assert.Equal(t, int64(1), r.Host)
	assert.Equal(t, int64(2), r.Topic)
	assert.Equal(t, "Chess Club", r.Name)
	assert.Equal(t, []int64{1, 5}, r.Participants)
}

func TestRoom_FieldsCoverEveryColumn(t *testing.T) {
	fields := RoomFromModel(testRoom()).Fields()

	for _, key := range []string{"id", "host", "topic", "name", "description", "updated", "created", "participants"} {
		assert.Contains(t, fields, key)
	}
	assert.Len(t, fields, 8)
}

func TestRoom_JSONMatchesFields(t *testing.T) {
	r := RoomFromModel(testRoom())

	encoded, err := json.Marshal(r)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))

	for key := range r.Fields() {
		assert.Contains(t, decoded, key)
	}
	assert.Equal(t, "Chess Club", decoded["name"])
}

func TestRoomFromModel_NoParticipants(t *testing.T) {
	room := testRoom()
	room.Participants = nil

	r := RoomFromModel(room)
	assert.NotNil(t, r.Participants)
	assert.Empty(t, r.Participants)
}
