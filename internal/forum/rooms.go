package forum

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/studybud-project/backend/internal/database"
	"github.com/studybud-project/backend/internal/database/models"
)

func NewRoomService(db *bun.DB) *RoomService {
	return &RoomService{
		baseService: baseService{
			DB: db,
		},
	}
}

type RoomService struct {
	baseService
}

// RoomInput carries the editable fields of a room.
type RoomInput struct {
	Topic       string `validate:"required,max=200"`
	Name        string `validate:"required,max=200"`
	Description string
}

// SearchResult is everything the room list page shows for a query.
type SearchResult struct {
	Query     string
	Rooms     []models.Room
	RoomCount int
	Topics    []models.Topic
	Messages  []models.Message
}

// RoomDetail is a room together with its conversation.
type RoomDetail struct {
	Room         models.Room
	Messages     []models.Message
	Participants []models.User
}

// Search finds the rooms whose topic name, name or description contains
// query (case-sensitive), and independently the messages posted in rooms
// whose topic name contains query (case-insensitive).
func (s *RoomService) Search(ctx context.Context, query string) (result SearchResult, err error) {
	result.Query = query
	result.Rooms = make([]models.Room, 0)
	result.Messages = make([]models.Message, 0)

	err = s.DB.NewSelect().
		Model(&result.Rooms).
		Relation("Host").
		Relation("Topic").
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			q = database.Contains(q, "topic.name", query, false)
			q = database.OrContains(q, "room.name", query, false)
			return database.OrContains(q, "room.description", query, false)
		}).
		Order("room.updated DESC", "room.created DESC").
		Scan(ctx)
	if err != nil {
		err = fmt.Errorf("failed to search rooms: %w", err)
		return
	}
	result.RoomCount = len(result.Rooms)

	if result.Topics, err = NewTopicService(s.DB).Recent(ctx, RecentTopicsLimit); err != nil {
		err = fmt.Errorf("failed to list topics: %w", err)
		return
	}

	q := s.DB.NewSelect().
		Model(&result.Messages).
		Relation("User").
		Relation("Room").
		Relation("Room.Topic")
	err = database.Contains(q, "room__topic.name", query, true).
		Order("message.updated DESC", "message.created DESC").
		Scan(ctx)
	if err != nil {
		err = fmt.Errorf("failed to list messages: %w", err)
	}

	return
}

func (s *RoomService) Get(ctx context.Context, roomID int64) (room models.Room, err error) {
	return findRoom(ctx, s.DB, roomID)
}

// Detail loads a room, its messages newest first and its participants.
func (s *RoomService) Detail(ctx context.Context, roomID int64) (detail RoomDetail, err error) {
	err = s.DB.NewSelect().
		Model(&detail.Room).
		Relation("Host").
		Relation("Topic").
		Relation("Participants").
		Where("room.id = ?", roomID).
		Scan(ctx)
	if err = notFound(err, "room"); err != nil {
		return
	}

	detail.Participants = detail.Room.Participants
	if detail.Participants == nil {
		detail.Participants = make([]models.User, 0)
	}

	detail.Messages = make([]models.Message, 0)
	err = s.DB.NewSelect().
		Model(&detail.Messages).
		Relation("User").
		Where("message.room_id = ?", roomID).
		Order("message.created DESC", "message.id DESC").
		Scan(ctx)
	return
}

// All returns every room with its participants, in default room order.
func (s *RoomService) All(ctx context.Context) (rooms []models.Room, err error) {
	rooms = make([]models.Room, 0)
	err = s.DB.NewSelect().
		Model(&rooms).
		Relation("Participants").
		Order("room.updated DESC", "room.created DESC").
		Scan(ctx)
	return
}

// WithParticipants loads one room with its participants.
func (s *RoomService) WithParticipants(ctx context.Context, roomID int64) (room models.Room, err error) {
	err = s.DB.NewSelect().
		Model(&room).
		Relation("Participants").
		Where("room.id = ?", roomID).
		Scan(ctx)
	err = notFound(err, "room")
	return
}

// HostedBy returns the rooms hosted by userID.
func (s *RoomService) HostedBy(ctx context.Context, userID int64) (rooms []models.Room, err error) {
	rooms = make([]models.Room, 0)
	err = s.DB.NewSelect().
		Model(&rooms).
		Relation("Host").
		Relation("Topic").
		Where("room.host_id = ?", userID).
		Order("room.updated DESC", "room.created DESC").
		Scan(ctx)
	return
}

// Create makes host the owner of a new room, creating the topic on demand.
func (s *RoomService) Create(ctx context.Context, host models.User, input RoomInput) (room models.Room, err error) {
	if err = validateStruct(input); err != nil {
		return
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		var topic models.Topic
		if topic, _, err = upsertTopic(ctx, tx, input.Topic); err != nil {
			return
		}

		ts := now()
		room = models.Room{
			HostID:      host.ID,
			Host:        &host,
			TopicID:     topic.ID,
			Topic:       &topic,
			Name:        input.Name,
			Description: input.Description,
			Updated:     ts,
			Created:     ts,
		}

		_, err = tx.NewInsert().
			Model(&room).
			Exec(ctx)
		return
	})
	return
}

// Update overwrites the room's topic, name and description. Only the host may
// update a room.
func (s *RoomService) Update(ctx context.Context, actor models.User, roomID int64, input RoomInput) (room models.Room, err error) {
	if err = validateStruct(input); err != nil {
		return
	}

	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		if room, err = findRoom(ctx, tx, roomID); err != nil {
			return
		}

		if !room.IsHost(actor.ID) {
			err = ErrForbidden
			return
		}

		var topic models.Topic
		if topic, _, err = upsertTopic(ctx, tx, input.Topic); err != nil {
			return
		}

		room.TopicID = topic.ID
		room.Topic = &topic
		room.Name = input.Name
		room.Description = input.Description
		room.Updated = now()

		_, err = tx.NewUpdate().
			Model(&room).
			Column("topic_id", "name", "description", "updated").
			WherePK().
			Exec(ctx)
		return
	})
	return
}

// Delete removes the room together with its messages and participant rows.
// Only the host may delete a room.
func (s *RoomService) Delete(ctx context.Context, actor models.User, roomID int64) (err error) {
	return s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		var room models.Room
		if room, err = findRoom(ctx, tx, roomID); err != nil {
			return
		}

		if !room.IsHost(actor.ID) {
			err = ErrForbidden
			return
		}

		_, err = tx.NewDelete().
			Model((*models.Message)(nil)).
			Where("room_id = ?", room.ID).
			Exec(ctx)
		if err != nil {
			return
		}

		_, err = tx.NewDelete().
			Model((*models.RoomParticipant)(nil)).
			Where("room_id = ?", room.ID).
			Exec(ctx)
		if err != nil {
			return
		}

		_, err = tx.NewDelete().
			Model(&room).
			WherePK().
			Exec(ctx)
		return
	})
}
