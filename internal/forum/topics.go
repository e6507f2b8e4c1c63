package forum

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/uptrace/bun"

	"github.com/studybud-project/backend/internal/database"
	"github.com/studybud-project/backend/internal/database/models"
)

// RecentTopicsLimit is how many topics the room list shows.
const RecentTopicsLimit = 5

func NewTopicService(db *bun.DB) *TopicService {
	return &TopicService{
		baseService: baseService{
			DB: db,
		},
	}
}

type TopicService struct {
	baseService
}

// Upsert returns the topic called name, creating it first when no such topic
// exists. created reports whether a new row was inserted.
func (s *TopicService) Upsert(ctx context.Context, name string) (topic models.Topic, created bool, err error) {
	err = s.DB.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) (err error) {
		topic, created, err = upsertTopic(ctx, tx, name)
		return
	})
	return
}

func upsertTopic(ctx context.Context, db bun.IDB, name string) (topic models.Topic, created bool, err error) {
	name = strings.TrimSpace(name)
	if name == "" {
		err = &ValidationError{Fields: []string{"topic"}, Err: errors.New("topic name is empty")}
		return
	}

	// A concurrent insert of the same name makes this a no-op instead of a
	// unique violation.
	var res sql.Result
	res, err = db.NewInsert().
		Model(&models.Topic{Name: name}).
		On("CONFLICT (name) DO NOTHING").
		Returning("NULL").
		Exec(ctx)
	if err != nil {
		err = fmt.Errorf("failed to create topic %q: %w", name, err)
		return
	}

	var inserted int64
	if inserted, err = res.RowsAffected(); err != nil {
		return
	}
	created = inserted > 0

	err = db.NewSelect().
		Model(&topic).
		Where("topic.name = ?", name).
		Scan(ctx)
	return
}

// List returns the topics whose name contains query, ignoring case.
func (s *TopicService) List(ctx context.Context, query string) (topics []models.Topic, err error) {
	topics = make([]models.Topic, 0)

	q := s.DB.NewSelect().Model(&topics)
	err = database.Contains(q, "topic.name", query, true).
		Order("topic.name ASC").
		Scan(ctx)
	return
}

// Recent returns up to limit topics, newest first.
func (s *TopicService) Recent(ctx context.Context, limit int) (topics []models.Topic, err error) {
	topics = make([]models.Topic, 0, limit)
	err = s.DB.NewSelect().
		Model(&topics).
		Order("topic.id DESC").
		Limit(limit).
		Scan(ctx)
	return
}

func (s *TopicService) All(ctx context.Context) (topics []models.Topic, err error) {
	topics = make([]models.Topic, 0)
	err = s.DB.NewSelect().
		Model(&topics).
		Order("topic.name ASC").
		Scan(ctx)
	return
}
