package views

import (
	"github.com/studybud-project/backend/internal/database/models"
	"github.com/studybud-project/backend/internal/forum"
)

const (
	PageLoginRegister = "login_register"
	PageHome          = "home"
	PageRoom          = "room"
	PageProfile       = "profile"
	PageRoomForm      = "room_form"
	PageDelete        = "delete"
	PageUpdateUser    = "update_user"
	PageTopics        = "topics"
	PageActivity      = "activity"
)

// Base is shared by every page.
type Base struct {
	CurrentUser *models.User
	Alerts      []string
}

func (b *Base) Alert(msg string) {
	b.Alerts = append(b.Alerts, msg)
}

type AuthPage struct {
	Base
	Page  string
	Next  string
	Email string
	Form  forum.Registration
}

type HomePage struct {
	Base
	forum.SearchResult
}

type RoomPage struct {
	Base
	forum.RoomDetail
}

type ProfilePage struct {
	Base
	forum.Profile
}

type RoomFormPage struct {
	Base
	Room   *models.Room
	Topics []models.Topic
	Form   forum.RoomInput
}

type DeletePage struct {
	Base
	Object string
}

type UpdateUserPage struct {
	Base
	Form forum.ProfileUpdate
}

type TopicsPage struct {
	Base
	Query  string
	Topics []models.Topic
}

type ActivityPage struct {
	Base
	Messages []models.Message
}
