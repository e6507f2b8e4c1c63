package server

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/controllers"
	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/media"
	"github.com/studybud-project/backend/internal/router"
	"github.com/studybud-project/backend/internal/session"
)

// Options carries everything the HTTP surface is built from.
type Options struct {
	DB       *bun.DB
	Sessions *session.Manager
	Views    controllers.Renderer
	Media    *media.Store
	Hasher   *forum.PasswordHasher
	Debug    bool
}

// NewRouter wires the services and controllers onto a mux router.
func NewRouter(opts Options) *mux.Router {
	hasher := opts.Hasher
	if hasher == nil {
		hasher = forum.NewPasswordHasher()
	}

	users := forum.NewUserService(opts.DB, hasher, opts.Media)
	rooms := forum.NewRoomService(opts.DB)
	topics := forum.NewTopicService(opts.DB)
	messages := forum.NewMessageService(opts.DB)

	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(http.NotFound)
	r.Use(controllers.SameOriginMiddleware)
	r.Use(controllers.SessionMiddleware(opts.Sessions, users))

	var debug router.Controller
	if opts.Debug {
		debug = &controllers.GoDebugController{}
	}

	router.Mount(r,
		debug,
		&controllers.HealthController{DB: opts.DB},
		&controllers.MediaController{Store: opts.Media},
		&controllers.APIController{Rooms: rooms},
		&controllers.AuthController{Users: users, Sessions: opts.Sessions, Views: opts.Views},
		&controllers.RoomController{Rooms: rooms, Topics: topics, Messages: messages, Views: opts.Views},
		&controllers.MessageController{Messages: messages, Views: opts.Views},
		&controllers.ProfileController{Users: users, Views: opts.Views},
		&controllers.BrowseController{Topics: topics, Messages: messages, Views: opts.Views},
	)

	return r
}

// Wrap adds the outer middleware: forwarded headers, access log and panic
// recovery.
func Wrap(h http.Handler, accessLog io.Writer) http.Handler {
	h = handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{zap.L().With(zap.String("section", "recovery"))}),
	)(h)
	h = handlers.CombinedLoggingHandler(accessLog, h)
	return handlers.ProxyHeaders(h)
}

type recoveryLogger struct {
	log *zap.Logger
}

func (l recoveryLogger) Println(v ...interface{}) {
	l.log.Sugar().Error(v...)
}
