package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/studybud-project/backend/internal/cctx"
	"github.com/studybud-project/backend/internal/forum"
	"github.com/studybud-project/backend/internal/session"
)

// SessionMiddleware resolves the session cookie to a user and stores it in
// the request context. Stale or invalid sessions are treated as anonymous.
func SessionMiddleware(sessions *session.Manager, users *forum.UserService) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserID(r)
			if err != nil {
				if !errors.Is(err, session.ErrNoSession) {
					zap.L().Debug("ignoring invalid session", zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			user, err := users.Get(r.Context(), userID)
			if err != nil {
				if !errors.Is(err, forum.ErrNotFound) {
					zap.L().Error("failed to load session user", zap.Int64("user_id", userID), zap.Error(err))
				}
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(cctx.WithValues(r.Context(), cctx.CurrentUser, &user)))
		})
	}
}
