package cctx

import (
	"context"

	"github.com/studybud-project/backend/internal/database/models"
)

type ContextKey string

var (
	CurrentUser ContextKey = "sb:user"
)

// User returns the authenticated user stored in ctx, or nil for anonymous
// requests.
func User(ctx context.Context) *models.User {
	user, _ := ctx.Value(CurrentUser).(*models.User)
	return user
}
