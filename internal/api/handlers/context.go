package handlers

import (
	"context"

	"github.com/sunlighthq/tasks-service/internal/entity"
)

type contextKey struct{}

var userKey contextKey

// WithUser stores the verified caller on the request context.
func WithUser(ctx context.Context, user *entity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the verified caller, or false when the request
// never passed the auth middleware.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(userKey).(*entity.User)
	return user, ok
}
