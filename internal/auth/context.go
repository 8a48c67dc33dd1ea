package auth

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
)

type UserContext struct {
	UserID   string     `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
}

type userCtxKey struct{}

func WithUser(ctx context.Context, u *UserContext) context.Context {
	return context.WithValue(ctx, userCtxKey{}, u)
}

// GetUser returns the caller placed in ctx by the auth middleware, or nil.
func GetUser(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(userCtxKey{}).(*UserContext); ok {
		return u
	}
	return nil
}

func IsAdmin(ctx context.Context) bool {
	u := GetUser(ctx)
	return u != nil && u.Role == model.RoleAdmin
}
