package user

import (
	"context"

	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/user/dto"
)

// UseCase performs no authorization of its own; admin-only calls are
// guarded by the caller.
type UseCase interface {
	// AuthenticateUser returns nil without error when the credentials do not
	// match, whichever half was wrong.
	AuthenticateUser(ctx context.Context, username, password string) (*model.User, error)
	ChangePassword(ctx context.Context, input *dto.ChangePasswordInput) (bool, error)
	AddUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error)
	RemoveUser(ctx context.Context, username string) error
	UsernameExists(ctx context.Context, username string) (bool, error)
	// GetUser returns nil without error for an unknown id.
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	// EnsureDefaultAdmin creates admin/<password> when no admin exists.
	EnsureDefaultAdmin(ctx context.Context, password string) (bool, error)
}
