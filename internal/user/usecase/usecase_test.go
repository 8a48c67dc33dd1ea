package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/fekuna/omnipos-local/internal/apperr"
	auditrepo "github.com/fekuna/omnipos-local/internal/audit/repository"
	audituc "github.com/fekuna/omnipos-local/internal/audit/usecase"
	"github.com/fekuna/omnipos-local/internal/database/dbtest"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/user"
	"github.com/fekuna/omnipos-local/internal/user/dto"
	"github.com/fekuna/omnipos-local/internal/user/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestUseCase(t *testing.T) user.UseCase {
	db := dbtest.New(t)
	log := logger.NewNop()
	auditUC := audituc.NewAuditUseCase(auditrepo.NewSQLiteRepository(db), log)
	return NewUserUseCase(repository.NewSQLiteRepository(db), db, auditUC, bcrypt.MinCost, log)
}

func TestAuthenticateUser(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.AddUser(ctx, &dto.CreateUserInput{Username: "cashier", Password: "s3cret", Role: model.RoleUser})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", created.PasswordHash)

	u, err := uc.AuthenticateUser(ctx, "cashier", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, model.RoleUser, u.Role)

	u, err = uc.AuthenticateUser(ctx, "cashier", "wrong")
	require.NoError(t, err)
	assert.Nil(t, u)

	u, err = uc.AuthenticateUser(ctx, "nobody", "s3cret")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestAddUserRejectsDuplicatesAndBadInput(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.AddUser(ctx, &dto.CreateUserInput{Username: "anna", Password: "pass", Role: model.RoleUser})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input dto.CreateUserInput
	}{
		{"duplicate", dto.CreateUserInput{Username: "anna", Password: "pass", Role: model.RoleUser}},
		{"empty username", dto.CreateUserInput{Username: " ", Password: "pass", Role: model.RoleUser}},
		{"short password", dto.CreateUserInput{Username: "bob", Password: "p", Role: model.RoleUser}},
		{"unknown role", dto.CreateUserInput{Username: "bob", Password: "pass", Role: "owner"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := tt.input
			_, err := uc.AddUser(ctx, &input)
			assert.True(t, errors.Is(err, apperr.ErrValidation), "got %v", err)
		})
	}

	exists, err := uc.UsernameExists(ctx, "anna")
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = uc.UsernameExists(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestChangePassword(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	_, err := uc.AddUser(ctx, &dto.CreateUserInput{Username: "anna", Password: "old-pass", Role: model.RoleUser})
	require.NoError(t, err)

	ok, err := uc.ChangePassword(ctx, &dto.ChangePasswordInput{Username: "anna", OldPassword: "nope", NewPassword: "new-pass"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = uc.ChangePassword(ctx, &dto.ChangePasswordInput{Username: "anna", OldPassword: "old-pass", NewPassword: "new-pass"})
	require.NoError(t, err)
	assert.True(t, ok)

	u, err := uc.AuthenticateUser(ctx, "anna", "old-pass")
	require.NoError(t, err)
	assert.Nil(t, u)
	u, err = uc.AuthenticateUser(ctx, "anna", "new-pass")
	require.NoError(t, err)
	assert.NotNil(t, u)
}

func TestRemoveUserKeepsLastAdmin(t *testing.T) {
	uc := newTestUseCase(t)
	ctx := context.Background()

	created, err := uc.EnsureDefaultAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureDefaultAdmin(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, created)

	err = uc.RemoveUser(ctx, DefaultAdminUsername)
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = uc.AddUser(ctx, &dto.CreateUserInput{Username: "boss", Password: "boss-pass", Role: model.RoleAdmin})
	require.NoError(t, err)
	require.NoError(t, uc.RemoveUser(ctx, DefaultAdminUsername))

	err = uc.RemoveUser(ctx, DefaultAdminUsername)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "boss", users[0].Username)
}
