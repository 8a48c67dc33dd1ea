package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndParse(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)

	token, err := issuer.Issue(&model.User{ID: "u1", Username: "cashier", Role: model.RoleUser})
	require.NoError(t, err)

	uc, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", uc.UserID)
	assert.Equal(t, "cashier", uc.Username)
	assert.Equal(t, model.RoleUser, uc.Role)
}

func TestParseRejectsExpiredAndForeignTokens(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	token, err := issuer.Issue(&model.User{ID: "u1", Username: "admin", Role: model.RoleAdmin})
	require.NoError(t, err)

	issuer.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = issuer.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	other := NewTokenIssuer("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestUserContext(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetUser(ctx))
	assert.False(t, IsAdmin(ctx))

	ctx = WithUser(ctx, &UserContext{Username: "admin", Role: model.RoleAdmin})
	assert.True(t, IsAdmin(ctx))
}
