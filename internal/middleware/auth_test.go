package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fekuna/omnipos-local/internal/auth"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type usersByID map[string]*model.User

func (m usersByID) GetUser(_ context.Context, id string) (*model.User, error) {
	if id == "broken" {
		return nil, errors.New("disk I/O error")
	}
	return m[id], nil
}

func newRouter(issuer *auth.TokenIssuer, users UserResolver) http.Handler {
	r := chi.NewRouter()
	r.Use(Authenticate(issuer, users, logger.NewNop()))
	r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(auth.GetUser(r.Context()).Username))
	})
	r.With(RequireAdmin).Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return r
}

func TestAuthenticate(t *testing.T) {
	issuer := auth.NewTokenIssuer("secret", time.Hour)

	cashier := &model.User{ID: "u1", Username: "cashier", Role: model.RoleUser}
	boss := &model.User{ID: "u2", Username: "boss", Role: model.RoleAdmin}
	gone := &model.User{ID: "u3", Username: "former", Role: model.RoleAdmin}
	broken := &model.User{ID: "broken", Username: "broken", Role: model.RoleAdmin}
	router := newRouter(issuer, usersByID{cashier.ID: cashier, boss.ID: boss})

	issue := func(u *model.User) string {
		token, err := issuer.Issue(u)
		require.NoError(t, err)
		return token
	}

	// a token minted as admin for a user who is now a plain user
	demoted := issue(&model.User{ID: cashier.ID, Username: cashier.Username, Role: model.RoleAdmin})

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"no token", "/me", "", http.StatusUnauthorized},
		{"bad token", "/me", "garbage", http.StatusUnauthorized},
		{"user", "/me", issue(cashier), http.StatusOK},
		{"user on admin route", "/admin", issue(cashier), http.StatusForbidden},
		{"admin on admin route", "/admin", issue(boss), http.StatusNoContent},
		{"removed user", "/me", issue(gone), http.StatusUnauthorized},
		{"removed admin on admin route", "/admin", issue(gone), http.StatusUnauthorized},
		{"role read from user table", "/admin", demoted, http.StatusForbidden},
		{"lookup failure", "/me", issue(broken), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}
