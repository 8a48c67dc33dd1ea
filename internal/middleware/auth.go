package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-local/internal/auth"
	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"go.uber.org/zap"
)

// UserResolver loads the current state of a token's subject.
type UserResolver interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

// Authenticate requires a valid bearer token whose subject still exists and
// puts the caller in the request context. Username and role come from the
// user table, not the token, so removed users lose access at once.
func Authenticate(issuer *auth.TokenIssuer, users UserResolver, log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httpx.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := issuer.Parse(token)
			if err != nil {
				httpx.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			u, err := users.GetUser(r.Context(), claims.UserID)
			if err != nil {
				log.Error("failed to resolve token subject", zap.String("user_id", claims.UserID), zap.Error(err))
				httpx.RespondError(w, http.StatusInternalServerError, "internal error")
				return
			}
			if u == nil {
				httpx.RespondError(w, http.StatusUnauthorized, "user no longer exists")
				return
			}

			caller := &auth.UserContext{UserID: u.ID, Username: u.Username, Role: u.Role}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), caller)))
		})
	}
}

// RequireAdmin must run after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			httpx.RespondError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
