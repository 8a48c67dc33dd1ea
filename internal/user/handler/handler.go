package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-local/internal/auth"
	"github.com/fekuna/omnipos-local/internal/httpx"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/user"
	"github.com/fekuna/omnipos-local/internal/user/dto"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserHandler struct {
	uc     user.UseCase
	issuer *auth.TokenIssuer
	logger logger.ZapLogger
}

func NewUserHandler(uc user.UseCase, issuer *auth.TokenIssuer, log logger.ZapLogger) *UserHandler {
	return &UserHandler{uc: uc, issuer: issuer, logger: log}
}

// RegisterPublicRoutes mounts the endpoints reachable without a token.
func (h *UserHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.login)
}

// RegisterRoutes mounts the endpoints any signed-in user may call.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/auth/me", h.me)
	r.Post("/users/password", h.changePassword)
}

// RegisterAdminRoutes expects r to be restricted to admins already.
func (h *UserHandler) RegisterAdminRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	r.Post("/users", h.createUser)
	r.Delete("/users/{username}", h.removeUser)
	r.Get("/users/{username}/exists", h.usernameExists)
}

type userView struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

func toView(u *model.User) userView {
	return userView{ID: u.ID, Username: u.Username, Role: u.Role, CreatedAt: u.CreatedAt}
}

type loginResponse struct {
	Token string   `json:"token"`
	User  userView `json:"user"`
}

func (h *UserHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if err := validation.Struct("user.Login", &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}

	u, err := h.uc.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if u == nil {
		httpx.RespondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}

	token, err := h.issuer.Issue(u)
	if err != nil {
		h.logger.Error("failed to sign token", zap.String("username", u.Username), zap.Error(err))
		httpx.RespondError(w, http.StatusInternalServerError, "internal error")
		return
	}
	httpx.Respond(w, http.StatusOK, loginResponse{Token: token, User: toView(u)})
}

func (h *UserHandler) me(w http.ResponseWriter, r *http.Request) {
	httpx.Respond(w, http.StatusOK, auth.GetUser(r.Context()))
}

// changePassword only lets non-admins change their own password.
func (h *UserHandler) changePassword(w http.ResponseWriter, r *http.Request) {
	var req dto.ChangePasswordInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	caller := auth.GetUser(r.Context())
	if req.Username == "" {
		req.Username = caller.Username
	}
	if req.Username != caller.Username && !auth.IsAdmin(r.Context()) {
		httpx.RespondError(w, http.StatusForbidden, "cannot change another user's password")
		return
	}

	ok, err := h.uc.ChangePassword(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	if !ok {
		httpx.RespondError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.uc.ListUsers(r.Context())
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toView(&users[i]))
	}
	httpx.Respond(w, http.StatusOK, views)
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserInput
	if err := httpx.Decode(r, &req); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	u, err := h.uc.AddUser(r.Context(), &req)
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusCreated, toView(u))
}

func (h *UserHandler) removeUser(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.RemoveUser(r.Context(), chi.URLParam(r, "username")); err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *UserHandler) usernameExists(w http.ResponseWriter, r *http.Request) {
	exists, err := h.uc.UsernameExists(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		httpx.Error(w, h.logger, err)
		return
	}
	httpx.Respond(w, http.StatusOK, map[string]bool{"exists": exists})
}
