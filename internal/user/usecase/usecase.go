package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/fekuna/omnipos-local/internal/apperr"
	"github.com/fekuna/omnipos-local/internal/audit"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/user"
	"github.com/fekuna/omnipos-local/internal/user/dto"
	"github.com/fekuna/omnipos-local/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const DefaultAdminUsername = "admin"

type userUseCase struct {
	repo   user.Repository
	tx     database.Transactor
	audit  audit.UseCase
	logger logger.ZapLogger
	cost   int
	// dummyHash is compared against when the username is unknown so both
	// failure paths pay for one bcrypt comparison.
	dummyHash []byte
}

func NewUserUseCase(repo user.Repository, tx database.Transactor, auditUC audit.UseCase, bcryptCost int, log logger.ZapLogger) user.UseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcryptCost)
	if err != nil {
		// only reachable with an invalid cost, which is clamped above
		log.Error("failed to prepare dummy hash", zap.Error(err))
	}
	return &userUseCase{
		repo:      repo,
		tx:        tx,
		audit:     auditUC,
		logger:    log,
		cost:      bcryptCost,
		dummyHash: dummy,
	}
}

func (uc *userUseCase) AuthenticateUser(ctx context.Context, username, password string) (*model.User, error) {
	u, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		uc.logger.Error("failed to load user", zap.Error(err))
		return nil, apperr.Storage("user.AuthenticateUser", err)
	}

	hash := uc.dummyHash
	if u != nil {
		hash = []byte(u.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil || u == nil {
		uc.audit.LogAudit(ctx, model.UserActivity{Action: "login_failed", Username: username})
		return nil, nil
	}

	uc.audit.LogAudit(ctx, model.UserActivity{Action: "login", Username: u.Username, Role: u.Role})
	return u, nil
}

func (uc *userUseCase) ChangePassword(ctx context.Context, input *dto.ChangePasswordInput) (bool, error) {
	if err := validation.Struct("user.ChangePassword", input); err != nil {
		return false, err
	}

	u, err := uc.AuthenticateUser(ctx, input.Username, input.OldPassword)
	if err != nil {
		return false, err
	}
	if u == nil {
		return false, nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), uc.cost)
	if err != nil {
		return false, apperr.Validation("user.ChangePassword", "%v", err)
	}
	if err := uc.repo.UpdatePasswordHash(ctx, u.ID, string(hash)); err != nil {
		uc.logger.Error("failed to update password", zap.String("username", u.Username), zap.Error(err))
		return false, apperr.Storage("user.ChangePassword", err)
	}

	uc.audit.LogAudit(ctx, model.UserActivity{Action: "password_changed", Username: u.Username, Role: u.Role})
	return true, nil
}

func (uc *userUseCase) AddUser(ctx context.Context, input *dto.CreateUserInput) (*model.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := validation.Struct("user.AddUser", input); err != nil {
		return nil, err
	}

	exists, err := uc.UsernameExists(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation("user.AddUser", "username %q is already taken", input.Username)
	}

	u, err := uc.newUser(input.Username, input.Password, input.Role)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		uc.logger.Error("failed to create user", zap.String("username", u.Username), zap.Error(err))
		return nil, apperr.Storage("user.AddUser", err)
	}

	uc.audit.LogAudit(ctx, model.UserActivity{Action: "user_added", Username: u.Username, Role: u.Role})
	return u, nil
}

var errLastAdmin = errors.New("cannot remove the last admin")

func (uc *userUseCase) RemoveUser(ctx context.Context, username string) error {
	var removed *model.User
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		u, err := uc.repo.FindByUsername(ctx, username)
		if err != nil {
			return err
		}
		if u == nil {
			return apperr.NotFound("user.RemoveUser", "user %q not found", username)
		}
		if u.Role == model.RoleAdmin {
			admins, err := uc.repo.CountByRole(ctx, model.RoleAdmin)
			if err != nil {
				return err
			}
			if admins <= 1 {
				return errLastAdmin
			}
		}
		removed = u
		return uc.repo.Delete(ctx, u.ID)
	})
	switch {
	case err == nil:
	case errors.Is(err, errLastAdmin):
		return apperr.Validation("user.RemoveUser", "%v", err)
	default:
		return apperr.Storage("user.RemoveUser", err)
	}

	uc.audit.LogAudit(ctx, model.UserActivity{Action: "user_removed", Username: removed.Username, Role: removed.Role})
	return nil
}

func (uc *userUseCase) UsernameExists(ctx context.Context, username string) (bool, error) {
	u, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return false, apperr.Storage("user.UsernameExists", err)
	}
	return u != nil, nil
}

func (uc *userUseCase) GetUser(ctx context.Context, id string) (*model.User, error) {
	u, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("user.GetUser", err)
	}
	return u, nil
}

func (uc *userUseCase) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := uc.repo.FindAll(ctx)
	if err != nil {
		uc.logger.Error("failed to list users", zap.Error(err))
		return nil, apperr.Storage("user.ListUsers", err)
	}
	return users, nil
}

func (uc *userUseCase) EnsureDefaultAdmin(ctx context.Context, password string) (bool, error) {
	created := false
	err := uc.tx.RunInTx(ctx, func(ctx context.Context) error {
		admins, err := uc.repo.CountByRole(ctx, model.RoleAdmin)
		if err != nil {
			return err
		}
		if admins > 0 {
			return nil
		}
		u, err := uc.newUser(DefaultAdminUsername, password, model.RoleAdmin)
		if err != nil {
			return err
		}
		if err := uc.repo.Create(ctx, u); err != nil {
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, apperr.Storage("user.EnsureDefaultAdmin", err)
	}
	if created {
		uc.logger.Warn("created default admin account, change its password", zap.String("username", DefaultAdminUsername))
		uc.audit.LogAudit(ctx, model.UserActivity{Action: "user_added", Username: DefaultAdminUsername, Role: model.RoleAdmin})
	}
	return created, nil
}

func (uc *userUseCase) newUser(username, password string, role model.Role) (*model.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, apperr.Validation("user.AddUser", "%v", err)
	}
	return &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}, nil
}
