package seed

import (
	"context"
	"testing"

	auditrepo "github.com/fekuna/omnipos-local/internal/audit/repository"
	audituc "github.com/fekuna/omnipos-local/internal/audit/usecase"
	categoryrepo "github.com/fekuna/omnipos-local/internal/category/repository"
	"github.com/fekuna/omnipos-local/internal/database/dbtest"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	userrepo "github.com/fekuna/omnipos-local/internal/user/repository"
	useruc "github.com/fekuna/omnipos-local/internal/user/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestInitializeDefaultsIsIdempotent(t *testing.T) {
	db := dbtest.New(t)
	log := logger.NewNop()
	auditUC := audituc.NewAuditUseCase(auditrepo.NewSQLiteRepository(db), log)
	users := useruc.NewUserUseCase(userrepo.NewSQLiteRepository(db), db, auditUC, bcrypt.MinCost, log)
	categories := categoryrepo.NewSQLiteRepository(db)
	seeder := NewSeeder(categories, users, log)
	ctx := context.Background()

	require.NoError(t, seeder.InitializeDefaults(ctx, "admin"))
	require.NoError(t, seeder.InitializeDefaults(ctx, "admin"))

	n, err := categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultCategories), n)
	assert.Len(t, DefaultCategories, 27)

	list, err := users.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, model.RoleAdmin, list[0].Role)

	admin, err := users.AuthenticateUser(ctx, "admin", "admin")
	require.NoError(t, err)
	assert.NotNil(t, admin)
}

func TestInitializeDefaultsKeepsExistingCategories(t *testing.T) {
	db := dbtest.New(t)
	log := logger.NewNop()
	auditUC := audituc.NewAuditUseCase(auditrepo.NewSQLiteRepository(db), log)
	users := useruc.NewUserUseCase(userrepo.NewSQLiteRepository(db), db, auditUC, bcrypt.MinCost, log)
	categories := categoryrepo.NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, categories.Create(ctx, &model.Category{ID: "c1", Name: "House Brand"}))
	require.NoError(t, NewSeeder(categories, users, log).InitializeDefaults(ctx, "admin"))

	n, err := categories.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
