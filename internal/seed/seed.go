// Package seed creates the records every installation needs on first launch.
package seed

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-local/internal/category"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/model"
	"github.com/fekuna/omnipos-local/internal/user"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCategories is inserted when the category table is empty.
var DefaultCategories = []string{
	"Beverages",
	"Bakery",
	"Dairy",
	"Eggs",
	"Fruits",
	"Vegetables",
	"Meat",
	"Seafood",
	"Frozen Foods",
	"Canned Goods",
	"Dry Goods",
	"Grains & Pasta",
	"Snacks",
	"Confectionery",
	"Condiments & Sauces",
	"Spices & Seasonings",
	"Breakfast & Cereal",
	"Baby Care",
	"Personal Care",
	"Health & Pharmacy",
	"Household Supplies",
	"Cleaning Products",
	"Paper Goods",
	"Pet Supplies",
	"Stationery",
	"Electronics",
	"Tobacco",
}

type Seeder struct {
	categories category.Repository
	users      user.UseCase
	logger     logger.ZapLogger
}

func NewSeeder(categories category.Repository, users user.UseCase, log logger.ZapLogger) *Seeder {
	return &Seeder{
		categories: categories,
		users:      users,
		logger:     log,
	}
}

// InitializeDefaults seeds categories and the bootstrap admin. It is safe to
// call on every launch.
func (s *Seeder) InitializeDefaults(ctx context.Context, adminPassword string) error {
	count, err := s.categories.Count(ctx)
	if err != nil {
		return fmt.Errorf("count categories: %w", err)
	}
	if count == 0 {
		cats := make([]model.Category, len(DefaultCategories))
		for i, name := range DefaultCategories {
			cats[i] = model.Category{ID: uuid.New().String(), Name: name}
		}
		if err := s.categories.CreateMany(ctx, cats); err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		s.logger.Info("seeded default categories", zap.Int("count", len(cats)))
	}

	if _, err := s.users.EnsureDefaultAdmin(ctx, adminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}
