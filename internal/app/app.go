// Package app wires repositories, use cases and HTTP handlers over one
// database.
package app

import (
	"net/http"
	"time"

	"github.com/fekuna/omnipos-local/config"
	"github.com/fekuna/omnipos-local/internal/audit"
	auditH "github.com/fekuna/omnipos-local/internal/audit/handler"
	auditRepoPkg "github.com/fekuna/omnipos-local/internal/audit/repository"
	auditUCPkg "github.com/fekuna/omnipos-local/internal/audit/usecase"
	"github.com/fekuna/omnipos-local/internal/auth"
	"github.com/fekuna/omnipos-local/internal/backup"
	backupH "github.com/fekuna/omnipos-local/internal/backup/handler"
	backupRepoPkg "github.com/fekuna/omnipos-local/internal/backup/repository"
	backupUCPkg "github.com/fekuna/omnipos-local/internal/backup/usecase"
	"github.com/fekuna/omnipos-local/internal/category"
	catH "github.com/fekuna/omnipos-local/internal/category/handler"
	catRepoPkg "github.com/fekuna/omnipos-local/internal/category/repository"
	catUCPkg "github.com/fekuna/omnipos-local/internal/category/usecase"
	"github.com/fekuna/omnipos-local/internal/customer"
	custH "github.com/fekuna/omnipos-local/internal/customer/handler"
	custRepoPkg "github.com/fekuna/omnipos-local/internal/customer/repository"
	custUCPkg "github.com/fekuna/omnipos-local/internal/customer/usecase"
	"github.com/fekuna/omnipos-local/internal/database"
	"github.com/fekuna/omnipos-local/internal/inventory"
	invH "github.com/fekuna/omnipos-local/internal/inventory/handler"
	invRepoPkg "github.com/fekuna/omnipos-local/internal/inventory/repository"
	invUCPkg "github.com/fekuna/omnipos-local/internal/inventory/usecase"
	"github.com/fekuna/omnipos-local/internal/logger"
	"github.com/fekuna/omnipos-local/internal/middleware"
	"github.com/fekuna/omnipos-local/internal/product"
	prodH "github.com/fekuna/omnipos-local/internal/product/handler"
	prodRepoPkg "github.com/fekuna/omnipos-local/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-local/internal/product/usecase"
	"github.com/fekuna/omnipos-local/internal/sale"
	saleH "github.com/fekuna/omnipos-local/internal/sale/handler"
	saleRepoPkg "github.com/fekuna/omnipos-local/internal/sale/repository"
	saleUCPkg "github.com/fekuna/omnipos-local/internal/sale/usecase"
	"github.com/fekuna/omnipos-local/internal/seed"
	"github.com/fekuna/omnipos-local/internal/store"
	storeH "github.com/fekuna/omnipos-local/internal/store/handler"
	storeRepoPkg "github.com/fekuna/omnipos-local/internal/store/repository"
	storeUCPkg "github.com/fekuna/omnipos-local/internal/store/usecase"
	"github.com/fekuna/omnipos-local/internal/supplier"
	supH "github.com/fekuna/omnipos-local/internal/supplier/handler"
	supRepoPkg "github.com/fekuna/omnipos-local/internal/supplier/repository"
	supUCPkg "github.com/fekuna/omnipos-local/internal/supplier/usecase"
	"github.com/fekuna/omnipos-local/internal/user"
	userH "github.com/fekuna/omnipos-local/internal/user/handler"
	userRepoPkg "github.com/fekuna/omnipos-local/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-local/internal/user/usecase"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// App holds every use case of one installation.
type App struct {
	Audit      audit.UseCase
	Stores     store.UseCase
	Categories category.UseCase
	Customers  customer.UseCase
	Products   product.UseCase
	Inventory  inventory.UseCase
	Sales      sale.UseCase
	Suppliers  supplier.UseCase
	Users      user.UseCase
	Backups    backup.UseCase
	Seeder     *seed.Seeder
	Issuer     *auth.TokenIssuer

	cfg    *config.Config
	logger logger.ZapLogger
}

// New wires the application. remote may be nil when no remote backup store
// is configured.
func New(cfg *config.Config, db *database.DB, remote backup.RemoteStore, log logger.ZapLogger) *App {
	auditRepo := auditRepoPkg.NewSQLiteRepository(db)
	storeRepo := storeRepoPkg.NewSQLiteRepository(db)
	catRepo := catRepoPkg.NewSQLiteRepository(db)
	custRepo := custRepoPkg.NewSQLiteRepository(db)
	prodRepo := prodRepoPkg.NewSQLiteRepository(db)
	invRepo := invRepoPkg.NewSQLiteRepository(db)
	saleRepo := saleRepoPkg.NewSQLiteRepository(db)
	supRepo := supRepoPkg.NewSQLiteRepository(db)
	userRepo := userRepoPkg.NewSQLiteRepository(db)
	backupRepo := backupRepoPkg.NewSQLiteRepository(db)

	auditUC := auditUCPkg.NewAuditUseCase(auditRepo, log)
	userUC := userUCPkg.NewUserUseCase(userRepo, db, auditUC, cfg.Auth.BcryptCost, log)

	return &App{
		Audit:      auditUC,
		Stores:     storeUCPkg.NewStoreUseCase(storeRepo, log),
		Categories: catUCPkg.NewCategoryUseCase(catRepo, log),
		Customers:  custUCPkg.NewCustomerUseCase(custRepo, log),
		Products:   prodUCPkg.NewProductUseCase(prodRepo, db, auditUC, log),
		Inventory:  invUCPkg.NewInventoryUseCase(invRepo, db, auditUC, cfg.Stock.LowStockThreshold, log),
		Sales:      saleUCPkg.NewSaleUseCase(saleRepo, db, auditUC, log),
		Suppliers:  supUCPkg.NewSupplierUseCase(supRepo, db, auditUC, log),
		Users:      userUC,
		Backups: backupUCPkg.NewBackupUseCase(backupRepo, storeRepo, remote, db, auditUC, backupUCPkg.Config{
			RemoteDBPrefix: cfg.Mongo.DBPrefix,
			RemoteTimeout:  cfg.Mongo.Timeout,
		}, log),
		Seeder: seed.NewSeeder(catRepo, userUC, log),
		Issuer: auth.NewTokenIssuer(cfg.JWT.SecretKey, cfg.JWT.TTL),

		cfg:    cfg,
		logger: log,
	}
}

// Router mounts every endpoint under /api/v1. Login is the only
// unauthenticated route besides the health check.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(a.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	users := userH.NewUserHandler(a.Users, a.Issuer, a.logger)

	r.Route("/api/v1", func(r chi.Router) {
		users.RegisterPublicRoutes(r)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(a.Issuer, a.Users, a.logger))

			users.RegisterRoutes(r)
			storeH.NewStoreHandler(a.Stores, a.logger).RegisterRoutes(r)
			catH.NewCategoryHandler(a.Categories, a.logger).RegisterRoutes(r)
			custH.NewCustomerHandler(a.Customers, a.logger).RegisterRoutes(r)
			prodH.NewProductHandler(a.Products, a.logger).RegisterRoutes(r)
			invH.NewInventoryHandler(a.Inventory, a.logger).RegisterRoutes(r)
			saleH.NewSaleHandler(a.Sales, a.logger).RegisterRoutes(r)
			supH.NewSupplierHandler(a.Suppliers, a.logger).RegisterRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				users.RegisterAdminRoutes(r)
				auditH.NewAuditHandler(a.Audit, a.logger).RegisterRoutes(r)
				backupH.NewBackupHandler(a.Backups, a.cfg.Backup.Dir, a.logger).RegisterRoutes(r)
			})
		})
	})
	return r
}
