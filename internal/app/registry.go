package app

import (
	"go-calypso/internal/auth"
	"go-calypso/internal/branch"
	"go-calypso/internal/category"
	"go-calypso/internal/config"
	"go-calypso/internal/employee"
	"go-calypso/internal/managedlist"
	"go-calypso/internal/messaging/kafka"
	"go-calypso/internal/platformuser"
	"go-calypso/internal/rbac"
	"go-calypso/internal/visit"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	a *App,
	logger *zap.Logger,
) error {
	db, gormDB, rdb := a.SQL, a.DB, a.Redis

	// --- Repositories ---
	branchRepo := branch.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	platformUserRepo := platformuser.NewRepository(gormDB)
	listRepo := managedlist.NewRepository(gormDB)
	visitRepo := visit.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Collaborators ---
	var suggester category.Suggester = category.Noop{}
	if cfg.CategorySuggestionURL != "" {
		suggester = category.NewClient(category.Config{
			URL:     cfg.CategorySuggestionURL,
			APIKey:  cfg.CategorySuggestionAPIKey,
			Timeout: cfg.CategorySuggestionTimeout,
		}, logger)
	}

	// --- Services ---
	authService := auth.NewService(platformUserRepo, cfg.JWTSecret, cfg.JWTExpiration(), logger)
	branchService := branch.NewService(db, branchRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, branchRepo, a.Audit, logger)
	platformUserService := platformuser.NewService(db, platformUserRepo, a.Audit, logger)
	listService := managedlist.NewService(db, listRepo, logger)
	visitService := visit.NewService(db, visitRepo, outboxRepo, suggester, a.Audit, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.CookieSecure, logger)
	branchHandler := branch.NewHandler(branchService, logger)
	categoryHandler := category.NewHandler(suggester, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	platformUserHandler := platformuser.NewHandler(platformUserService, logger)
	listHandler := managedlist.NewHandler(listService, logger)
	visitHandler := visit.NewHandler(visitService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler)
		branch.RegisterRoutes(api, branchHandler, rbacService)
		category.RegisterRoutes(api, categoryHandler)
		employee.RegisterRoutes(api, employeeHandler, rbacService, rdb)
		platformuser.RegisterRoutes(api, platformUserHandler, rbacService)
		managedlist.RegisterRoutes(api, listHandler, rbacService)
		visit.RegisterRoutes(api, visitHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler)
	}

	return nil
}
