package app

import (
	"database/sql"

	"go-leave/internal/auth"
	"go-leave/internal/config"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/leavetype"
	"go-leave/internal/ledger"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/middleware"
	"go-leave/internal/rbac"
	"go-leave/internal/rbac/infra"
	"go-leave/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	ledgerRepo := ledger.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(cfg.RBACModelPath, cfg.RBACPolicyPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	leaveTypeService := leavetype.NewService(leaveTypeRepo, rdb, logger)
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, counterRepo, outboxRepo, rdb, logger)
	ledgerService := ledger.NewService(db, ledgerRepo, leaveTypeService, logger)
	leaveService := leave.NewService(
		db,
		leaveRepo,
		counterRepo,
		ledgerService,
		leaveTypeService,
		employeeService,
		outboxRepo,
		logger,
	)
	authService := auth.NewService(authRepo, employeeRepo, cfg.JWTSecret, cfg.JWTTTL, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, cfg.IsProduction(), cfg.JWTTTL, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService, logger)
	ledgerHandler := ledger.NewHandler(ledgerService, logger)
	leaveHandler := leave.NewHandler(leaveService, logger)
	rbacHandler := rbac.NewHandler(rbacService, logger)

	// --- Routes Registration ---
	authMW := middleware.AuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api/v1")
	api.Use(middleware.ContextLogger(logger))
	{
		auth.RegisterRoutes(api, authHandler, authMW, rbacService)
		employee.RegisterRoutes(api, employeeHandler, authMW, rbacService)
		leavetype.RegisterRoutes(api, leaveTypeHandler, authMW, rbacService)
		ledger.RegisterRoutes(api, ledgerHandler, authMW, rbacService)
		leave.RegisterRoutes(api, leaveHandler, authMW, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler, authMW, rbacService)
	}

	return nil
}
