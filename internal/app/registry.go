package app

import (
	"database/sql"

	"hrms/internal/bootstrap"
	"hrms/internal/bulkchange"
	"hrms/internal/coc"
	"hrms/internal/employee"
	"hrms/internal/leavebalance"
	"hrms/internal/messaging/kafka"
	"hrms/internal/rbac"
	"hrms/internal/shared/codegen"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	logger := zap.L()

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leavebalance.NewRepository(gormDB)
	cocRepo := coc.NewRepository(gormDB)
	codegenRepo := codegen.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	rbacService, err := rbac.NewService()
	if err != nil {
		return err
	}

	// --- Services ---
	notifier := kafka.NewNotifier(outboxRepo)
	catalog := coc.NewCatalog(cocRepo)
	codeGenerator := codegen.NewGenerator(codegenRepo)
	leaveUpdater := leavebalance.NewUpdater(leaveRepo)
	employeeService := employee.NewService(employeeRepo, rdb)
	bulkChangeService := bulkchange.NewService(
		employeeRepo,
		leaveUpdater,
		catalog,
		codeGenerator,
		rbacService,
		notifier,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	bulkChangeHandler := bulkchange.NewHandler(bulkChangeService, rdb)

	auditLogger := bootstrap.NewStdoutAuditLogger()

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, logger)
		bulkchange.RegisterRoutes(api, bulkChangeHandler, rdb, auditLogger, logger)
	}

	return nil
}
