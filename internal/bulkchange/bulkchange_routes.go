package bulkchange

import (
	"hrms/internal/bootstrap"
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
) {
	bulk := r.Group("/bulk-change")
	bulk.Use(middleware.AuthMiddleware())
	bulk.Use(middleware.ContextLogger(logger))
	{
		bulk.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RoleMiddleware(rbac.RoleAdmin, rbac.RolePMO),
			middleware.Idempotency(rdb),
			middleware.Audit(audit, "EMPLOYEE_BULK_CHANGE"),
			handler.BulkChange,
		)
	}
}
