package employee

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	employees.Use(middleware.ContextLogger(logger))
	{
		employees.GET("/options",
			middleware.RateLimitByUser(5, 20),
			middleware.RoleMiddleware(rbac.RoleAdmin, rbac.RolePMO),
			handler.GetOptions,
		)
	}
}
