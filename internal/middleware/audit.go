package middleware

import (
	"github.com/gin-gonic/gin"

	"hrms/internal/bootstrap"
	"hrms/internal/shared/contextutil"
)

// Audit records who performed a privileged action and how it ended.
// It runs after the handler so the response status is final.
func Audit(recorder bootstrap.AuditLogger, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		recorder.Log(c.Request.Context(), bootstrap.AuditLog{
			Action:    action,
			Actor:     c.GetString("hrms_id"),
			RequestID: contextutil.GetRequestID(c.Request.Context()),
			Message:   c.Request.Method + " " + c.FullPath(),
			Meta: map[string]any{
				"status": c.Writer.Status(),
			},
		})
	}
}
