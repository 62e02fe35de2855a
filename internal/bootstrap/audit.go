package bootstrap

import "context"

// AuditLog is one immutable record of a privileged action.
type AuditLog struct {
	Action    string
	Actor     string
	RequestID string
	Message   string
	Meta      map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
