package bootstrap

import "context"

// Audit actions.
const (
	AuditServerShutdown   = "SERVER_SHUTDOWN"
	AuditEmployeeImport   = "EMPLOYEE_IMPORT"
	AuditPlatformUserRole = "PLATFORM_USER_ROLE_CHANGED"
	AuditVisitApproved    = "VISIT_APPROVED"
)

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type noopAuditLogger struct{}

func (noopAuditLogger) Log(context.Context, AuditLog) {}

// NoopAuditLogger discards every entry.
func NoopAuditLogger() AuditLogger {
	return noopAuditLogger{}
}
