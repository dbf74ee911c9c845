package bootstrap_test

import (
	"context"
	"testing"

	"go-calypso/internal/bootstrap"
	"go-calypso/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestStdoutAuditLogger_Log(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	audit := bootstrap.NewStdoutAuditLogger(zap.New(core))

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithUserID(ctx, "user-9")
	audit.Log(ctx, bootstrap.AuditLog{
		Action:  bootstrap.AuditEmployeeImport,
		Message: "employee import finished",
		Meta:    map[string]any{"successCount": 3},
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "audit", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "user-9", fields["actor"])
	assert.Equal(t, bootstrap.AuditEmployeeImport, fields["action"])
}
