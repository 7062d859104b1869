package audit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLimitUpdatedRecord(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewLogger(zap.New(core))

	logger.LimitUpdated("assetA", 500, "alice")

	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, "flow limit updated", entries[0].Message)

	fields := entries[0].ContextMap()
	require.Equal(t, "assetA", fields["subject"])
	require.Equal(t, uint64(500), fields["limit"])
	require.Equal(t, "alice", fields["actor"])
}
