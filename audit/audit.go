// Package audit logs flow-limit changes through zap.
package audit

import (
	"go.uber.org/zap"

	"github.com/codetesla51/flowlimit/limiter"
)

// Logger emits one structured record per limit change.
type Logger struct {
	log *zap.Logger
}

var _ limiter.Listener = (*Logger)(nil)

func NewLogger(log *zap.Logger) *Logger {
	return &Logger{log: log}
}

func (l *Logger) LimitUpdated(subject string, newLimit uint64, actor string) {
	l.log.Info("flow limit updated",
		zap.String("subject", subject),
		zap.Uint64("limit", newLimit),
		zap.String("actor", actor),
	)
}
