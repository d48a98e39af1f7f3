package logsvc

import (
	"go.uber.org/zap"

	"github.com/szkolix/backend/core"
)

// ZapLogger adapts a *zap.Logger to the core.Logger contract; used in QA
// where structured output is scraped.
type ZapLogger struct {
	log     *zap.Logger
	enabled bool
}

var _ core.Logger = (*ZapLogger)(nil)

func NewZapLogger(log *zap.Logger) *ZapLogger {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapLogger{log: log, enabled: true}
}

func (l *ZapLogger) Enable(enabled bool) { l.enabled = enabled }

func (l *ZapLogger) Debug(msg string, args ...interface{}) {
	if l.enabled {
		l.log.Debug(msg, fields(args)...)
	}
}

func (l *ZapLogger) Info(msg string, args ...interface{}) {
	if l.enabled {
		l.log.Info(msg, fields(args)...)
	}
}

func (l *ZapLogger) Error(msg string, args ...interface{}) {
	if l.enabled {
		l.log.Error(msg, fields(args)...)
	}
}

func fields(args []interface{}) []zap.Field {
	flds := make([]zap.Field, 0, len(args))
	for _, arg := range args {
		if err, ok := arg.(error); ok {
			flds = append(flds, zap.Error(err))
			continue
		}
		flds = append(flds, zap.Any("detail", arg))
	}
	return flds
}
