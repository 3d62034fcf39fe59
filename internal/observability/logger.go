package observability

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Logger is the process-wide logger. It is a no-op until InitLogger runs so
// that packages can log from tests without setup.
var Logger = zap.NewNop()

func InitLogger() error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}

	Logger = logger.With(zap.String("service", ServiceName()))
	return nil
}

func SyncLogger() {
	_ = Logger.Sync()
}

// LoggerWithTrace returns a child logger enriched with trace_id and span_id
// fields from the active OTel span in ctx, plus the calculator session_id
// when one is attached.
//
// ctx itself is embedded as zap.Any("context", ctx). The otelzap bridge
// treats any field whose value implements context.Context as the context for
// log.Logger.Emit, which fills the native TraceID/SpanID on the exported OTLP
// record. Without it the bridge emits with context.Background() and the
// record's trace IDs are all zeros.
func LoggerWithTrace(ctx context.Context) *zap.Logger {
	logger := Logger
	if id := SessionIDFromContext(ctx); id != "" {
		logger = logger.With(zap.String("session_id", id))
	}

	span := trace.SpanContextFromContext(ctx)
	if !span.IsValid() {
		return logger
	}

	return logger.With(
		zap.Any("context", ctx),
		// Human-readable fields for stdout JSON and ad-hoc log grepping.
		zap.String("trace_id", span.TraceID().String()),
		zap.String("span_id", span.SpanID().String()),
	)
}
