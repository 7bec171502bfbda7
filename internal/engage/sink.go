package engage

import (
	"context"
	"log/slog"

	"github.com/blackmichael/reshare-bot/internal/domain"
)

// DefaultNamespace is the component name traces are tagged with when none is
// configured.
const DefaultNamespace = "reshare-bot"

// LogSink writes pipeline traces to a structured logger at debug level.
type LogSink struct {
	logger *slog.Logger
}

var _ domain.Sink = (*LogSink)(nil)

// NewLogSink returns a sink tagging every trace with the given namespace.
func NewLogSink(logger *slog.Logger, namespace string) *LogSink {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &LogSink{logger: logger.With("component", namespace)}
}

// Emit logs strings as the message and anything else as a "value" attribute.
func (s *LogSink) Emit(v any) {
	if msg, ok := v.(string); ok {
		s.logger.Log(context.Background(), slog.LevelDebug, msg)
		return
	}
	s.logger.Log(context.Background(), slog.LevelDebug, "trace", "value", v)
}
