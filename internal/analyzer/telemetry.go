package analyzer

import (
	"log/slog"
	"time"
)

// Telemetry event names emitted by the orchestrator.
const (
	EventCacheHit  = "cache.hit"
	EventCacheMiss = "cache.miss"
	EventAICall    = "ai.call"
)

// Event is one telemetry emission. Key is the content hash the event
// refers to; Elapsed and OK are set for ai.call events.
type Event struct {
	Name    string
	Key     string
	Model   string
	Elapsed time.Duration
	OK      bool
}

// EventSink receives orchestrator telemetry. Implementations must be safe
// for concurrent use; emission order across concurrent batch items is not
// guaranteed.
type EventSink interface {
	Emit(ev Event)
}

// logSink is the default sink: events land on the structured log.
type logSink struct {
	log *slog.Logger
}

// NewLogSink returns an EventSink that writes events to logger at debug
// level.
func NewLogSink(logger *slog.Logger) EventSink {
	if logger == nil {
		logger = slog.Default()
	}
	return logSink{log: logger}
}

func (s logSink) Emit(ev Event) {
	attrs := []any{"key", ev.Key}
	if ev.Model != "" {
		attrs = append(attrs, "model", ev.Model)
	}
	if ev.Name == EventAICall {
		attrs = append(attrs, "elapsed_ms", ev.Elapsed.Milliseconds(), "ok", ev.OK)
	}
	s.log.Debug("telemetry."+ev.Name, attrs...)
}

// NopSink discards events.
type NopSink struct{}

func (NopSink) Emit(Event) {}
