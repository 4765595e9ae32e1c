package api

import "github.com/rs/zerolog"

// CallEvent records metadata about a single backend request.
type CallEvent struct {
	Method    string
	Endpoint  string
	Status    int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for diagnostics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}

// ZerologObserver writes call events to a structured logger.
type ZerologObserver struct {
	log zerolog.Logger
}

// NewZerologObserver creates an Observer that logs events via zerolog.
func NewZerologObserver(log zerolog.Logger) *ZerologObserver {
	return &ZerologObserver{log: log}
}

func (o *ZerologObserver) OnCallComplete(event CallEvent) {
	ev := o.log.Info()
	if !event.Success {
		ev = o.log.Warn().Str("error_code", event.ErrorCode)
	}
	ev.Str("method", event.Method).
		Str("endpoint", event.Endpoint).
		Int("status", event.Status).
		Int64("latency_ms", event.LatencyMs).
		Msg("api_call")
}
