package telemetry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Recorder = (*NoOpRecorder)(nil)

// NoOpRecorder drops every observation. Used when no collector is configured.
type NoOpRecorder struct{}

func NewNoOpRecorder() *NoOpRecorder {
	return &NoOpRecorder{}
}

func (NoOpRecorder) RecordAPICall(ctx context.Context, op string, status int, elapsed time.Duration) {}

func (NoOpRecorder) RecordEvent(ctx context.Context, topic string) {}

func (NoOpRecorder) Close(ctx context.Context) error { return nil }

// New returns an OTLP exporter when cfg enables one and falls back to the
// no-op recorder otherwise.
func New(ctx context.Context, cfg Config) Recorder {
	exp, err := NewExporter(ctx, cfg)
	if err != nil {
		if cfg.Enabled {
			log.Warn().Err(err).Msg("telemetry disabled")
		}
		return NewNoOpRecorder()
	}
	log.Info().Str("endpoint", cfg.Endpoint).Msg("telemetry exporter started")
	return exp
}
