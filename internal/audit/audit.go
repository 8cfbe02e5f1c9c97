package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Event is emitted by every mutating command: who changed what, with the
// before/after snapshots. Storage and retention are the sink's problem.
type Event struct {
	Actor      uuid.UUID
	Action     string
	EntityKind string
	EntityID   uuid.UUID
	Before     any
	After      any
	At         time.Time
}

type Sink interface {
	Emit(ctx context.Context, e Event)
}

type slogSink struct {
	logger *slog.Logger
}

func NewSlogSink(logger *slog.Logger) Sink {
	return &slogSink{logger: logger}
}

func (s *slogSink) Emit(ctx context.Context, e Event) {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("actor", e.Actor.String()),
		slog.String("action", e.Action),
		slog.String("entity_kind", e.EntityKind),
		slog.String("entity_id", e.EntityID.String()),
		slog.Any("before", e.Before),
		slog.Any("after", e.After),
		slog.Time("at", e.At),
	)
}

// NopSink for tests and wiring that does not care about audit output.
type NopSink struct{}

func (NopSink) Emit(context.Context, Event) {}
