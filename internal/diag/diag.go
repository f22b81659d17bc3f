// Package diag provides diagnostic collision sinks: a structured log writer
// and a fan-out to several sinks at once.
package diag

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/collide/internal/collision"
	"github.com/vovakirdan/collide/internal/core"
)

// Namer resolves an entity to a display name.
type Namer func(id core.EntityID) string

// LogSink writes one log line per collision event.
type LogSink struct {
	logger *log.Logger
	level  log.Level
	names  Namer
}

// NewLogSink returns a sink logging to logger at debug level. names may be
// nil, in which case entities are shown by ID only.
func NewLogSink(logger *log.Logger, names Namer) *LogSink {
	return &LogSink{
		logger: logger,
		level:  log.DebugLevel,
		names:  names,
	}
}

// WithLevel returns a copy of the sink that logs at level.
func (s *LogSink) WithLevel(level log.Level) *LogSink {
	c := *s
	c.level = level
	return &c
}

// Collision implements collision.Sink.
func (s *LogSink) Collision(e collision.Event) {
	s.logger.Log(s.level, "collision",
		"tick", e.Tick,
		"a", s.label(e.A),
		"rect_a", e.RectA,
		"b", s.label(e.B),
		"rect_b", e.RectB,
	)
}

func (s *LogSink) label(id core.EntityID) string {
	if s.names == nil {
		return id.String()
	}
	if name := s.names(id); name != "" {
		return name + id.String()
	}
	return id.String()
}

// Multi forwards every event to each of its sinks in order. Nil entries are
// skipped.
type Multi []collision.Sink

// Collision implements collision.Sink.
func (m Multi) Collision(e collision.Event) {
	for _, s := range m {
		if s != nil {
			s.Collision(e)
		}
	}
}
