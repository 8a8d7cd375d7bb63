package board

import (
	"github.com/Iron-Ham/scoreboard/internal/event"
	"github.com/Iron-Ham/scoreboard/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
)

// Option configures a Board.
type Option func(*Board)

// WithStrictNames rejects team names containing match.KeySeparator.
func WithStrictNames(strict bool) Option {
	return func(b *Board) {
		b.strict = strict
	}
}

// WithLogger sets the logger operations are recorded to. The board tags it
// with its session ID.
func WithLogger(logger *logging.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithEventBus publishes a match event after every operation.
func WithEventBus(bus *event.Bus) Option {
	return func(b *Board) {
		b.bus = bus
	}
}

// WithMetrics registers the board's collectors with reg. If collectors with
// the same names are already registered, the board reuses them.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(b *Board) {
		if reg != nil {
			b.metrics = newMetrics(reg)
		}
	}
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(b *Board) {
		if id != "" {
			b.id = id
		}
	}
}
