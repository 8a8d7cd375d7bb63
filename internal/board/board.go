// Package board implements the live scoreboard: the set of ongoing matches,
// the rules for starting, updating and finishing them, and the ranked
// summary.
//
// A Board is safe for concurrent use. Every operation runs under a single
// lock and checks all preconditions before mutating, so a rejected
// operation leaves the board exactly as it was.
package board

import (
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/Iron-Ham/scoreboard/internal/event"
	"github.com/Iron-Ham/scoreboard/internal/logging"
	"github.com/Iron-Ham/scoreboard/internal/match"
)

// Operation names used in errors, logs, events and metrics.
const (
	OpStart   = "start"
	OpUpdate  = "update"
	OpFinish  = "finish"
	OpSummary = "summary"
)

// Board holds the ongoing matches keyed by their ordered team pair.
type Board struct {
	mu      sync.Mutex
	matches map[match.Key]*match.Match

	id      string
	strict  bool
	logger  *logging.Logger
	bus     *event.Bus
	metrics *metrics
}

// New creates an empty board.
func New(opts ...Option) *Board {
	b := &Board{
		matches: make(map[match.Key]*match.Match),
		id:      uuid.NewString(),
		logger:  logging.NopLogger(),
	}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.WithSession(b.id)
	b.metrics.setOngoing(0)
	return b
}

// ID returns the board's session ID.
func (b *Board) ID() string {
	return b.id
}

// StartMatch adds a 0-0 match between home and away.
//
// It fails with ErrInvalidName, ErrSameTeams or ErrInvalidCharacter for bad
// names, ErrMatchAlreadyExists if the same home/away pair is already on the
// board, and ErrTeamAlreadyPlaying if either team plays in another match.
func (b *Board) StartMatch(home, away string) error {
	b.mu.Lock()
	err := b.start(home, away)
	n := len(b.matches)
	b.mu.Unlock()

	b.record(OpStart, home, away, err, n)
	if err == nil {
		b.publish(event.NewMatchStartedEvent(b.id, home, away))
	}
	return err
}

func (b *Board) start(home, away string) error {
	if err := b.validate(home, away); err != nil {
		return errors.NewMatchError(OpStart, err).WithTeams(home, away)
	}

	key := match.Key{Home: home, Away: away}
	if _, ok := b.matches[key]; ok {
		return errors.NewMatchError(OpStart, errors.ErrMatchAlreadyExists).WithTeams(home, away)
	}
	for k := range b.matches {
		if k.Involves(home) || k.Involves(away) {
			return errors.NewMatchError(OpStart, errors.ErrTeamAlreadyPlaying).WithTeams(home, away)
		}
	}

	m, err := match.New(home, away, match.WithReservedSeparator(b.strict))
	if err != nil {
		return err
	}
	b.matches[key] = m
	return nil
}

// UpdateScore replaces the score of the match between home and away.
//
// A negative score is rejected with ErrNegativeScore before the board is
// searched; an unknown pair fails with ErrMatchNotFound.
func (b *Board) UpdateScore(home, away string, homeScore, awayScore int) error {
	b.mu.Lock()
	err := b.update(home, away, homeScore, awayScore)
	n := len(b.matches)
	b.mu.Unlock()

	b.record(OpUpdate, home, away, err, n, "home_score", homeScore, "away_score", awayScore)
	if err == nil {
		b.publish(event.NewScoreUpdatedEvent(b.id, home, away, homeScore, awayScore))
	}
	return err
}

func (b *Board) update(home, away string, homeScore, awayScore int) error {
	if err := b.validate(home, away); err != nil {
		return errors.NewMatchError(OpUpdate, err).WithTeams(home, away)
	}
	if homeScore < 0 || awayScore < 0 {
		return errors.NewMatchError(OpUpdate, errors.ErrNegativeScore).
			WithTeams(home, away).
			WithScore(homeScore, awayScore)
	}

	m, ok := b.matches[match.Key{Home: home, Away: away}]
	if !ok {
		return errors.NewMatchError(OpUpdate, errors.ErrMatchNotFound).WithTeams(home, away)
	}
	return m.UpdateScore(homeScore, awayScore)
}

// FinishMatch removes the match between home and away. Finishing the same
// match twice fails the second time with ErrMatchNotFound.
func (b *Board) FinishMatch(home, away string) error {
	b.mu.Lock()
	final, err := b.finish(home, away)
	n := len(b.matches)
	b.mu.Unlock()

	b.record(OpFinish, home, away, err, n)
	if err == nil {
		b.publish(event.NewMatchFinishedEvent(b.id, home, away, final.HomeScore, final.AwayScore))
	}
	return err
}

func (b *Board) finish(home, away string) (match.Snapshot, error) {
	if err := b.validate(home, away); err != nil {
		return match.Snapshot{}, errors.NewMatchError(OpFinish, err).WithTeams(home, away)
	}

	key := match.Key{Home: home, Away: away}
	m, ok := b.matches[key]
	if !ok {
		return match.Snapshot{}, errors.NewMatchError(OpFinish, errors.ErrMatchNotFound).WithTeams(home, away)
	}
	delete(b.matches, key)
	return m.Snapshot(), nil
}

// Summary returns detached copies of the ongoing matches, highest combined
// score first; equal totals list the most recently started match first.
// The result is never nil.
func (b *Board) Summary() []match.Snapshot {
	b.mu.Lock()
	out := make([]match.Snapshot, 0, len(b.matches))
	for _, m := range b.matches {
		out = append(out, m.Snapshot())
	}
	b.mu.Unlock()

	slices.SortFunc(out, func(a, c match.Snapshot) int {
		switch {
		case match.RanksBefore(a, c):
			return -1
		case match.RanksBefore(c, a):
			return 1
		default:
			return 0
		}
	})

	b.logger.Debug("summary", "operation", OpSummary, "matches", len(out))
	b.metrics.observe(OpSummary, nil)
	return out
}

// Len returns the number of ongoing matches.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.matches)
}

func (b *Board) validate(home, away string) error {
	return match.ValidateNames(home, away, match.WithReservedSeparator(b.strict))
}

// record logs the outcome of an operation and updates metrics. A rejection
// is also published as a MatchRejectedEvent.
func (b *Board) record(op, home, away string, err error, ongoing int, args ...any) {
	b.metrics.observe(op, err)
	b.metrics.setOngoing(ongoing)

	log := b.logger.WithMatch(home, away)
	if err != nil {
		log.Info("operation rejected", append([]any{"operation", op, "error", errors.UserMessage(err)}, args...)...)
		b.publish(event.NewMatchRejectedEvent(b.id, op, home, away, err))
		return
	}
	log.Debug("operation applied", append([]any{"operation", op, "ongoing", ongoing}, args...)...)
}

func (b *Board) publish(e event.Event) {
	if b.bus != nil {
		b.bus.Publish(e)
	}
}
