// Package match defines the value types the board is built from: the Match
// record for one ongoing contest, its ordered Key, the monotonic Stamp used
// to break ranking ties, and the team-name validation rule.
package match

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Iron-Ham/scoreboard/internal/errors"
)

// sequence hands out creation stamps. It only ever increases, so two matches
// created by the same process never share a stamp.
var sequence atomic.Uint64

// Stamp records when a match was created. Seq is the ordering value; Wall is
// kept for display and never compared.
type Stamp struct {
	Seq  uint64    `json:"seq" yaml:"seq"`
	Wall time.Time `json:"started_at" yaml:"started_at"`
}

// After reports whether s was stamped after other.
func (s Stamp) After(other Stamp) bool {
	return s.Seq > other.Seq
}

func nextStamp() Stamp {
	return Stamp{
		Seq:  sequence.Add(1),
		Wall: time.Now(),
	}
}

// Key identifies a match by its team names in caller order. Home/away order
// matters: Key{"A", "B"} and Key{"B", "A"} are different keys.
type Key struct {
	Home string
	Away string
}

// String renders the key as home + KeySeparator + away.
func (k Key) String() string {
	return k.Home + KeySeparator + k.Away
}

// Involves reports whether team plays on either side of k.
func (k Key) Involves(team string) bool {
	return k.Home == team || k.Away == team
}

// Match is one ongoing contest. The team names and creation stamp are fixed
// at construction; only the score changes.
type Match struct {
	home      string
	away      string
	homeScore int
	awayScore int
	createdAt Stamp
}

// New validates the names and returns a 0-0 match with a fresh stamp.
func New(home, away string, opts ...ValidateOption) (*Match, error) {
	if err := ValidateNames(home, away, opts...); err != nil {
		return nil, errors.NewMatchError("new", err).WithTeams(home, away)
	}
	return &Match{
		home:      home,
		away:      away,
		createdAt: nextStamp(),
	}, nil
}

// UpdateScore replaces both scores. Scores are set, not added.
func (m *Match) UpdateScore(home, away int) error {
	if home < 0 || away < 0 {
		return errors.NewMatchError("update", errors.ErrNegativeScore).
			WithTeams(m.home, m.away).
			WithScore(home, away)
	}
	m.homeScore = home
	m.awayScore = away
	return nil
}

func (m *Match) Home() string       { return m.home }
func (m *Match) Away() string       { return m.away }
func (m *Match) HomeScore() int     { return m.homeScore }
func (m *Match) AwayScore() int     { return m.awayScore }
func (m *Match) CreatedAt() Stamp   { return m.createdAt }
func (m *Match) Key() Key           { return Key{Home: m.home, Away: m.away} }
func (m *Match) TotalScore() int    { return m.homeScore + m.awayScore }
func (m *Match) Snapshot() Snapshot { return newSnapshot(m) }

// Clone returns an independent copy. Score changes on either side are not
// visible to the other.
func (m *Match) Clone() *Match {
	c := *m
	return &c
}

func (m *Match) String() string {
	return fmt.Sprintf("%s %d - %s %d", m.home, m.homeScore, m.away, m.awayScore)
}

// Snapshot is a detached, plain-value view of a match as returned by the
// board's summary.
type Snapshot struct {
	Home      string `json:"home" yaml:"home"`
	Away      string `json:"away" yaml:"away"`
	HomeScore int    `json:"home_score" yaml:"home_score"`
	AwayScore int    `json:"away_score" yaml:"away_score"`
	CreatedAt Stamp  `json:"created_at" yaml:"created_at"`
}

func newSnapshot(m *Match) Snapshot {
	return Snapshot{
		Home:      m.home,
		Away:      m.away,
		HomeScore: m.homeScore,
		AwayScore: m.awayScore,
		CreatedAt: m.createdAt,
	}
}

// TotalScore returns the combined score.
func (s Snapshot) TotalScore() int {
	return s.HomeScore + s.AwayScore
}

// Key returns the snapshot's match key.
func (s Snapshot) Key() Key {
	return Key{Home: s.Home, Away: s.Away}
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%s %d - %s %d", s.Home, s.HomeScore, s.Away, s.AwayScore)
}

// RanksBefore reports whether a sorts ahead of b in a summary: higher total
// first, then the more recently started match.
func RanksBefore(a, b Snapshot) bool {
	if at, bt := a.TotalScore(), b.TotalScore(); at != bt {
		return at > bt
	}
	return a.CreatedAt.After(b.CreatedAt)
}
