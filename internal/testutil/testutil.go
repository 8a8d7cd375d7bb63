// Package testutil provides testing utilities for scoreboard tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/Iron-Ham/scoreboard/internal/match"
)

// Scoreboard is the subset of the board API the fixtures drive.
type Scoreboard interface {
	StartMatch(home, away string) error
	UpdateScore(home, away string, homeScore, awayScore int) error
	FinishMatch(home, away string) error
}

// Fixture is a match to start and the score to set on it.
type Fixture struct {
	Home      string
	Away      string
	HomeScore int
	AwayScore int
}

// Key returns the fixture's match key.
func (f Fixture) Key() match.Key {
	return match.Key{Home: f.Home, Away: f.Away}
}

// CanonicalFixtures returns the five-match scenario in start order.
func CanonicalFixtures() []Fixture {
	return []Fixture{
		{"Mexico", "Canada", 0, 5},
		{"Spain", "Brazil", 10, 2},
		{"Germany", "France", 2, 2},
		{"Uruguay", "Italy", 6, 6},
		{"Argentina", "Australia", 3, 1},
	}
}

// CanonicalSummary returns the expected summary order of CanonicalFixtures.
func CanonicalSummary() []match.Key {
	return []match.Key{
		{Home: "Uruguay", Away: "Italy"},
		{Home: "Spain", Away: "Brazil"},
		{Home: "Mexico", Away: "Canada"},
		{Home: "Argentina", Away: "Australia"},
		{Home: "Germany", Away: "France"},
	}
}

// LoadFixtures starts every fixture in order and sets its score, failing
// the test on the first error.
func LoadFixtures(t testing.TB, b Scoreboard, fixtures []Fixture) {
	t.Helper()
	for _, f := range fixtures {
		if err := b.StartMatch(f.Home, f.Away); err != nil {
			t.Fatalf("StartMatch(%q, %q) error = %v", f.Home, f.Away, err)
		}
		if err := b.UpdateScore(f.Home, f.Away, f.HomeScore, f.AwayScore); err != nil {
			t.Fatalf("UpdateScore(%q, %q, %d, %d) error = %v", f.Home, f.Away, f.HomeScore, f.AwayScore, err)
		}
	}
}

// Keys returns the keys of snaps in order.
func Keys(snaps []match.Snapshot) []match.Key {
	keys := make([]match.Key, len(snaps))
	for i, s := range snaps {
		keys[i] = s.Key()
	}
	return keys
}

// TeamNames returns n distinct valid team names drawn from faker. Names
// never contain match.KeySeparator, so they pass strict validation too.
func TeamNames(faker *gofakeit.Faker, n int) []string {
	seen := make(map[string]bool, n)
	names := make([]string, 0, n)
	for i := 0; len(names) < n; i++ {
		name := fmt.Sprintf("%s %s %d", faker.City(), faker.Animal(), i)
		name = sanitize(name)
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func sanitize(s string) string {
	out := []rune(s)
	for i, r := range out {
		if string(r) == match.KeySeparator {
			out[i] = ' '
		}
	}
	return string(out)
}
