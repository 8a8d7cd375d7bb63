package match

import (
	"testing"

	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/google/go-cmp/cmp"
)

func TestValidateNames(t *testing.T) {
	tests := []struct {
		name    string
		home    string
		away    string
		opts    []ValidateOption
		wantErr error
	}{
		{name: "valid", home: "TeamA", away: "TeamB"},
		{name: "empty home", home: "", away: "TeamB", wantErr: errors.ErrInvalidName},
		{name: "empty away", home: "TeamA", away: "", wantErr: errors.ErrInvalidName},
		{name: "blank home", home: "   ", away: "TeamB", wantErr: errors.ErrInvalidName},
		{name: "tab and newline away", home: "TeamA", away: "\t\n", wantErr: errors.ErrInvalidName},
		{name: "both empty reports invalid name", home: "", away: "", wantErr: errors.ErrInvalidName},
		{name: "same teams", home: "TeamA", away: "TeamA", wantErr: errors.ErrSameTeams},
		{name: "case differs", home: "teama", away: "TeamA"},
		{name: "whitespace differs", home: "TeamA ", away: "TeamA"},
		{name: "separator allowed by default", home: "Team-A", away: "TeamB"},
		{
			name:    "separator rejected in strict mode",
			home:    "Team-A",
			away:    "TeamB",
			opts:    []ValidateOption{WithReservedSeparator(true)},
			wantErr: errors.ErrInvalidCharacter,
		},
		{
			name:    "separator in away rejected in strict mode",
			home:    "TeamB",
			away:    "Team-A",
			opts:    []ValidateOption{WithReservedSeparator(true)},
			wantErr: errors.ErrInvalidCharacter,
		},
		{
			name:    "same teams checked before separator",
			home:    "Team-A",
			away:    "Team-A",
			opts:    []ValidateOption{WithReservedSeparator(true)},
			wantErr: errors.ErrSameTeams,
		},
		{
			name:    "blank checked before separator",
			home:    "",
			away:    "Team-A",
			opts:    []ValidateOption{WithReservedSeparator(true)},
			wantErr: errors.ErrInvalidName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNames(tt.home, tt.away, tt.opts...)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("ValidateNames() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateNames() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	m, err := New("Mexico", "Canada")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if m.Home() != "Mexico" || m.Away() != "Canada" {
		t.Errorf("teams = %q vs %q, want Mexico vs Canada", m.Home(), m.Away())
	}
	if m.HomeScore() != 0 || m.AwayScore() != 0 {
		t.Errorf("score = %d-%d, want 0-0", m.HomeScore(), m.AwayScore())
	}
	if m.CreatedAt().Seq == 0 {
		t.Error("CreatedAt().Seq should be set")
	}
	if m.CreatedAt().Wall.IsZero() {
		t.Error("CreatedAt().Wall should be set")
	}
	if got := m.Key(); got != (Key{Home: "Mexico", Away: "Canada"}) {
		t.Errorf("Key() = %v", got)
	}
}

func TestNew_InvalidNames(t *testing.T) {
	tests := []struct {
		home, away string
		want       error
	}{
		{"", "TeamB", errors.ErrInvalidName},
		{"TeamA", " ", errors.ErrInvalidName},
		{"TeamA", "TeamA", errors.ErrSameTeams},
	}

	for _, tt := range tests {
		t.Run(tt.home+"|"+tt.away, func(t *testing.T) {
			m, err := New(tt.home, tt.away)
			if m != nil {
				t.Errorf("New() = %v, want nil match", m)
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
			var matchErr *errors.MatchError
			if !errors.As(err, &matchErr) {
				t.Fatalf("New() error should be a *MatchError, got %T", err)
			}
		})
	}
}

func TestNew_StampsStrictlyIncrease(t *testing.T) {
	var prev Stamp
	for i := 0; i < 100; i++ {
		m, err := New("Home", "Away")
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if i > 0 && !m.CreatedAt().After(prev) {
			t.Fatalf("stamp %d (%d) not after previous (%d)", i, m.CreatedAt().Seq, prev.Seq)
		}
		prev = m.CreatedAt()
	}
}

func TestMatch_UpdateScore(t *testing.T) {
	m, _ := New("TeamA", "TeamB")
	created := m.CreatedAt()

	if err := m.UpdateScore(2, 3); err != nil {
		t.Fatalf("UpdateScore(2, 3) error = %v", err)
	}
	if m.HomeScore() != 2 || m.AwayScore() != 3 {
		t.Errorf("score = %d-%d, want 2-3", m.HomeScore(), m.AwayScore())
	}

	// Replace, not accumulate.
	if err := m.UpdateScore(1, 1); err != nil {
		t.Fatalf("UpdateScore(1, 1) error = %v", err)
	}
	if m.TotalScore() != 2 {
		t.Errorf("TotalScore() = %d, want 2", m.TotalScore())
	}

	if m.CreatedAt() != created {
		t.Error("UpdateScore must not change CreatedAt")
	}
	if m.Home() != "TeamA" || m.Away() != "TeamB" {
		t.Error("UpdateScore must not change team names")
	}
}

func TestMatch_UpdateScore_Negative(t *testing.T) {
	tests := []struct {
		name       string
		home, away int
	}{
		{"negative home", -1, 3},
		{"negative away", 3, -1},
		{"both negative", -2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := New("TeamA", "TeamB")
			_ = m.UpdateScore(4, 5)

			err := m.UpdateScore(tt.home, tt.away)
			if !errors.Is(err, errors.ErrNegativeScore) {
				t.Fatalf("UpdateScore() error = %v, want ErrNegativeScore", err)
			}
			if m.HomeScore() != 4 || m.AwayScore() != 5 {
				t.Errorf("score changed to %d-%d after rejected update", m.HomeScore(), m.AwayScore())
			}
		})
	}
}

func TestMatch_Clone(t *testing.T) {
	orig, _ := New("TeamA", "TeamB")
	_ = orig.UpdateScore(1, 2)

	c := orig.Clone()
	_ = c.UpdateScore(7, 7)

	if orig.HomeScore() != 1 || orig.AwayScore() != 2 {
		t.Errorf("original changed to %s after clone update", orig)
	}

	_ = orig.UpdateScore(0, 0)
	if c.TotalScore() != 14 {
		t.Errorf("clone changed to %s after original update", c)
	}
	if c.CreatedAt() != orig.CreatedAt() {
		t.Error("clone should keep the original stamp")
	}
}

func TestMatch_Snapshot(t *testing.T) {
	m, _ := New("Spain", "Brazil")
	_ = m.UpdateScore(10, 2)

	snap := m.Snapshot()
	want := Snapshot{
		Home:      "Spain",
		Away:      "Brazil",
		HomeScore: 10,
		AwayScore: 2,
		CreatedAt: m.CreatedAt(),
	}
	if diff := cmp.Diff(want, snap); diff != "" {
		t.Errorf("Snapshot() mismatch (-want +got):\n%s", diff)
	}

	snap.HomeScore = 99
	if m.HomeScore() != 10 {
		t.Error("mutating a snapshot must not affect the match")
	}
	if snap.TotalScore() != 101 {
		t.Errorf("Snapshot.TotalScore() = %d, want 101", snap.TotalScore())
	}
}

func TestKey(t *testing.T) {
	k := Key{Home: "Uruguay", Away: "Italy"}

	if got := k.String(); got != "Uruguay-Italy" {
		t.Errorf("String() = %q, want %q", got, "Uruguay-Italy")
	}
	if k == (Key{Home: "Italy", Away: "Uruguay"}) {
		t.Error("keys must be order-sensitive")
	}
	if !k.Involves("Italy") || !k.Involves("Uruguay") {
		t.Error("Involves() should match both sides")
	}
	if k.Involves("Spain") {
		t.Error("Involves(Spain) = true, want false")
	}

	// Joined strings may collide; struct keys do not.
	a := Key{Home: "A-B", Away: "C"}
	b := Key{Home: "A", Away: "B-C"}
	if a.String() != b.String() {
		t.Fatalf("expected colliding string forms, got %q and %q", a, b)
	}
	if a == b {
		t.Error("struct keys with colliding string forms must differ")
	}
}

func TestRanksBefore(t *testing.T) {
	older := Snapshot{HomeScore: 2, AwayScore: 2, CreatedAt: Stamp{Seq: 1}}
	newer := Snapshot{HomeScore: 3, AwayScore: 1, CreatedAt: Stamp{Seq: 2}}
	higher := Snapshot{HomeScore: 5, AwayScore: 0, CreatedAt: Stamp{Seq: 0}}

	if !RanksBefore(newer, older) {
		t.Error("equal totals: more recent should rank first")
	}
	if RanksBefore(older, newer) {
		t.Error("equal totals: older should not rank first")
	}
	if !RanksBefore(higher, newer) {
		t.Error("higher total should rank first regardless of age")
	}
}
