// Package render prints board summaries in the formats the CLI supports.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/scoreboard/internal/match"
	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
	"github.com/Iron-Ham/scoreboard/internal/util"
)

// Format selects the summary encoding.
type Format string

// Supported formats.
const (
	FormatTable Format = "table"
	FormatPlain Format = "plain"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// DefaultMaxNameWidth is used when Options.MaxNameWidth is zero.
const DefaultMaxNameWidth = 24

// EmptyMessage is printed by text formats when nothing is ongoing.
const EmptyMessage = "No matches in progress."

// ParseFormat validates s as a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatTable, FormatPlain, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (supported: table, plain, json, yaml)", s)
	}
}

// Options tune text output. The zero value renders an unstyled table with
// the default name width.
type Options struct {
	// MaxNameWidth truncates team names in table and plain output.
	MaxNameWidth int
	// Styles colors the table; nil renders without color.
	Styles *styles.ThemedStyles
}

func (o Options) nameWidth() int {
	if o.MaxNameWidth > 0 {
		return o.MaxNameWidth
	}
	return DefaultMaxNameWidth
}

// Entry is one ranked summary row as encoded by json and yaml.
type Entry struct {
	Rank      int    `json:"rank" yaml:"rank"`
	Home      string `json:"home" yaml:"home"`
	Away      string `json:"away" yaml:"away"`
	HomeScore int    `json:"home_score" yaml:"home_score"`
	AwayScore int    `json:"away_score" yaml:"away_score"`
	Total     int    `json:"total" yaml:"total"`
	StartedAt string `json:"started_at" yaml:"started_at"`
	Sequence  uint64 `json:"sequence" yaml:"sequence"`
}

// Entries converts snapshots to ranked rows, preserving their order.
func Entries(snaps []match.Snapshot) []Entry {
	out := make([]Entry, len(snaps))
	for i, s := range snaps {
		out[i] = Entry{
			Rank:      i + 1,
			Home:      s.Home,
			Away:      s.Away,
			HomeScore: s.HomeScore,
			AwayScore: s.AwayScore,
			Total:     s.TotalScore(),
			StartedAt: s.CreatedAt.Wall.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
			Sequence:  s.CreatedAt.Seq,
		}
	}
	return out
}

// Summary writes snaps to w in format f. Snapshots are expected in ranked
// order, as returned by the board.
func Summary(w io.Writer, snaps []match.Snapshot, f Format, opts Options) error {
	switch f {
	case FormatTable:
		return writeTable(w, snaps, opts)
	case FormatPlain:
		return writePlain(w, snaps, opts)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(Entries(snaps))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(Entries(snaps)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", f)
	}
}

// Func adapts Summary to a callback bound to a format and options.
func Func(f Format, opts Options) func(io.Writer, []match.Snapshot) error {
	return func(w io.Writer, snaps []match.Snapshot) error {
		return Summary(w, snaps, f, opts)
	}
}

func writePlain(w io.Writer, snaps []match.Snapshot, opts Options) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	width := opts.nameWidth()
	for i, s := range snaps {
		_, err := fmt.Fprintf(w, "%d. %s %d - %s %d\n", i+1,
			util.TruncateANSI(s.Home, width), s.HomeScore,
			util.TruncateANSI(s.Away, width), s.AwayScore)
		if err != nil {
			return err
		}
	}
	return nil
}

// Table returns the summary as a bordered table string.
func Table(snaps []match.Snapshot, opts Options) string {
	width := opts.nameWidth()
	rows := make([][]string, len(snaps))
	for i, s := range snaps {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			util.TruncateANSI(s.Home, width),
			fmt.Sprintf("%d - %d", s.HomeScore, s.AwayScore),
			util.TruncateANSI(s.Away, width),
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("#", "HOME", "SCORE", "AWAY").
		Rows(rows...)

	if st := opts.Styles; st != nil {
		t = t.BorderStyle(st.TableBorder).StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return st.TableHeader
			case col == 0:
				return st.Rank
			case row == 0:
				return st.Leader
			case col == 2:
				return st.Score
			default:
				return st.Cell
			}
		})
	} else {
		t = t.StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1)
		})
	}
	return t.String()
}

func writeTable(w io.Writer, snaps []match.Snapshot, opts Options) error {
	if len(snaps) == 0 {
		_, err := fmt.Fprintln(w, EmptyMessage)
		return err
	}
	_, err := fmt.Fprintln(w, Table(snaps, opts))
	return err
}
