package logging

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// LogEntry is one parsed line of a board log.
type LogEntry struct {
	Time      time.Time      `json:"time"`
	Level     string         `json:"level"`
	Message   string         `json:"msg"`
	SessionID string         `json:"session_id,omitempty"`
	Operation string         `json:"operation,omitempty"`
	Home      string         `json:"home,omitempty"`
	Away      string         `json:"away,omitempty"`
	Error     string         `json:"error,omitempty"`
	Attrs     map[string]any `json:"attrs,omitempty"`
}

// LogFilter selects entries. Every non-zero field must match.
type LogFilter struct {
	// Level keeps entries at or above this level. Case-insensitive.
	Level string
	// SessionID keeps entries from one board session.
	SessionID string
	// Team keeps entries where the team plays on either side.
	Team string
	// Operation keeps entries for one board operation (start, update, finish, summary).
	Operation string
	// MessageContains keeps entries whose message contains the substring.
	MessageContains string
}

var levelOrder = map[string]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

var knownFields = map[string]bool{
	"time":       true,
	"level":      true,
	"msg":        true,
	"session_id": true,
	"operation":  true,
	"home":       true,
	"away":       true,
	"error":      true,
}

const maxLineSize = 1024 * 1024

// ReadLog parses the active log at path together with any rotated backups
// beside it (path.1, path.2.gz, ...). Entries are sorted by time. Lines
// that are not valid JSON are skipped.
func ReadLog(fs afero.Fs, path string) ([]LogEntry, error) {
	if ok, err := afero.Exists(fs, path); err != nil {
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	} else if !ok {
		return nil, fmt.Errorf("no log file at %s: %w", path, os.ErrNotExist)
	}

	var entries []LogEntry
	for _, p := range backupPaths(fs, path) {
		got, err := readFile(fs, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, got...)
	}
	active, err := readFile(fs, path)
	if err != nil {
		return nil, err
	}
	entries = append(entries, active...)

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})
	return entries, nil
}

// backupPaths lists existing backups of path, oldest first.
func backupPaths(fs afero.Fs, path string) []string {
	var found []string
	for n := 1; ; n++ {
		plain := fmt.Sprintf("%s.%d", path, n)
		if ok, _ := afero.Exists(fs, plain); ok {
			found = append(found, plain)
			continue
		}
		if ok, _ := afero.Exists(fs, plain+".gz"); ok {
			found = append(found, plain+".gz")
			continue
		}
		break
	}
	for i, j := 0, len(found)-1; i < j; i, j = i+1, j-1 {
		found[i], found[j] = found[j], found[i]
	}
	return found
}

func readFile(fs afero.Fs, path string) ([]LogEntry, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress %s: %w", path, err)
		}
		defer func() { _ = zr.Close() }()
		r = zr
	}
	return parseLines(r)
}

func parseLines(r io.Reader) ([]LogEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	var entries []LogEntry
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		entry, err := parseLogEntry(line)
		if err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading log file: %w", err)
	}
	return entries, nil
}

func parseLogEntry(line string) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return LogEntry{}, fmt.Errorf("invalid JSON: %w", err)
	}

	str := func(key string) string {
		s, _ := raw[key].(string)
		return s
	}

	entry := LogEntry{
		Level:     str("level"),
		Message:   str("msg"),
		SessionID: str("session_id"),
		Operation: str("operation"),
		Home:      str("home"),
		Away:      str("away"),
		Error:     str("error"),
	}
	if t, err := time.Parse(time.RFC3339Nano, str("time")); err == nil {
		entry.Time = t
	}
	for k, v := range raw {
		if knownFields[k] {
			continue
		}
		if entry.Attrs == nil {
			entry.Attrs = make(map[string]any)
		}
		entry.Attrs[k] = v
	}
	return entry, nil
}

// Validate reports an error when Level is set to something other than a
// known level.
func (f LogFilter) Validate() error {
	if f.Level == "" {
		return nil
	}
	if _, ok := levelOrder[strings.ToUpper(f.Level)]; !ok {
		return fmt.Errorf("invalid level %q (valid: %s)", f.Level,
			strings.ToLower(strings.Join(ValidLevels(), ", ")))
	}
	return nil
}

// FilterLogs returns the entries matching every criterion in filter. An
// unknown Level matches nothing.
func FilterLogs(entries []LogEntry, filter LogFilter) []LogEntry {
	if filter == (LogFilter{}) {
		return entries
	}
	var out []LogEntry
	for _, e := range entries {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

func (f LogFilter) matches(e LogEntry) bool {
	if f.Level != "" {
		want, ok := levelOrder[strings.ToUpper(f.Level)]
		if !ok {
			return false
		}
		if got, ok := levelOrder[e.Level]; ok && got < want {
			return false
		}
	}
	if f.SessionID != "" && e.SessionID != f.SessionID {
		return false
	}
	if f.Team != "" && e.Home != f.Team && e.Away != f.Team {
		return false
	}
	if f.Operation != "" && !strings.EqualFold(e.Operation, f.Operation) {
		return false
	}
	if f.MessageContains != "" && !strings.Contains(e.Message, f.MessageContains) {
		return false
	}
	return true
}

// WriteText writes entries one per line in a readable form:
//
//	[15:04:05.000] INFO  start rejected (Spain vs Brazil) error="..."
func WriteText(w io.Writer, entries []LogEntry) error {
	for _, e := range entries {
		var b strings.Builder
		fmt.Fprintf(&b, "[%s] %-5s %s", e.Time.Format("15:04:05.000"), e.Level, e.Message)
		if e.Home != "" || e.Away != "" {
			fmt.Fprintf(&b, " (%s vs %s)", e.Home, e.Away)
		}
		if e.Error != "" {
			fmt.Fprintf(&b, " error=%q", e.Error)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("failed to write log entry: %w", err)
		}
	}
	return nil
}
