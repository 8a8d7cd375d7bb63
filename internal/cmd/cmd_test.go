package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/scoreboard/internal/config"
	"github.com/Iron-Ham/scoreboard/internal/render"
	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
)

const canonicalPlain = `1. Uruguay 6 - Italy 6
2. Spain 10 - Brazil 2
3. Mexico 0 - Canada 5
4. Argentina 3 - Australia 1
5. Germany 2 - France 2
`

// isolate points the config dir at a temp dir and resets global command
// state left over from earlier executions.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	viper.Reset()
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	var reset func(c *cobra.Command)
	reset = func(c *cobra.Command) {
		for _, fs := range []*pflag.FlagSet{c.Flags(), c.PersistentFlags()} {
			fs.VisitAll(func(f *pflag.Flag) {
				_ = f.Value.Set(f.DefValue)
				f.Changed = false
			})
		}
		for _, sub := range c.Commands() {
			reset(sub)
		}
	}
	reset(rootCmd)

	appFs = afero.NewOsFs()
	t.Cleanup(func() { appFs = afero.NewOsFs() })
}

// executeCommand runs the root command with args and stdin, returning what
// was written to stdout and stderr.
func executeCommand(stdin string, args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	if rootCmd.Use != "scoreboard" {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, "scoreboard")
	}

	expectedCmds := []string{"play", "run", "demo", "logs", "config"}
	cmdMap := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		cmdMap[c.Name()] = true
	}
	for _, name := range expectedCmds {
		if !cmdMap[name] {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestDemo(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		isolate(t)
		out, _, err := executeCommand("", "demo", "-o", "plain")
		if err != nil {
			t.Fatalf("demo error = %v", err)
		}
		if !strings.HasSuffix(out, canonicalPlain) {
			t.Errorf("demo output does not end with the ranked summary:\n%s", out)
		}
		if !strings.Contains(out, "Started Mexico vs Canada") {
			t.Errorf("demo output missing confirmations:\n%s", out)
		}
	})

	t.Run("json is machine-readable", func(t *testing.T) {
		isolate(t)
		out, _, err := executeCommand("", "demo", "--output", "json")
		if err != nil {
			t.Fatalf("demo error = %v", err)
		}
		var entries []render.Entry
		if err := json.Unmarshal([]byte(out), &entries); err != nil {
			t.Fatalf("output is not a JSON array: %v\n%s", err, out)
		}
		var got []string
		for _, e := range entries {
			got = append(got, e.Home)
		}
		want := []string{"Uruguay", "Spain", "Mexico", "Argentina", "Germany"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("summary order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("table by default", func(t *testing.T) {
		isolate(t)
		out, _, err := executeCommand("", "demo")
		if err != nil {
			t.Fatalf("demo error = %v", err)
		}
		if !strings.Contains(out, "HOME") || !strings.Contains(out, "Uruguay") {
			t.Errorf("demo output is not a table:\n%s", out)
		}
	})

	t.Run("format from environment", func(t *testing.T) {
		isolate(t)
		t.Setenv("SCOREBOARD_OUTPUT_FORMAT", "plain")
		out, _, err := executeCommand("", "demo")
		if err != nil {
			t.Fatalf("demo error = %v", err)
		}
		if !strings.HasSuffix(out, canonicalPlain) {
			t.Errorf("SCOREBOARD_OUTPUT_FORMAT ignored:\n%s", out)
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		isolate(t)
		if _, _, err := executeCommand("", "demo", "-o", "xml"); err == nil {
			t.Error("demo -o xml should fail")
		}
	})
}

func TestRun(t *testing.T) {
	script := `# opening
start Spain Brazil
start Spain Brazil
update Spain Brazil 2 1
start Germany France
update Germany France -1 0
finish Germany France
`

	t.Run("reports rejections and prints the summary", func(t *testing.T) {
		isolate(t)
		appFs = afero.NewMemMapFs()
		if err := afero.WriteFile(appFs, "/scripts/matchday.txt", []byte(script), 0644); err != nil {
			t.Fatal(err)
		}

		out, errOut, err := executeCommand("", "run", "-o", "plain", "/scripts/matchday.txt")
		if err != nil {
			t.Fatalf("run error = %v", err)
		}
		wantErr := "line 3: Game between Spain and Brazil already exists.\n" +
			"line 6: Score cannot be negative\n"
		if errOut != wantErr {
			t.Errorf("stderr = %q, want %q", errOut, wantErr)
		}
		if !strings.HasSuffix(out, "1. Spain 2 - Brazil 1\n") {
			t.Errorf("stdout does not end with the summary:\n%s", out)
		}
	})

	t.Run("stop on error", func(t *testing.T) {
		isolate(t)
		appFs = afero.NewMemMapFs()
		_ = afero.WriteFile(appFs, "matchday.txt", []byte(script), 0644)

		_, _, err := executeCommand("", "run", "--stop-on-error", "matchday.txt")
		if err == nil || !strings.Contains(err.Error(), "line 3") {
			t.Errorf("run --stop-on-error error = %v, want line 3", err)
		}
	})

	t.Run("stdin", func(t *testing.T) {
		isolate(t)
		out, _, err := executeCommand("start A B\nupdate A B 1 1\n", "run", "-o", "plain", "--echo", "-")
		if err != nil {
			t.Fatalf("run error = %v", err)
		}
		want := "> start A B\nStarted A vs B\n> update A B 1 1\nUpdated A 1 - B 1\n1. A 1 - B 1\n"
		if out != want {
			t.Errorf("stdout = %q, want %q", out, want)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		isolate(t)
		appFs = afero.NewMemMapFs()
		if _, _, err := executeCommand("", "run", "nope.txt"); err == nil {
			t.Error("run of a missing file should fail")
		}
	})
}

func TestPlay_LineMode(t *testing.T) {
	isolate(t)
	stdin := "start Mexico Canada\nupdate Mexico Canada 0 5\nbogus\nsummary\nquit\nstart A B\n"

	out, errOut, err := executeCommand(stdin, "play", "--no-tui")
	if err != nil {
		t.Fatalf("play error = %v", err)
	}
	want := "Started Mexico vs Canada\nUpdated Mexico 0 - Canada 5\n1. Mexico 0 - Canada 5\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
	if !strings.HasPrefix(errOut, "line 3: ") {
		t.Errorf("stderr = %q, want a line 3 rejection", errOut)
	}
}

func TestPlay_MetricsServerStopsWithSession(t *testing.T) {
	isolate(t)
	_, _, err := executeCommand("start A B\n", "play", "--no-tui", "--metrics-addr", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("play error = %v", err)
	}
}

func TestPlay_MetricsAddressInUse(t *testing.T) {
	isolate(t)
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer busy.Close()

	// stdin stays open, so the command only returns if the bind failure is
	// reported before any input is read.
	stdin, pw := io.Pipe()
	t.Cleanup(func() { _ = pw.Close() })
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"play", "--no-tui", "--metrics-addr", busy.Addr().String()})

	done := make(chan error, 1)
	go func() { done <- rootCmd.Execute() }()

	select {
	case err := <-done:
		if err == nil || !strings.Contains(err.Error(), "metrics server") {
			t.Errorf("play error = %v, want a metrics server bind error", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("play kept reading stdin after the metrics address failed to bind")
	}
}

func TestLogs(t *testing.T) {
	isolate(t)

	if out, _, err := executeCommand("", "logs"); err != nil || !strings.HasPrefix(out, "No logs found") {
		t.Fatalf("logs before any session = %q, %v", out, err)
	}

	stdin := "start Spain Brazil\nstart Spain Italy\nstart Germany France\n"
	if _, _, err := executeCommand(stdin, "run", "-o", "plain", "-"); err != nil {
		t.Fatalf("run error = %v", err)
	}

	out, _, err := executeCommand("", "logs", "--team", "Italy", "-n", "0")
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("logs --team Italy returned %d lines:\n%s", len(lines), out)
	}
	for _, want := range []string{"operation rejected", "(Spain vs Italy)", `error="One or two of the teams is already playing."`} {
		if !strings.Contains(lines[0], want) {
			t.Errorf("log line missing %q: %s", want, lines[0])
		}
	}

	out, _, err = executeCommand("", "logs", "--team", "", "--grep", "session", "-n", "1")
	if err != nil {
		t.Fatalf("logs error = %v", err)
	}
	if !strings.Contains(out, "session ended") {
		t.Errorf("logs --grep session -n 1 = %q, want the last session line", out)
	}

	if _, _, err := executeCommand("", "logs", "--level", "warning"); err == nil {
		t.Error("logs --level warning should be rejected")
	}
}

func TestResolveTheme(t *testing.T) {
	t.Cleanup(styles.ClearCustomThemes)

	appFs = afero.NewMemMapFs()
	t.Cleanup(func() { appFs = afero.NewOsFs() })
	theme := `name: Pitch
version: "1"
colors:
  primary: "#00FF00"
  secondary: "#00AA00"
  warning: "#FFAA00"
  error: "#FF0000"
  muted: "#888"
  surface: "#111111"
  text: "#FFFFFF"
  border: "#444444"
`
	_ = afero.WriteFile(appFs, "/themes/pitch.yaml", []byte(theme), 0644)

	tests := []struct {
		name    string
		cfg     config.TUIConfig
		want    styles.ThemeName
		wantErr bool
	}{
		{"empty is default", config.TUIConfig{}, styles.ThemeDefault, false},
		{"built-in", config.TUIConfig{Theme: "nord"}, styles.ThemeNord, false},
		{"unknown", config.TUIConfig{Theme: "dracula"}, "", true},
		{"file wins", config.TUIConfig{Theme: "nord", ThemeFile: "/themes/pitch.yaml"}, "pitch", false},
		{"missing file", config.TUIConfig{ThemeFile: "/themes/none.yaml"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveTheme(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveTheme() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("resolveTheme() = %q, want %q", got, tt.want)
			}
		})
	}
}
