package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/scoreboard/internal/command"
	"github.com/Iron-Ham/scoreboard/internal/render"
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a file of scoreboard commands",
	Long: `Run a file of scoreboard commands against a fresh board, then print
the summary.

The file holds one command per line; blank lines and lines starting with #
are ignored. Use - to read commands from stdin.

Examples:
  scoreboard run matchday.txt
  scoreboard run -o json matchday.txt
  cat matchday.txt | scoreboard run -`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play the reference five-match scenario",
	Long: `Start five matches, set their scores and print the ranked summary:

  1. Uruguay 6 - Italy 6
  2. Spain 10 - Brazil 2
  3. Mexico 0 - Canada 5
  4. Argentina 3 - Australia 1
  5. Germany 2 - France 2`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

var (
	runOutput      string
	runStopOnError bool
	runEcho        bool
	demoOutput     string
)

// demoScript is the reference scenario. Matches are started in this order,
// so equal totals rank Uruguay-Italy above Germany-France.
const demoScript = `# Five simultaneous matches
start Mexico Canada
start Spain Brazil
start Germany France
start Uruguay Italy
start Argentina Australia

update Mexico Canada 0 5
update Spain Brazil 10 2
update Germany France 2 2
update Uruguay Italy 6 6
update Argentina Australia 3 1
`

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(demoCmd)

	runCmd.Flags().StringVarP(&runOutput, "output", "o", "", "Summary format: table, plain, json, yaml (default from config)")
	runCmd.Flags().BoolVar(&runStopOnError, "stop-on-error", false, "Stop at the first rejected command")
	runCmd.Flags().BoolVar(&runEcho, "echo", false, "Print each command before its result")

	demoCmd.Flags().StringVarP(&demoOutput, "output", "o", "", "Summary format: table, plain, json, yaml (default from config)")
}

func runRun(cmd *cobra.Command, args []string) error {
	path := args[0]

	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := appFs.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open script: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	return playScript(cmd, in, runOutput, runStopOnError, runEcho)
}

func runDemo(cmd *cobra.Command, args []string) error {
	return playScript(cmd, strings.NewReader(demoScript), demoOutput, true, false)
}

// playScript runs in against a new session and prints the final summary.
// Confirmations go to stdout only for table and plain output so that json
// and yaml stay machine-readable.
func playScript(cmd *cobra.Command, in io.Reader, output string, stopOnError, echo bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	format, opts, err := renderOptions(cfg, output)
	if err != nil {
		return err
	}

	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := cmd.OutOrStdout()
	progress := out
	if format == render.FormatJSON || format == render.FormatYAML {
		progress = io.Discard
	}

	runner := command.NewRunner(command.NewExecutor(s.board), progress,
		command.WithErrorOutput(cmd.ErrOrStderr()),
		command.WithRenderer(render.Func(format, opts)),
		command.WithStopOnError(stopOnError),
		command.WithEcho(echo),
	)
	stats, err := runner.Run(cmd.Context(), in)
	s.logger.WithSession(s.board.ID()).Info("script finished",
		"lines", stats.Lines, "applied", stats.Applied, "rejected", stats.Rejected)
	if err != nil {
		return err
	}

	return render.Summary(out, s.board.Summary(), format, opts)
}
