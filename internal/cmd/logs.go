package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/scoreboard/internal/errors"
	"github.com/Iron-Ham/scoreboard/internal/logging"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "View session logs",
	Long: `View and filter the scoreboard log, including rotated files.

Examples:
  # Show the last 50 entries
  scoreboard logs

  # Everything involving Spain
  scoreboard logs --team Spain -n 0

  # Rejected starts only
  scoreboard logs --operation start --grep rejected

  # Warnings and errors
  scoreboard logs --level warn`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

var (
	logsSessionID string
	logsTail      int
	logsLevel     string
	logsTeam      string
	logsOperation string
	logsGrep      string
)

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().StringVarP(&logsSessionID, "session", "s", "", "Only entries from this board session")
	logsCmd.Flags().IntVarP(&logsTail, "tail", "n", 50, "Number of entries to show (0 for all)")
	logsCmd.Flags().StringVar(&logsLevel, "level", "", "Filter by minimum level (debug/info/warn/error)")
	logsCmd.Flags().StringVar(&logsTeam, "team", "", "Only entries where this team plays")
	logsCmd.Flags().StringVar(&logsOperation, "operation", "", "Only entries for start, update, finish or summary")
	logsCmd.Flags().StringVar(&logsGrep, "grep", "", "Only entries whose message contains this text")
}

func runLogs(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if logsTail < 0 {
		return fmt.Errorf("--tail must be non-negative")
	}

	filter := logging.LogFilter{
		Level:           logsLevel,
		SessionID:       logsSessionID,
		Team:            logsTeam,
		Operation:       logsOperation,
		MessageContains: logsGrep,
	}
	if err := filter.Validate(); err != nil {
		return fmt.Errorf("--level: %w", err)
	}

	path := filepath.Join(cfg.Logging.ResolveDir(), logging.FileName)
	entries, err := logging.ReadLog(appFs, path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(cmd.OutOrStdout(), "No logs found at %s\n", path)
		return nil
	}
	if err != nil {
		return err
	}

	entries = logging.FilterLogs(entries, filter)
	if logsTail > 0 && len(entries) > logsTail {
		entries = entries[len(entries)-logsTail:]
	}
	return logging.WriteText(cmd.OutOrStdout(), entries)
}
