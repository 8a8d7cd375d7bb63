package config

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Manage color themes",
	Long: `Manage color themes for the scoreboard TUI.

Use 'theme list' to see the built-in themes.
Use 'theme export' to create a template for a custom theme, then point
tui.theme_file at it.`,
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available themes",
	Args:  cobra.NoArgs,
	RunE:  runThemeList,
}

var themeExportCmd = &cobra.Command{
	Use:   "export <theme-name> [output-file]",
	Short: "Export a theme to YAML",
	Long: `Export a theme to YAML format for customization or sharing.

If no output file is specified, the YAML is printed to stdout.

Examples:
  scoreboard config theme export default              # Print default theme to stdout
  scoreboard config theme export nord pitch.yaml      # Save nord theme to file
  scoreboard config set tui.theme_file pitch.yaml     # Use the edited copy`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runThemeExport,
}

func init() {
	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeExportCmd)
}

func runThemeList(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	active := viper.GetString("tui.theme")

	fmt.Fprintln(out, "Built-in themes:")
	for _, name := range styles.BuiltinThemes() {
		marker := " "
		if name == active {
			marker = "*"
		}
		fmt.Fprintf(out, " %s %s\n", marker, name)
	}

	if file := viper.GetString("tui.theme_file"); file != "" {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Theme file (overrides tui.theme): %s\n", file)
	}
	return nil
}

func runThemeExport(cmd *cobra.Command, args []string) error {
	themeName := args[0]
	if !styles.IsValidTheme(themeName) {
		return fmt.Errorf("unknown theme: %s\n\nRun 'scoreboard config theme list' to see available themes", themeName)
	}

	data, err := styles.ExportTheme(styles.ThemeName(themeName))
	if err != nil {
		return fmt.Errorf("exporting theme: %w", err)
	}

	if len(args) > 1 {
		outputPath := args[1]
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("writing to %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Theme exported to: %s\n", outputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}
