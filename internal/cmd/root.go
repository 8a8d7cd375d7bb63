// Package cmd implements the scoreboard command line.
package cmd

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	configcmd "github.com/Iron-Ham/scoreboard/internal/cmd/config"
	"github.com/Iron-Ham/scoreboard/internal/config"
)

// appFs is the filesystem scripts, themes and logs are read from. Tests
// replace it with an in-memory filesystem.
var appFs afero.Fs = afero.NewOsFs()

var rootCmd = &cobra.Command{
	Use:   "scoreboard",
	Short: "Live football scoreboard",
	Long: `Scoreboard tracks the matches currently being played, their scores,
and a summary ranked by total goals.

Play interactively with 'scoreboard play', replay a file of commands with
'scoreboard run', or see the reference scenario with 'scoreboard demo'.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/scoreboard/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	configcmd.Register(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SCOREBOARD")
	// e.g., SCOREBOARD_OUTPUT_FORMAT for output.format
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
