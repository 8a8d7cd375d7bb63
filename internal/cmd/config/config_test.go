package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	appconfig "github.com/Iron-Ham/scoreboard/internal/config"
	"github.com/Iron-Ham/scoreboard/internal/tui/styles"
)

// setupConfig isolates viper and the config dir for one test.
func setupConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	viper.Reset()
	appconfig.SetDefaults()
	t.Cleanup(viper.Reset)
	return dir
}

func capture(c *cobra.Command) *bytes.Buffer {
	buf := new(bytes.Buffer)
	c.SetOut(buf)
	return buf
}

func TestRunConfigSet(t *testing.T) {
	setupConfig(t)
	out := capture(configSetCmd)

	if err := runConfigSet(configSetCmd, []string{"output.format", "plain"}); err != nil {
		t.Fatalf("runConfigSet() error = %v", err)
	}
	if err := runConfigSet(configSetCmd, []string{"board.strict_names", "true"}); err != nil {
		t.Fatalf("runConfigSet() error = %v", err)
	}
	if !strings.Contains(out.String(), "Set board.strict_names = true") {
		t.Errorf("output = %q", out.String())
	}

	data, err := os.ReadFile(appconfig.ConfigFile())
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	var written struct {
		Board struct {
			StrictNames bool `yaml:"strict_names"`
		} `yaml:"board"`
		Output struct {
			Format string `yaml:"format"`
		} `yaml:"output"`
	}
	if err := yaml.Unmarshal(data, &written); err != nil {
		t.Fatalf("config file is not YAML: %v", err)
	}
	if written.Output.Format != "plain" || !written.Board.StrictNames {
		t.Errorf("written config = %+v", written)
	}
}

func TestRunConfigSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown key", []string{"board.colour", "red"}},
		{"bad format", []string{"output.format", "csv"}},
		{"bad theme", []string{"tui.theme", "dracula"}},
		{"bad bool", []string{"logging.enabled", "maybe"}},
		{"bad int", []string{"tui.max_name_width", "wide"}},
		{"negative int", []string{"logging.max_backups", "-2"}},
		{"width out of range", []string{"tui.max_name_width", "4"}},
		{"non-yaml theme file", []string{"tui.theme_file", "pitch.json"}},
		{"bad metrics address", []string{"metrics.address", "localhost"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupConfig(t)
			before := viper.Get(tt.args[0])

			if err := runConfigSet(configSetCmd, tt.args); err == nil {
				t.Fatalf("runConfigSet(%v) should fail", tt.args)
			}
			if _, err := os.Stat(appconfig.ConfigFile()); err == nil {
				t.Error("a rejected value must not write the config file")
			}
			if got := viper.Get(tt.args[0]); got != before {
				t.Errorf("viper value changed to %v after rejection", got)
			}
		})
	}
}

func TestRunConfigInit(t *testing.T) {
	setupConfig(t)
	out := capture(configInitCmd)

	if err := runConfigInit(configInitCmd, nil); err != nil {
		t.Fatalf("runConfigInit() error = %v", err)
	}
	if !strings.Contains(out.String(), appconfig.ConfigFile()) {
		t.Errorf("output does not name the file: %q", out.String())
	}

	viper.SetConfigFile(appconfig.ConfigFile())
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("generated config does not parse: %v", err)
	}
	cfg, err := appconfig.Load()
	if err != nil {
		t.Fatalf("generated config does not validate: %v", err)
	}
	if cfg.TUI.MaxNameWidth != 24 || cfg.Output.Format != "table" {
		t.Errorf("generated config = %+v", cfg)
	}

	if err := runConfigInit(configInitCmd, nil); err == nil {
		t.Error("second init should refuse to overwrite")
	}
}

func TestRunConfigShow(t *testing.T) {
	setupConfig(t)
	out := capture(configShowCmd)

	if err := runConfigShow(configShowCmd, nil); err != nil {
		t.Fatalf("runConfigShow() error = %v", err)
	}
	for _, want := range []string{
		"(none - using defaults)",
		"  format: table",
		"  theme: default",
		"  max_name_width: 24",
		"  address: (disabled)",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("show output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunConfigPath(t *testing.T) {
	dir := setupConfig(t)
	out := capture(configPathCmd)

	if err := runConfigPath(configPathCmd, nil); err != nil {
		t.Fatalf("runConfigPath() error = %v", err)
	}
	want := filepath.Join(dir, "scoreboard", "config.yaml")
	if !strings.Contains(out.String(), want) {
		t.Errorf("path output missing %q:\n%s", want, out.String())
	}
}

func TestRunThemeList(t *testing.T) {
	setupConfig(t)
	viper.Set("tui.theme", "nord")
	out := capture(themeListCmd)

	if err := runThemeList(themeListCmd, nil); err != nil {
		t.Fatalf("runThemeList() error = %v", err)
	}
	if !strings.Contains(out.String(), " * nord") {
		t.Errorf("active theme not marked:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "   monokai") {
		t.Errorf("monokai not listed:\n%s", out.String())
	}
}

func TestRunThemeExport(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		out := capture(themeExportCmd)
		if err := runThemeExport(themeExportCmd, []string{"monokai"}); err != nil {
			t.Fatalf("runThemeExport() error = %v", err)
		}
		var f styles.ThemeFile
		if err := yaml.Unmarshal(out.Bytes(), &f); err != nil {
			t.Fatalf("exported theme is not YAML: %v", err)
		}
		if err := f.Validate(); err != nil {
			t.Errorf("exported theme does not validate: %v", err)
		}
	})

	t.Run("file", func(t *testing.T) {
		capture(themeExportCmd)
		outputPath := filepath.Join(t.TempDir(), "pitch.yaml")
		if err := runThemeExport(themeExportCmd, []string{"default", outputPath}); err != nil {
			t.Fatalf("runThemeExport() error = %v", err)
		}
		data, err := os.ReadFile(outputPath)
		if err != nil {
			t.Fatalf("Failed to read output file: %v", err)
		}
		if !bytes.Contains(data, []byte("primary:")) {
			t.Error("Output file missing primary color")
		}
	})

	t.Run("unknown theme", func(t *testing.T) {
		if err := runThemeExport(themeExportCmd, []string{"dracula"}); err == nil {
			t.Error("exporting an unknown theme should fail")
		}
	})
}
