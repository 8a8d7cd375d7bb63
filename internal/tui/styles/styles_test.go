package styles

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

func TestGetPalette(t *testing.T) {
	tests := []struct {
		name ThemeName
		want *ColorPalette
	}{
		{ThemeDefault, DefaultPalette()},
		{ThemeMonokai, MonokaiPalette()},
		{ThemeNord, NordPalette()},
		{"unknown", DefaultPalette()},
	}
	for _, tt := range tests {
		t.Run(string(tt.name), func(t *testing.T) {
			if diff := cmp.Diff(tt.want, GetPalette(tt.name)); diff != "" {
				t.Errorf("GetPalette(%q) mismatch (-want +got):\n%s", tt.name, diff)
			}
		})
	}
}

func TestBuiltinPalettesComplete(t *testing.T) {
	for _, name := range BuiltinThemes() {
		p := GetPalette(ThemeName(name))
		colors := []string{
			string(p.Primary), string(p.Secondary), string(p.Leader), string(p.Warning),
			string(p.Error), string(p.Muted), string(p.Surface), string(p.Text), string(p.Border),
		}
		for i, c := range colors {
			if !hexColorRegex.MatchString(c) {
				t.Errorf("%s: color %d = %q is not a hex color", name, i, c)
			}
		}
	}
}

func TestSetActiveTheme(t *testing.T) {
	t.Cleanup(func() { SetActiveTheme(ThemeDefault) })

	SetActiveTheme(ThemeNord)
	if ActiveThemeName() != ThemeNord {
		t.Errorf("ActiveThemeName() = %q, want nord", ActiveThemeName())
	}
	if got := GetActiveTheme().Palette.Primary; got != NordPalette().Primary {
		t.Errorf("active primary = %q, want %q", got, NordPalette().Primary)
	}
	if got := GetActiveTheme().Error.GetForeground(); got != NordPalette().Error {
		t.Errorf("Error style foreground = %v, want %v", got, NordPalette().Error)
	}
}

const sampleTheme = `name: Pitch
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

func TestLoadThemeFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/themes/pitch.yaml", []byte(sampleTheme), 0644)

	theme, err := LoadThemeFile(fs, "/themes/pitch.yaml")
	if err != nil {
		t.Fatalf("LoadThemeFile() error = %v", err)
	}
	p := theme.ToPalette()
	if p.Primary != "#00FF00" {
		t.Errorf("Primary = %q", p.Primary)
	}
	if p.Leader != p.Warning {
		t.Errorf("Leader = %q, want it to default to Warning %q", p.Leader, p.Warning)
	}
}

func TestThemeFile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*ThemeFile)
		wantErr string
	}{
		{"valid", func(*ThemeFile) {}, ""},
		{"missing name", func(f *ThemeFile) { f.Name = "" }, "name is required"},
		{"bad version", func(f *ThemeFile) { f.Version = "2" }, "unsupported theme version"},
		{"missing color", func(f *ThemeFile) { f.Colors.Border = "" }, "'border' is required"},
		{"bad color", func(f *ThemeFile) { f.Colors.Text = "white" }, "'text' has invalid format"},
		{"bad leader", func(f *ThemeFile) { f.Colors.Leader = "#12" }, "'leader' has invalid format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f ThemeFile
			if err := yaml.Unmarshal([]byte(sampleTheme), &f); err != nil {
				t.Fatal(err)
			}
			tt.modify(&f)

			err := f.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterThemeFile(t *testing.T) {
	t.Cleanup(ClearCustomThemes)
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "/themes/pitch.yaml", []byte(sampleTheme), 0644)
	_ = afero.WriteFile(fs, "/themes/nord.yml", []byte(sampleTheme), 0644)

	name, err := RegisterThemeFile(fs, "/themes/pitch.yaml")
	if err != nil {
		t.Fatalf("RegisterThemeFile() error = %v", err)
	}
	if name != "pitch" || !IsValidTheme("pitch") {
		t.Errorf("registered name = %q, valid = %v", name, IsValidTheme("pitch"))
	}
	if GetPalette("pitch").Primary != "#00FF00" {
		t.Error("GetPalette should resolve registered custom themes")
	}

	if _, err := RegisterThemeFile(fs, "/themes/nord.yml"); err == nil {
		t.Error("custom themes must not override built-ins")
	}
}

func TestExportTheme(t *testing.T) {
	data, err := ExportTheme(ThemeMonokai)
	if err != nil {
		t.Fatalf("ExportTheme() error = %v", err)
	}
	var f ThemeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		t.Fatalf("exported YAML does not parse: %v", err)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("exported theme does not validate: %v", err)
	}
	if diff := cmp.Diff(MonokaiPalette(), f.ToPalette()); diff != "" {
		t.Errorf("exported palette mismatch (-want +got):\n%s", diff)
	}

	if _, err := ExportTheme("missing"); err == nil {
		t.Error("ExportTheme of an unknown theme should fail")
	}
}
