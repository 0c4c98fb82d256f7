package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

type yamlTheme struct {
	Name    string `yaml:"name"`
	Base    string `yaml:"base"`
	Surface string `yaml:"surface"`
	Overlay string `yaml:"overlay"`
	Text    string `yaml:"text"`
	Subtext string `yaml:"subtext"`
	Muted   string `yaml:"muted"`
	Accent  string `yaml:"accent"`
	Red     string `yaml:"red"`
	Peach   string `yaml:"peach"`
	Yellow  string `yaml:"yellow"`
	Green   string `yaml:"green"`
	Teal    string `yaml:"teal"`
	Blue    string `yaml:"blue"`
}

// LoadCustomTheme loads a theme from a YAML file. Colors missing from the
// file are taken from the default theme.
func LoadCustomTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("reading theme file: %w", err)
	}

	var yt yamlTheme
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Theme{}, fmt.Errorf("parsing theme YAML: %w", err)
	}

	if yt.Name == "" {
		base := filepath.Base(path)
		yt.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	d := Default()
	return Theme{
		Name:    yt.Name,
		Base:    color(yt.Base, d.Base),
		Surface: color(yt.Surface, d.Surface),
		Overlay: color(yt.Overlay, d.Overlay),
		Text:    color(yt.Text, d.Text),
		Subtext: color(yt.Subtext, d.Subtext),
		Muted:   color(yt.Muted, d.Muted),
		Accent:  color(yt.Accent, d.Accent),
		Red:     color(yt.Red, d.Red),
		Peach:   color(yt.Peach, d.Peach),
		Yellow:  color(yt.Yellow, d.Yellow),
		Green:   color(yt.Green, d.Green),
		Teal:    color(yt.Teal, d.Teal),
		Blue:    color(yt.Blue, d.Blue),
	}, nil
}

func color(v string, fallback lipgloss.Color) lipgloss.Color {
	if v == "" {
		return fallback
	}
	return lipgloss.Color(v)
}

// LoadCustomThemes loads all YAML themes from a directory, skipping files
// that fail to parse.
func LoadCustomThemes(dir string) map[string]Theme {
	themes := make(map[string]Theme)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return themes
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		t, err := LoadCustomTheme(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		themes[normalizeKey(t.Name)] = t
	}
	return themes
}
