package theme

import "github.com/charmbracelet/lipgloss"

// Theme is the palette used by the terminal views.
type Theme struct {
	Name string

	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	Accent lipgloss.Color
	Red    lipgloss.Color
	Peach  lipgloss.Color
	Yellow lipgloss.Color
	Green  lipgloss.Color
	Teal   lipgloss.Color
	Blue   lipgloss.Color
}

// MethodColor returns the color for an HTTP method.
func (t Theme) MethodColor(method string) lipgloss.Color {
	switch method {
	case "GET":
		return t.Green
	case "POST":
		return t.Yellow
	case "PUT":
		return t.Blue
	case "PATCH":
		return t.Peach
	case "DELETE":
		return t.Red
	case "HEAD", "OPTIONS":
		return t.Teal
	default:
		return t.Text
	}
}

// CatppuccinMocha is the default theme.
var CatppuccinMocha = Theme{
	Name:    "Catppuccin Mocha",
	Base:    lipgloss.Color("#1e1e2e"),
	Surface: lipgloss.Color("#313244"),
	Overlay: lipgloss.Color("#45475a"),
	Text:    lipgloss.Color("#cdd6f4"),
	Subtext: lipgloss.Color("#a6adc8"),
	Muted:   lipgloss.Color("#585b70"),
	Accent:  lipgloss.Color("#cba6f7"),
	Red:     lipgloss.Color("#f38ba8"),
	Peach:   lipgloss.Color("#fab387"),
	Yellow:  lipgloss.Color("#f9e2af"),
	Green:   lipgloss.Color("#a6e3a1"),
	Teal:    lipgloss.Color("#94e2d5"),
	Blue:    lipgloss.Color("#89b4fa"),
}

var Nord = Theme{
	Name:    "Nord",
	Base:    lipgloss.Color("#2e3440"),
	Surface: lipgloss.Color("#3b4252"),
	Overlay: lipgloss.Color("#434c5e"),
	Text:    lipgloss.Color("#eceff4"),
	Subtext: lipgloss.Color("#d8dee9"),
	Muted:   lipgloss.Color("#4c566a"),
	Accent:  lipgloss.Color("#88c0d0"),
	Red:     lipgloss.Color("#bf616a"),
	Peach:   lipgloss.Color("#d08770"),
	Yellow:  lipgloss.Color("#ebcb8b"),
	Green:   lipgloss.Color("#a3be8c"),
	Teal:    lipgloss.Color("#8fbcbb"),
	Blue:    lipgloss.Color("#5e81ac"),
}

var Dracula = Theme{
	Name:    "Dracula",
	Base:    lipgloss.Color("#282a36"),
	Surface: lipgloss.Color("#44475a"),
	Overlay: lipgloss.Color("#6272a4"),
	Text:    lipgloss.Color("#f8f8f2"),
	Subtext: lipgloss.Color("#bfbfbf"),
	Muted:   lipgloss.Color("#6272a4"),
	Accent:  lipgloss.Color("#bd93f9"),
	Red:     lipgloss.Color("#ff5555"),
	Peach:   lipgloss.Color("#ffb86c"),
	Yellow:  lipgloss.Color("#f1fa8c"),
	Green:   lipgloss.Color("#50fa7b"),
	Teal:    lipgloss.Color("#8be9fd"),
	Blue:    lipgloss.Color("#6272a4"),
}
