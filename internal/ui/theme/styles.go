package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for a theme.
type Styles struct {
	Title     lipgloss.Style
	Muted     lipgloss.Style
	Hint      lipgloss.Style
	Key       lipgloss.Style
	Value     lipgloss.Style
	URL       lipgloss.Style
	Error     lipgloss.Style
	Success   lipgloss.Style
	Border    lipgloss.Style
	StatusBar lipgloss.Style
	Toast     lipgloss.Style

	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style

	methods map[string]lipgloss.Style
	normal  lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	s := Styles{
		Title:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(t.Muted),
		Hint:    lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Key:     lipgloss.NewStyle().Foreground(t.Accent),
		Value:   lipgloss.NewStyle().Foreground(t.Text),
		URL:     lipgloss.NewStyle().Foreground(t.Blue).Underline(true),
		Error:   lipgloss.NewStyle().Foreground(t.Red),
		Success: lipgloss.NewStyle().Foreground(t.Green),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Overlay),
		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Padding(0, 1),
		Toast: lipgloss.NewStyle().
			Background(t.Accent).
			Foreground(t.Base).
			Padding(0, 1),
		TableHeader: lipgloss.NewStyle().
			Foreground(t.Subtext).
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Overlay),
		TableSelected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Bold(true),
		normal:  lipgloss.NewStyle().Foreground(t.Text),
		methods: make(map[string]lipgloss.Style),
	}
	for _, m := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"} {
		s.methods[m] = lipgloss.NewStyle().Foreground(t.MethodColor(m)).Bold(true)
	}
	return s
}

// MethodStyle returns the style for an HTTP method.
func (s Styles) MethodStyle(method string) lipgloss.Style {
	if st, ok := s.methods[method]; ok {
		return st
	}
	return s.normal
}
