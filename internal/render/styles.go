package render

import (
	"tasklist/internal/config"
	"tasklist/internal/storage"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the presenter styles, initialized with theme configuration.
type Styles struct {
	// Colors
	ColorPrimary   lipgloss.Color
	ColorAccent    lipgloss.Color
	ColorMuted     lipgloss.Color
	ColorWarning   lipgloss.Color
	ColorDanger    lipgloss.Color
	ColorText      lipgloss.Color
	ColorTextMuted lipgloss.Color

	TitleStyle   lipgloss.Style
	RuleStyle    lipgloss.Style
	HeadingStyle lipgloss.Style
	IDStyle      lipgloss.Style
	TextStyle    lipgloss.Style
	MutedStyle   lipgloss.Style
	ColumnStyle  lipgloss.Style
	NoticeStyle  lipgloss.Style

	statusStyles map[storage.Status]lipgloss.Style
}

// NewStyles creates Styles from a ThemeConfig. Empty colors use defaults.
// A nil theme is the default theme.
func NewStyles(theme *config.ThemeConfig) *Styles {
	if theme == nil {
		theme = &config.Default().Theme
	}
	s := &Styles{}

	s.ColorPrimary = colorOrDefault(theme.Primary, "#7C3AED")
	s.ColorAccent = colorOrDefault(theme.Accent, "#10B981")
	s.ColorMuted = colorOrDefault(theme.Muted, "#6B7280")
	s.ColorText = colorOrDefault(theme.Text, "#F9FAFB")

	// Fixed semantic colors (not configurable from theme)
	s.ColorWarning = lipgloss.Color("#F59E0B")
	s.ColorDanger = lipgloss.Color("#EF4444")
	s.ColorTextMuted = lipgloss.Color("#9CA3AF")

	s.initComponentStyles()
	return s
}

// colorOrDefault returns the lipgloss.Color from hex string, or default if empty.
func colorOrDefault(hex, defaultHex string) lipgloss.Color {
	if hex != "" {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(defaultHex)
}

func (s *Styles) initComponentStyles() {
	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.RuleStyle = lipgloss.NewStyle().
		Foreground(s.ColorMuted)

	s.HeadingStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(s.ColorPrimary)

	s.IDStyle = lipgloss.NewStyle().
		Bold(true)

	s.TextStyle = lipgloss.NewStyle().
		Foreground(s.ColorText)

	s.MutedStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted)

	// Board column: padded, with a divider on the right.
	s.ColumnStyle = lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(s.ColorMuted)

	s.NoticeStyle = lipgloss.NewStyle().
		Foreground(s.ColorTextMuted).
		Italic(true)

	s.statusStyles = map[storage.Status]lipgloss.Style{
		storage.StatusNotStarted: lipgloss.NewStyle().Foreground(s.ColorMuted),
		storage.StatusInProgress: lipgloss.NewStyle().Foreground(s.ColorWarning),
		storage.StatusDone:       lipgloss.NewStyle().Foreground(s.ColorAccent),
	}
}

// StatusStyle returns the style used for a status label.
func (s *Styles) StatusStyle(st storage.Status) lipgloss.Style {
	if style, ok := s.statusStyles[st]; ok {
		return style
	}
	return s.MutedStyle
}
