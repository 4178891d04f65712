package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// HelpOverlay renders a help screen listing every binding of the session.
type HelpOverlay struct {
	width   int
	height  int
	styles  *Styles
	keys    KeyMap
	input   InputKeyMap
	confirm ConfirmKeyMap
}

// NewHelpOverlay creates a new help overlay for the given bindings.
func NewHelpOverlay(styles *Styles, keys KeyMap, input InputKeyMap, confirm ConfirmKeyMap) *HelpOverlay {
	return &HelpOverlay{
		styles:  styles,
		keys:    keys,
		input:   input,
		confirm: confirm,
	}
}

// SetSize sets the overlay dimensions.
func (h *HelpOverlay) SetSize(width, height int) {
	h.width = width
	h.height = height
}

// View renders the help overlay.
func (h *HelpOverlay) View() string {
	overlayWidth := 52
	if h.width > 0 {
		overlayWidth = min(52, max(20, h.width-4))
	}

	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(h.styles.ColorPrimary).
		Padding(1, 2).
		Width(overlayWidth)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorPrimary)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(h.styles.ColorAccent)

	keyStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorWarning).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(h.styles.ColorText)

	var b strings.Builder
	b.WriteString(titleStyle.Render("tasklist - Keyboard Shortcuts"))
	b.WriteString("\n")

	section := func(name string, groups [][]key.Binding) {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(name))
		b.WriteString("\n")
		for _, group := range groups {
			for _, binding := range group {
				if !binding.Enabled() {
					continue
				}
				help := binding.Help()
				b.WriteString(keyStyle.Render(help.Key) + descStyle.Render(help.Desc) + "\n")
			}
		}
	}

	section("Tasks", h.keys.FullHelp())
	section("New Task", h.input.FullHelp())
	section("Confirm Delete", h.confirm.FullHelp())

	b.WriteString("\n")
	b.WriteString(h.styles.NoticeStyle.Render("Press any key to close"))

	return RenderCentered(overlayStyle.Render(b.String()), h.width, h.height)
}

// RenderCentered centers content in the terminal.
func RenderCentered(content string, width, height int) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
