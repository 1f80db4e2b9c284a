package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/hprogress/internal/ui"
)

// Styles are rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle     lipgloss.Style
	titleStyle     lipgloss.Style
	dimStyle       lipgloss.Style
	accentStyle    lipgloss.Style
	statusStyle    lipgloss.Style
	errorStyle     lipgloss.Style
	footerKeyStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles applies the current ui theme. Run calls it again after the
// theme has been chosen from the configuration.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	accentStyle = lipgloss.NewStyle().Foreground(t.Accent)
	statusStyle = lipgloss.NewStyle().Foreground(t.Text)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	footerKeyStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
}
