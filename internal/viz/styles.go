package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Canvas   lipgloss.Style
	Panel    lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Active   lipgloss.Style
	Graph    lipgloss.Style
	Help     lipgloss.Style
	Running  lipgloss.Style
	Paused   lipgloss.Style
	Warning  lipgloss.Style
	ErrorMsg lipgloss.Style
	BarFull  lipgloss.Style
	BarEmpty lipgloss.Style
}

func NewStyles(t Theme) Styles {
	return Styles{
		Canvas: lipgloss.NewStyle().Padding(1, 2).Foreground(t.Secondary),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(t.Muted).
			Padding(1, 2).
			Width(64),
		Header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		Label:    lipgloss.NewStyle().Foreground(t.Muted).Width(14),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Active:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Graph:    lipgloss.NewStyle().Foreground(t.Secondary).Padding(1, 0),
		Help:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true).MarginTop(1),
		Running:  lipgloss.NewStyle().Foreground(t.Success).Bold(true),
		Paused:   lipgloss.NewStyle().Foreground(t.Warning).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(t.Warning),
		ErrorMsg: lipgloss.NewStyle().Foreground(t.Error).Bold(true),
		BarFull:  lipgloss.NewStyle().Foreground(t.Accent),
		BarEmpty: lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// Bar renders fraction in [0, 1] as a fixed-width slider track.
func (s Styles) Bar(fraction float64, width int) string {
	filled := int(fraction*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return s.BarFull.Render(strings.Repeat("█", filled)) + s.BarEmpty.Render(strings.Repeat("░", width-filled))
}

// Separator is a muted rule of the given width.
func (s Styles) Separator(width int) string {
	if width < 1 {
		return ""
	}
	return s.BarEmpty.Render(strings.Repeat("─", width))
}
