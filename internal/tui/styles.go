package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme of the terminal view.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:    "night",
		Primary: lipgloss.Color("#8ec1ff"),
		Accent:  lipgloss.Color("#6efacc"),
		Text:    lipgloss.Color("#e6edf3"),
		Muted:   lipgloss.Color("#8b949e"),
		Running: lipgloss.Color("#00ff88"),
		Paused:  lipgloss.Color("#ffaa00"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:    "minimal",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#0088ff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#888888"),
		Running: lipgloss.Color("#00ff00"),
		Paused:  lipgloss.Color("#ffaa00"),
	}
)

var themes = []Theme{ThemeNight, ThemeRetro, ThemeMinimal}

// styles are derived from a theme each time it changes.
type styles struct {
	canvas  lipgloss.Style
	stats   lipgloss.Style
	header  lipgloss.Style
	label   lipgloss.Style
	value   lipgloss.Style
	graph   lipgloss.Style
	help    lipgloss.Style
	running lipgloss.Style
	paused  lipgloss.Style
}

// canvasPadX and canvasPadY are the canvas padding in cells; mouse
// coordinates are offset by them.
const (
	canvasPadX = 2
	canvasPadY = 1
	statsWidth = 42
)

func newStyles(t Theme) styles {
	return styles{
		canvas:  lipgloss.NewStyle().Padding(canvasPadY, canvasPadX).Foreground(t.Primary),
		stats:   lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Muted).Padding(1, 2).Width(statsWidth),
		header:  lipgloss.NewStyle().Foreground(t.Accent).Bold(true).MarginBottom(1),
		label:   lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:   lipgloss.NewStyle().Foreground(t.Text),
		graph:   lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:    lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		running: lipgloss.NewStyle().Bold(true).Foreground(t.Running),
		paused:  lipgloss.NewStyle().Bold(true).Foreground(t.Paused),
	}
}

func nextTheme(current string) Theme {
	for i, t := range themes {
		if t.Name == current {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
