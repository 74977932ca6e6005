package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/galton/internal/export"
)

// Theme defines the color scheme for the board and the side panel.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Dot     lipgloss.Color
	Ball    lipgloss.Color
	Path    lipgloss.Color
	Faded   lipgloss.Color
	Warning lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:    "classic",
		Primary: lipgloss.Color("#ffffff"),
		Accent:  lipgloss.Color("#3b82f6"),
		Text:    lipgloss.Color("#e5e7eb"),
		Muted:   lipgloss.Color("#6b7280"),
		Dot:     lipgloss.Color("#808080"),
		Ball:    lipgloss.Color("#ff0000"),
		Path:    lipgloss.Color("#0000ff"),
		Faded:   lipgloss.Color("#4d4dff"),
		Warning: lipgloss.Color("#ffaa00"),
	}

	ThemeCyberpunk = Theme{
		Name:    "cyberpunk",
		Primary: lipgloss.Color("#ff00ff"),
		Accent:  lipgloss.Color("#00ffff"),
		Text:    lipgloss.Color("#ffffff"),
		Muted:   lipgloss.Color("#666666"),
		Dot:     lipgloss.Color("#444444"),
		Ball:    lipgloss.Color("#ffff00"),
		Path:    lipgloss.Color("#00ffff"),
		Faded:   lipgloss.Color("#006666"),
		Warning: lipgloss.Color("#ff8800"),
	}

	ThemeRetroGreen = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Accent:  lipgloss.Color("#88ff88"),
		Text:    lipgloss.Color("#00ff00"),
		Muted:   lipgloss.Color("#005500"),
		Dot:     lipgloss.Color("#005500"),
		Ball:    lipgloss.Color("#88ff88"),
		Path:    lipgloss.Color("#00cc00"),
		Faded:   lipgloss.Color("#007700"),
		Warning: lipgloss.Color("#ffff00"),
	}

	ThemeOcean = Theme{
		Name:    "ocean",
		Primary: lipgloss.Color("#0077be"),
		Accent:  lipgloss.Color("#ffd700"),
		Text:    lipgloss.Color("#e0f0ff"),
		Muted:   lipgloss.Color("#4488aa"),
		Dot:     lipgloss.Color("#336688"),
		Ball:    lipgloss.Color("#ffd700"),
		Path:    lipgloss.Color("#00a8cc"),
		Faded:   lipgloss.Color("#225577"),
		Warning: lipgloss.Color("#ffcc00"),
	}

	ThemeSunset = Theme{
		Name:    "sunset",
		Primary: lipgloss.Color("#ff6b6b"),
		Accent:  lipgloss.Color("#feca57"),
		Text:    lipgloss.Color("#fff5f5"),
		Muted:   lipgloss.Color("#8b6b8c"),
		Dot:     lipgloss.Color("#5b4b5c"),
		Ball:    lipgloss.Color("#ff9ff3"),
		Path:    lipgloss.Color("#feca57"),
		Faded:   lipgloss.Color("#7a6540"),
		Warning: lipgloss.Color("#ffc048"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme returns the theme after t in Themes.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// SVGStyle maps the theme onto export colors. The classic theme keeps the
// light board used by the exporter.
func (t Theme) SVGStyle() export.SVGStyle {
	if t.Name == ThemeClassic.Name {
		return export.DefaultSVGStyle()
	}
	return export.SVGStyle{
		Background: "#0a0a0a",
		Dot:        string(t.Dot),
		Ball:       string(t.Ball),
		Path:       string(t.Path),
		Text:       string(t.Text),
	}
}
