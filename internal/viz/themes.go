package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the color scheme for the terminal web.
type Theme struct {
	Name string
	// Shades run from the faintest link to the brightest dot.
	Shades   []lipgloss.Color
	Headline lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
}

// Available themes
var (
	ThemeNight = Theme{
		Name:     "night",
		Shades:   []lipgloss.Color{"#3a3a44", "#6e6e7a", "#a0a0ac", "#c8c8d2", "#ebebf5"},
		Headline: lipgloss.Color("#f5f5ff"),
		Accent:   lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#c8c8d2"),
		Muted:    lipgloss.Color("#5a5a66"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Shades:   []lipgloss.Color{"#003300", "#005500", "#00aa00", "#00cc00", "#88ff88"},
		Headline: lipgloss.Color("#00ff00"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
	}

	ThemeOcean = Theme{
		Name:     "ocean",
		Shades:   []lipgloss.Color{"#0b2a44", "#1c4f77", "#0077be", "#00a8cc", "#e0f0ff"},
		Headline: lipgloss.Color("#e0f0ff"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#e0f0ff"),
		Muted:    lipgloss.Color("#4488aa"),
	}

	ThemeSunset = Theme{
		Name:     "sunset",
		Shades:   []lipgloss.Color{"#4a2b4c", "#8b6b8c", "#ff6b6b", "#feca57", "#fff5f5"},
		Headline: lipgloss.Color("#fff5f5"),
		Accent:   lipgloss.Color("#ff9ff3"),
		Text:     lipgloss.Color("#fff5f5"),
		Muted:    lipgloss.Color("#8b6b8c"),
	}

	// All available themes
	Themes = []Theme{
		ThemeNight,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to night.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNight
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// ShadeStyles returns one foreground style per shade, dimmest first.
func (t Theme) ShadeStyles() []lipgloss.Style {
	styles := make([]lipgloss.Style, len(t.Shades))
	for i, c := range t.Shades {
		styles[i] = lipgloss.NewStyle().Foreground(c)
	}
	return styles
}
