package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Stats panel with a left rule
	Panel = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 2)

	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	MetricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	KeyHint     = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// shineWidth is the half-width of the headline shine band, in characters.
const shineWidth = 4.0

// Headline renders text with a shine band at progress in [0,1] sweeping left to right.
// A settled headline is drawn solid.
func Headline(text string, progress float64, settled bool, t Theme) string {
	if text == "" {
		return ""
	}
	if settled {
		return lipgloss.NewStyle().Bold(true).Foreground(t.Headline).Render(text)
	}

	runes := []rune(text)
	pos := progress*(float64(len(runes))+2*shineWidth) - shineWidth
	sr, sg, sb := parseHex(string(t.Muted))
	er, eg, eb := parseHex(string(t.Accent))

	var result strings.Builder
	for i, c := range runes {
		k := math.Max(0, 1-math.Abs(float64(i)-pos)/shineWidth)
		r := int(float64(sr) + k*float64(er-sr))
		g := int(float64(sg) + k*float64(eg-sg))
		b := int(float64(sb) + k*float64(eb-sb))
		style := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(hexColor(r, g, b)))
		result.WriteString(style.Render(string(c)))
	}
	return result.String()
}

// Sparkline renders a mini sparkline from values
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	// Keep the most recent samples when there are more than fit.
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var result strings.Builder
	for _, v := range values {
		idx := int(math.Round((v - lo) / rng * float64(len(chars)-1)))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteRune(chars[idx])
	}
	return result.String()
}

// Helper functions
func parseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	r = parseHexByte(hex[1:3])
	g = parseHexByte(hex[3:5])
	b = parseHexByte(hex[5:7])
	return
}

func parseHexByte(s string) int {
	var val int
	for _, c := range s {
		val *= 16
		if c >= '0' && c <= '9' {
			val += int(c - '0')
		} else if c >= 'a' && c <= 'f' {
			val += int(c - 'a' + 10)
		} else if c >= 'A' && c <= 'F' {
			val += int(c - 'A' + 10)
		}
	}
	return val
}

func hexColor(r, g, b int) string {
	return "#" + hexByte(r) + hexByte(g) + hexByte(b)
}

func hexByte(v int) string {
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	const hex = "0123456789abcdef"
	return string(hex[v/16]) + string(hex[v%16])
}
