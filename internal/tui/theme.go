package tui

import (
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// ---------------------------------------------------------------------------

const (
	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorLavender lipgloss.Color = "#b4befe"
	colorPink     lipgloss.Color = "#f5c2e7"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorYellow   lipgloss.Color = "#f9e2af"
)

var (
	styleSectionTitle  = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	styleSectionActive = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	styleBody          = lipgloss.NewStyle().Foreground(colorOverlay1)
	styleStatus        = lipgloss.NewStyle().Foreground(colorSubtext0).Background(colorSurface0).Padding(0, 1)
	styleHints         = lipgloss.NewStyle().Foreground(colorOverlay1)
	styleCenter        = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorLavender)
	styleCenterFocus   = lipgloss.NewStyle().Bold(true).Foreground(colorBase).Background(colorPink)
	styleJumpPrompt    = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

// itemColor spreads item hues evenly around the wheel so neighbours on the
// arc stay visually distinct.
func itemColor(i, n int) lipgloss.Color {
	if n <= 0 {
		n = 1
	}
	hue := float64(i%n) / float64(n) * 360
	return lipgloss.Color(colorful.Hsv(hue, 0.45, 0.95).Hex())
}

// itemStyle renders one menu item, emphasised when hovered or focused.
func itemStyle(i, n int, hovered, focused bool) lipgloss.Style {
	s := lipgloss.NewStyle().Foreground(itemColor(i, n))
	if hovered {
		s = s.Bold(true).Underline(true)
	}
	if focused {
		s = s.Bold(true).Reverse(true)
	}
	return s
}
