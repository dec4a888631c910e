// Package theme provides the named colour palettes used by the form.
package theme

import "github.com/charmbracelet/lipgloss"

// Palette groups the semantic colours the UI draws with. Every colour adapts
// to light and dark terminals.
type Palette struct {
	Primary   lipgloss.AdaptiveColor // header background, focused borders
	Secondary lipgloss.AdaptiveColor // labels, highlighted suggestion
	Accent    lipgloss.AdaptiveColor // matched query text

	Error   lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor

	Text      lipgloss.AdaptiveColor
	TextMuted lipgloss.AdaptiveColor

	Background          lipgloss.AdaptiveColor
	BackgroundSecondary lipgloss.AdaptiveColor // selected suggestion row

	BorderNormal  lipgloss.AdaptiveColor
	BorderFocused lipgloss.AdaptiveColor
}

func init() {
	Register("tokyonight", Palette{
		Primary:             lipgloss.AdaptiveColor{Dark: "#82aaff", Light: "#2e7de9"},
		Secondary:           lipgloss.AdaptiveColor{Dark: "#c099ff", Light: "#9854f1"},
		Accent:              lipgloss.AdaptiveColor{Dark: "#ff966c", Light: "#b15c00"},
		Error:               lipgloss.AdaptiveColor{Dark: "#ff757f", Light: "#f52a65"},
		Success:             lipgloss.AdaptiveColor{Dark: "#c3e88d", Light: "#587539"},
		Text:                lipgloss.AdaptiveColor{Dark: "#c8d3f5", Light: "#3760bf"},
		TextMuted:           lipgloss.AdaptiveColor{Dark: "#636da6", Light: "#848cb5"},
		Background:          lipgloss.AdaptiveColor{Dark: "#222436", Light: "#e1e2e7"},
		BackgroundSecondary: lipgloss.AdaptiveColor{Dark: "#2f334d", Light: "#c8c9ce"},
		BorderNormal:        lipgloss.AdaptiveColor{Dark: "#3b4261", Light: "#a8aecb"},
		BorderFocused:       lipgloss.AdaptiveColor{Dark: "#82aaff", Light: "#2e7de9"},
	})
	Register("gruvbox", Palette{
		Primary:             lipgloss.AdaptiveColor{Dark: "#83a598", Light: "#076678"},
		Secondary:           lipgloss.AdaptiveColor{Dark: "#d3869b", Light: "#8f3f71"},
		Accent:              lipgloss.AdaptiveColor{Dark: "#fabd2f", Light: "#b57614"},
		Error:               lipgloss.AdaptiveColor{Dark: "#fb4934", Light: "#9d0006"},
		Success:             lipgloss.AdaptiveColor{Dark: "#b8bb26", Light: "#79740e"},
		Text:                lipgloss.AdaptiveColor{Dark: "#ebdbb2", Light: "#3c3836"},
		TextMuted:           lipgloss.AdaptiveColor{Dark: "#a89984", Light: "#7c6f64"},
		Background:          lipgloss.AdaptiveColor{Dark: "#282828", Light: "#fbf1c7"},
		BackgroundSecondary: lipgloss.AdaptiveColor{Dark: "#504945", Light: "#ebdbb2"},
		BorderNormal:        lipgloss.AdaptiveColor{Dark: "#504945", Light: "#bdae93"},
		BorderFocused:       lipgloss.AdaptiveColor{Dark: "#83a598", Light: "#076678"},
	})
	Register("nord", Palette{
		Primary:             lipgloss.AdaptiveColor{Dark: "#88C0D0", Light: "#5E81AC"},
		Secondary:           lipgloss.AdaptiveColor{Dark: "#81A1C1", Light: "#81A1C1"},
		Accent:              lipgloss.AdaptiveColor{Dark: "#8FBCBB", Light: "#8FBCBB"},
		Error:               lipgloss.AdaptiveColor{Dark: "#BF616A", Light: "#BF616A"},
		Success:             lipgloss.AdaptiveColor{Dark: "#A3BE8C", Light: "#A3BE8C"},
		Text:                lipgloss.AdaptiveColor{Dark: "#ECEFF4", Light: "#2E3440"},
		TextMuted:           lipgloss.AdaptiveColor{Dark: "#8B95A7", Light: "#3B4252"},
		Background:          lipgloss.AdaptiveColor{Dark: "#2E3440", Light: "#ECEFF4"},
		BackgroundSecondary: lipgloss.AdaptiveColor{Dark: "#3B4252", Light: "#E5E9F0"},
		BorderNormal:        lipgloss.AdaptiveColor{Dark: "#434C5E", Light: "#4C566A"},
		BorderFocused:       lipgloss.AdaptiveColor{Dark: "#88C0D0", Light: "#5E81AC"},
	})
}
