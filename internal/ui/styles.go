package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"cityform/internal/ui/theme"
)

func styleHeader() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Background).
		Background(theme.Current().Primary).
		Bold(true).
		Padding(0, 1)
}

func styleLabel() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary).
		Bold(true)
}

func styleFieldError() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Error)
}

func styleInput() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal).
		Padding(0, 1)
}

func styleInputFocused() lipgloss.Style {
	return styleInput().BorderForeground(theme.Current().BorderFocused)
}

func styleInputInvalid() lipgloss.Style {
	return styleInput().BorderForeground(theme.Current().Error)
}

func styleDropdown() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal)
}

func styleSuggestion() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(theme.Current().Text)
}

func styleSuggestionSelected() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Secondary).
		Background(theme.Current().BackgroundSecondary)
}

// styleMatch is layered on top of the row style so the selected row keeps
// its background behind matched text.
func styleMatch(row lipgloss.Style) lipgloss.Style {
	return row.Foreground(theme.Current().Accent).Bold(true)
}

func styleLoading() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted).
		Italic(true)
}

func styleButton() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Current().BorderNormal).
		Padding(0, 2)
}

func styleButtonFocused() lipgloss.Style {
	return styleButton().
		Foreground(theme.Current().Primary).
		BorderForeground(theme.Current().BorderFocused).
		Bold(true)
}

func styleToast() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().Success).
		Bold(true)
}

func styleFooter() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(theme.Current().TextMuted)
}

// buildMarkdownRenderer returns a renderer for the acknowledgement panel.
// format follows output.format: rich (dark), light, or plain.
func buildMarkdownRenderer(format string, width int) func(string) string {
	fallback := func(input string) string {
		return wordwrap.String(input, width)
	}

	style := strings.ToLower(strings.TrimSpace(format))
	if style == "" || style == "rich" || style == "dark" {
		style = "dark"
	}
	if style == "plain" {
		return fallback
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return fallback
	}
	return func(input string) string {
		out, err := renderer.Render(input)
		if err != nil {
			return fallback(input)
		}
		return strings.TrimSpace(out)
	}
}
